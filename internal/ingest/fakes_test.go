package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

// memoryStore is an in-memory RecordWriter that keeps every put in order.
type memoryStore struct {
	mu    sync.Mutex
	puts  []orders.OrderRecord
	items map[string]orders.OrderRecord
	// failOn makes Put fail for this order id.
	failOn string
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[string]orders.OrderRecord{}}
}

func (m *memoryStore) Put(ctx context.Context, rec orders.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && rec.OrderID == m.failOn {
		return m.err
	}
	m.puts = append(m.puts, rec)
	m.items[rec.OrderID] = rec
	return nil
}

func (m *memoryStore) putIDs() []string {
	ids := make([]string, 0, len(m.puts))
	for _, r := range m.puts {
		ids = append(ids, r.OrderID)
	}
	return ids
}

type recordingMetrics struct {
	ingested int
	failures []string
}

func (r *recordingMetrics) OrdersIngested(_ context.Context, n int) { r.ingested += n }
func (r *recordingMetrics) IngestFailed(_ context.Context, kind string) {
	r.failures = append(r.failures, kind)
}

func orderPayload(id string) map[string]any {
	return map[string]any{
		"orderId":   id,
		"userId":    "U1",
		"itemName":  "Widget",
		"quantity":  2,
		"status":    "CREATED",
		"timestamp": "2024-01-01T00:00:00Z",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// sqsRecord wraps payload the way a topic subscription delivers it to a queue.
func sqsRecord(t *testing.T, n int, payload []byte) events.SQSMessage {
	t.Helper()
	body, err := WrapNotification(payload, fmt.Sprintf("sns-%d", n), "arn:aws:sns:us-east-1:000000000000:orders", time.Unix(1704067200, 0))
	require.NoError(t, err)
	return events.SQSMessage{MessageId: fmt.Sprintf("msg-%d", n), Body: body}
}

func batchEvent(t *testing.T, recs ...events.SQSMessage) json.RawMessage {
	t.Helper()
	return mustJSON(t, events.SQSEvent{Records: recs})
}

var testTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
