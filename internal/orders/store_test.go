package orders

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDynamo stores items per table in a nested map: table -> orderId -> item.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	puts   int
	fail   error
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	m.puts++
	table := *params.TableName
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = map[string]map[string]types.AttributeValue{}
	}
	v, ok := params.Item[AttrOrderID].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("no primary key in put item")
	}
	m.tables[table][v.Value] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func sampleRecord() OrderRecord {
	return OrderRecord{
		OrderID:   "O1",
		UserID:    "U1",
		ItemName:  "Widget",
		Quantity:  "2",
		Status:    StatusCreated,
		Timestamp: StringTimestamp("2024-01-01T00:00:00Z"),
	}
}

func TestPut_WritesAllFields(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	require.NoError(t, store.Put(context.Background(), sampleRecord()))

	item, ok := mock.tables["orders"]["O1"]
	require.True(t, ok, "order item not stored")
	assert.Len(t, item, 6)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "U1"}, item[AttrUserID])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Widget"}, item[AttrItemName])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2"}, item[AttrQuantity])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "CREATED"}, item[AttrStatus])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-01-01T00:00:00Z"}, item[AttrTimestamp])

	var got OrderRecord
	require.NoError(t, attributevalue.UnmarshalMap(item, &got))
	assert.Equal(t, sampleRecord(), got)
}

func TestPut_NumericTimestamp(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	rec := sampleRecord()
	rec.Timestamp = NumericTimestamp("1704067200")
	require.NoError(t, store.Put(context.Background(), rec))

	item := mock.tables["orders"]["O1"]
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1704067200"}, item[AttrTimestamp])
}

func TestPut_OverwritesSameKey(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleRecord()))
	shipped := sampleRecord()
	shipped.Status = StatusShipped
	require.NoError(t, store.Put(ctx, shipped))

	assert.Equal(t, 2, mock.puts)
	require.Len(t, mock.tables["orders"], 1)
	assert.Equal(t, &types.AttributeValueMemberS{Value: StatusShipped}, mock.tables["orders"]["O1"][AttrStatus])
}

func TestPut_PropagatesClientError(t *testing.T) {
	boom := errors.New("ProvisionedThroughputExceededException")
	mock := newMockDynamo()
	mock.fail = boom

	err := NewStore(mock, "orders").Put(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mock.tables["orders"])
}
