package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

const fullPayload = `{"orderId":"O1","userId":"U1","itemName":"Widget","quantity":2,"status":"CREATED","timestamp":"2024-01-01T00:00:00Z"}`

func TestOrderPayload_Valid(t *testing.T) {
	v := New()

	var p OrderPayload
	require.NoError(t, json.Unmarshal([]byte(fullPayload), &p))
	require.NoError(t, v.Struct(p))

	assert.Equal(t, orders.OrderRecord{
		OrderID:   "O1",
		UserID:    "U1",
		ItemName:  "Widget",
		Quantity:  "2",
		Status:    "CREATED",
		Timestamp: orders.StringTimestamp("2024-01-01T00:00:00Z"),
	}, p.Record())
}

func TestOrderPayload_ZeroValuesArePresent(t *testing.T) {
	v := New()

	var p OrderPayload
	require.NoError(t, json.Unmarshal([]byte(`{"orderId":"","userId":"","itemName":"","quantity":0,"status":"","timestamp":0}`), &p))
	assert.NoError(t, v.Struct(p))
}

func TestOrderPayload_MissingFields(t *testing.T) {
	v := New()

	var p OrderPayload
	require.NoError(t, json.Unmarshal([]byte(`{"orderId":"O1","userId":"U1","itemName":"Widget","status":"CREATED"}`), &p))

	err := v.Struct(p)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"quantity", "timestamp"}, MissingFields(err))
}

func TestMissingFields_NonValidationError(t *testing.T) {
	assert.Nil(t, MissingFields(assert.AnError))
}

func TestOrderPayload_KeysAreCaseSensitive(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		raw     string
		missing []string
	}{
		{
			name:    "upper case keys",
			raw:     `{"ORDERID":"O1","USERID":"U1","ITEMNAME":"Widget","QUANTITY":2,"STATUS":"CREATED","TIMESTAMP":"t"}`,
			missing: []string{"orderId", "userId", "itemName", "quantity", "status", "timestamp"},
		},
		{
			name:    "lower case orderid",
			raw:     `{"orderid":"O1","userId":"U1","itemName":"Widget","quantity":2,"status":"CREATED","timestamp":"t"}`,
			missing: []string{"orderId"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p OrderPayload
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))

			err := v.Struct(p)
			require.Error(t, err)
			assert.ElementsMatch(t, tt.missing, MissingFields(err))
		})
	}
}

func TestOrderPayload_DecodeErrors(t *testing.T) {
	var p OrderPayload
	assert.Error(t, json.Unmarshal([]byte(`["O1"]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"orderId":1}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"quantity":"2"}`), &p))
}
