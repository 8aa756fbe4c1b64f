package orders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names used in the orders table. They match the payload keys.
const (
	AttrOrderID   = "orderId" // PK
	AttrUserID    = "userId"
	AttrItemName  = "itemName"
	AttrQuantity  = "quantity"
	AttrStatus    = "status"
	AttrTimestamp = "timestamp"
)

// Order status values seen in practice. Status is opaque to this service and
// is stored exactly as received.
const (
	StatusCreated = "CREATED"
	StatusShipped = "SHIPPED"
)

// OrderRecord represents the item stored in the Orders DynamoDB table.
type OrderRecord struct {
	OrderID   string    `json:"orderId" dynamodbav:"orderId"`
	UserID    string    `json:"userId" dynamodbav:"userId"`
	ItemName  string    `json:"itemName" dynamodbav:"itemName"`
	Quantity  Quantity  `json:"quantity" dynamodbav:"quantity"`
	Status    string    `json:"status" dynamodbav:"status"`
	Timestamp Timestamp `json:"timestamp" dynamodbav:"timestamp"`
}

var errNotNumber = errors.New("not a number")

// Quantity is a numeric quantity kept in its decimal text form so no precision
// is lost between the payload and the table.
type Quantity string

var errQuotedNumber = errors.New("must be a JSON number, not a string")

func (q *Quantity) UnmarshalJSON(b []byte) error {
	if b = bytes.TrimSpace(b); len(b) > 0 && b[0] == '"' {
		return fmt.Errorf("quantity: %w", errQuotedNumber)
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if n == "" {
		return fmt.Errorf("quantity: %w", errNotNumber)
	}
	*q = Quantity(n)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q == "" {
		return []byte("null"), nil
	}
	return []byte(q), nil
}

func (q Quantity) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if q == "" {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	return &types.AttributeValueMemberN{Value: string(q)}, nil
}

func (q *Quantity) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		*q = Quantity(v.Value)
	case *types.AttributeValueMemberNULL:
		*q = ""
	default:
		return fmt.Errorf("quantity: unexpected attribute type %T", av)
	}
	return nil
}

// Timestamp is a caller supplied time marker. Producers send either a string
// (ISO-8601) or a number (epoch); the JSON kind is preserved when stored.
type Timestamp struct {
	Value   string
	Numeric bool
}

// StringTimestamp returns a string-kinded Timestamp.
func StringTimestamp(s string) Timestamp { return Timestamp{Value: s} }

// NumericTimestamp returns a number-kinded Timestamp. n must be a JSON number literal.
func NumericTimestamp(n string) Timestamp { return Timestamp{Value: n, Numeric: true} }

func (t Timestamp) String() string { return t.Value }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		*t = StringTimestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("timestamp: must be a string or a number: %w", err)
	}
	if n == "" {
		return fmt.Errorf("timestamp: %w", errNotNumber)
	}
	*t = NumericTimestamp(string(n))
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Numeric {
		return []byte(t.Value), nil
	}
	return json.Marshal(t.Value)
}

func (t Timestamp) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if t.Numeric {
		return &types.AttributeValueMemberN{Value: t.Value}, nil
	}
	return &types.AttributeValueMemberS{Value: t.Value}, nil
}

func (t *Timestamp) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		*t = NumericTimestamp(v.Value)
	case *types.AttributeValueMemberS:
		*t = StringTimestamp(v.Value)
	default:
		return fmt.Errorf("timestamp: unexpected attribute type %T", av)
	}
	return nil
}
