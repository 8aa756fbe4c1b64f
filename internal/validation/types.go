package validation

import (
	"encoding/json"
	"fmt"

	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

// OrderPayload is the order notification as producers send it. Fields are
// pointers so an absent key can be told apart from a zero value.
type OrderPayload struct {
	OrderID   *string           `json:"orderId" validate:"required"`
	UserID    *string           `json:"userId" validate:"required"`
	ItemName  *string           `json:"itemName" validate:"required"`
	Quantity  *orders.Quantity  `json:"quantity" validate:"required"`
	Status    *string           `json:"status" validate:"required"`
	Timestamp *orders.Timestamp `json:"timestamp" validate:"required"`
}

// UnmarshalJSON only honours the exact key names. encoding/json would
// otherwise match "ORDERID" or "orderid" against the orderId tag.
func (p *OrderPayload) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	var out OrderPayload
	targets := []struct {
		key string
		dst any
	}{
		{orders.AttrOrderID, &out.OrderID},
		{orders.AttrUserID, &out.UserID},
		{orders.AttrItemName, &out.ItemName},
		{orders.AttrQuantity, &out.Quantity},
		{orders.AttrStatus, &out.Status},
		{orders.AttrTimestamp, &out.Timestamp},
	}
	for _, t := range targets {
		raw, ok := fields[t.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, t.dst); err != nil {
			return fmt.Errorf("%s: %w", t.key, err)
		}
	}

	*p = out
	return nil
}

// Record flattens a validated payload into the stored record.
// It must only be called after the payload passed validation.
func (p OrderPayload) Record() orders.OrderRecord {
	return orders.OrderRecord{
		OrderID:   *p.OrderID,
		UserID:    *p.UserID,
		ItemName:  *p.ItemName,
		Quantity:  *p.Quantity,
		Status:    *p.Status,
		Timestamp: *p.Timestamp,
	}
}
