package model

import "github.com/shopspring/decimal"

// EventPayload carries the event-specific arguments; only the fields the
// event uses are read.
type EventPayload struct {
	ItemID    uint64          `json:"item_id,omitempty"`
	Qty       int64           `json:"qty,omitempty"`
	Carrier   string          `json:"carrier,omitempty"`
	CODAmount decimal.Decimal `json:"cod_amount,omitempty"`
	Stage     string          `json:"stage,omitempty"`
}

type EventRequest struct {
	Event   string        `json:"event" validate:"required"`
	Payload *EventPayload `json:"payload,omitempty"`
}

type EventResult struct {
	OrderID uint64 `json:"order_id"`
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}
