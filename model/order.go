package model

import (
	"time"

	"github.com/putrawijaya/fulfillment/constant"
)

type OrderItemRequest struct {
	SKU string `json:"sku" validate:"required"`
	Qty int64  `json:"qty" validate:"required,gt=0"`
}

type OrderRequest struct {
	Location string             `json:"location" validate:"required"`
	Items    []OrderItemRequest `json:"items" validate:"required,dive,required"`
}

type OrderResponse struct {
	OrderID uint64 `json:"order_id"`
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}

type InsertOrderTxItem struct {
	OrderNo  string
	Location string
	Status   constant.OrderStatus
}

type OrderDetail struct {
	ID        uint64               `db:"id"`
	OrderNo   string               `db:"order_no"`
	Location  string               `db:"location_code"`
	Status    constant.OrderStatus `db:"status"`
	Version   int64                `db:"version"`
	CreatedAt time.Time            `db:"created_at"`
}

// OrderItem carries the monotone quantity chain
// ordered >= allocated >= picked >= packed >= shipped >= delivered >= 0.
type OrderItem struct {
	ID        uint64 `db:"id"`
	OrderID   uint64 `db:"order_id"`
	SKU       string `db:"sku"`
	Ordered   int64  `db:"ordered"`
	Allocated int64  `db:"allocated"`
	Picked    int64  `db:"picked"`
	Packed    int64  `db:"packed"`
	Shipped   int64  `db:"shipped"`
	Delivered int64  `db:"delivered"`
}

// Stage derives the item lifecycle stage from the counters. It is never
// stored, so it cannot drift from the counters.
func (i OrderItem) Stage() string {
	type rung struct {
		qty  int64
		name string
	}
	chain := []rung{
		{i.Delivered, "DELIVERED"},
		{i.Shipped, "SHIPPED"},
		{i.Packed, "PACKED"},
		{i.Picked, "PICKED"},
		{i.Allocated, "ALLOCATED"},
	}
	for _, r := range chain {
		if r.qty == 0 {
			continue
		}
		if r.qty == i.Ordered {
			return r.name
		}
		return "PARTIALLY_" + r.name
	}
	return "CREATED"
}

type OrderItemView struct {
	ID        uint64 `json:"id"`
	SKU       string `json:"sku"`
	Ordered   int64  `json:"ordered"`
	Allocated int64  `json:"allocated"`
	Picked    int64  `json:"picked"`
	Packed    int64  `json:"packed"`
	Shipped   int64  `json:"shipped"`
	Delivered int64  `json:"delivered"`
	Stage     string `json:"stage"`
}

type OrderDetailResponse struct {
	OrderID  uint64          `json:"order_id"`
	OrderNo  string          `json:"order_no"`
	Location string          `json:"location"`
	Status   string          `json:"status"`
	Items    []OrderItemView `json:"items"`
}
