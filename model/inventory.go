package model

import "github.com/putrawijaya/fulfillment/constant"

type ReserveRequest struct {
	OrderID     uint64
	OrderItemID uint64
	SKU         string
	Location    string
	Quantity    int64
	Policy      constant.AllocationPolicy
}

// BinQty is one slice of a reservation or pick, tied to a single bin.
type BinQty struct {
	InventoryID uint64 `db:"inventory_id"`
	BinCode     string `db:"bin_code"`
	Quantity    int64  `db:"quantity"`
}

type ReservationResult struct {
	Reserved  []BinQty
	Shortfall int64
}

func (r ReservationResult) ReservedQty() int64 {
	var total int64
	for _, b := range r.Reserved {
		total += b.Quantity
	}
	return total
}

type Reservation struct {
	ID          uint64 `db:"id"`
	OrderID     uint64 `db:"order_id"`
	OrderItemID uint64 `db:"order_item_id"`
	InventoryID uint64 `db:"inventory_id"`
	SKU         string `db:"sku"`
	BinCode     string `db:"bin_code"`
	Quantity    int64  `db:"quantity"`
}

type ReceiveRequest struct {
	SKU      string
	Location string
	Bin      string
	Quantity int64
	Reason   string
	Actor    string
}

type AdjustRequest struct {
	SKU       string
	Location  string
	Bin       string
	NewOnHand int64
	Reason    string
	Actor     string
}

type Availability struct {
	SKU       string `db:"sku" json:"sku"`
	Location  string `db:"location_code" json:"location"`
	OnHand    int64  `db:"on_hand" json:"on_hand"`
	Reserved  int64  `db:"reserved" json:"reserved"`
	Available int64  `db:"available" json:"available"`
}

type ReceiveStockRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Location string `json:"location" validate:"required"`
	Bin      string `json:"bin" validate:"required"`
	Qty      int64  `json:"qty" validate:"required,gt=0"`
	Reason   string `json:"reason"`
}

type AdjustStockRequest struct {
	SKU       string `json:"sku" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Bin       string `json:"bin" validate:"required"`
	NewOnHand int64  `json:"new_on_hand" validate:"gte=0"`
	Reason    string `json:"reason" validate:"required"`
}
