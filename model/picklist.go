package model

import "github.com/putrawijaya/fulfillment/constant"

type PicklistLine struct {
	ID          uint64 `db:"id"`
	PicklistID  uint64 `db:"picklist_id"`
	OrderItemID uint64 `db:"order_item_id"`
	SKU         string `db:"sku"`
	BinCode     string `db:"bin_code"`
	RequiredQty int64  `db:"required_qty"`
	PickedQty   int64  `db:"picked_qty"`
}

type Picklist struct {
	ID         uint64                  `db:"id"`
	PicklistNo string                  `db:"picklist_no"`
	OrderID    uint64                  `db:"order_id"`
	Status     constant.PicklistStatus `db:"status"`
	Lines      []PicklistLine          `db:"-"`
}

type InsertPicklistLine struct {
	OrderItemID uint64
	SKU         string
	BinCode     string
	RequiredQty int64
}

type InsertPicklist struct {
	PicklistNo string
	OrderID    uint64
	Lines      []InsertPicklistLine
}
