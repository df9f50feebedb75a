package model

import (
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/shopspring/decimal"
)

type Delivery struct {
	ID         uint64                  `db:"id"`
	OrderID    uint64                  `db:"order_id"`
	ManifestID uint64                  `db:"manifest_id"`
	Carrier    string                  `db:"carrier"`
	AWB        string                  `db:"awb"`
	CODAmount  decimal.Decimal         `db:"cod_amount"`
	Status     constant.DeliveryStatus `db:"status"`
}

type InsertDelivery struct {
	OrderID    uint64
	ManifestID uint64
	Carrier    string
	AWB        string
	CODAmount  decimal.Decimal
	Status     constant.DeliveryStatus
}

type Manifest struct {
	ID         uint64                  `db:"id"`
	ManifestNo string                  `db:"manifest_no"`
	Carrier    string                  `db:"carrier"`
	Status     constant.ManifestStatus `db:"status"`
}

type InsertManifest struct {
	ManifestNo string
	Carrier    string
}
