package constant

type OrderStatus int

const (
	OrderStatusCreated OrderStatus = iota + 1
	OrderStatusPartiallyAllocated
	OrderStatusAllocated
	OrderStatusPicklistGenerated
	OrderStatusPicking
	OrderStatusPicked
	OrderStatusPacking
	OrderStatusPacked
	OrderStatusManifested
	OrderStatusShipped
	OrderStatusInTransit
	OrderStatusOutForDelivery
	OrderStatusDelivered
	OrderStatusCancelled
	OrderStatusRTO
	OrderStatusReturned
)

var orderStatusName = map[OrderStatus]string{
	OrderStatusCreated:            "CREATED",
	OrderStatusPartiallyAllocated: "PARTIALLY_ALLOCATED",
	OrderStatusAllocated:          "ALLOCATED",
	OrderStatusPicklistGenerated:  "PICKLIST_GENERATED",
	OrderStatusPicking:            "PICKING",
	OrderStatusPicked:             "PICKED",
	OrderStatusPacking:            "PACKING",
	OrderStatusPacked:             "PACKED",
	OrderStatusManifested:         "MANIFESTED",
	OrderStatusShipped:            "SHIPPED",
	OrderStatusInTransit:          "IN_TRANSIT",
	OrderStatusOutForDelivery:     "OUT_FOR_DELIVERY",
	OrderStatusDelivered:          "DELIVERED",
	OrderStatusCancelled:          "CANCELLED",
	OrderStatusRTO:                "RTO",
	OrderStatusReturned:           "RETURNED",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further event may be applied to an order
// in this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusReturned
}
