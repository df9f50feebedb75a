package fulfillment

import "github.com/putrawijaya/fulfillment/constant"

// eventGuards maps each event to the order statuses it may be applied from.
// Data-dependent guards (pick quantities, all-items-picked, tracking stage)
// are checked by the event handlers on top of this table.
var eventGuards = map[constant.EventType][]constant.OrderStatus{
	constant.EventAllocate:         {constant.OrderStatusCreated},
	constant.EventGeneratePicklist: {constant.OrderStatusAllocated, constant.OrderStatusPartiallyAllocated},
	constant.EventStartPicking:     {constant.OrderStatusPicklistGenerated},
	constant.EventRecordPick:       {constant.OrderStatusPicking},
	constant.EventCompletePicking:  {constant.OrderStatusPicking},
	constant.EventStartPacking:     {constant.OrderStatusPicked},
	constant.EventRecordPack:       {constant.OrderStatusPacking},
	constant.EventCompletePacking:  {constant.OrderStatusPacking},
	constant.EventManifest:         {constant.OrderStatusPacked},
	constant.EventShip:             {constant.OrderStatusManifested},
	constant.EventTrackingUpdate:   {constant.OrderStatusShipped, constant.OrderStatusInTransit},
	constant.EventDeliver:          {constant.OrderStatusOutForDelivery},
	constant.EventCancel:           {constant.OrderStatusCreated, constant.OrderStatusAllocated, constant.OrderStatusPartiallyAllocated},
	constant.EventInitiateRTO:      {constant.OrderStatusShipped, constant.OrderStatusInTransit, constant.OrderStatusOutForDelivery},
	constant.EventCompleteRTO:      {constant.OrderStatusRTO},
}

// CanApply is the pure guard of the state machine: it answers whether an
// event is legal from the given status, independent of any order data.
func CanApply(status constant.OrderStatus, event constant.EventType) bool {
	if status.IsTerminal() {
		return false
	}
	for _, allowed := range eventGuards[event] {
		if status == allowed {
			return true
		}
	}
	return false
}

// trackingStages are the statuses a carrier TrackingUpdate may move an
// order to. DELIVERED has its own event with inventory-side effects.
var trackingStages = map[string]constant.OrderStatus{
	"IN_TRANSIT":       constant.OrderStatusInTransit,
	"OUT_FOR_DELIVERY": constant.OrderStatusOutForDelivery,
}

// ParseTrackingStage resolves a carrier stage name to an order status.
func ParseTrackingStage(stage string) (constant.OrderStatus, bool) {
	s, ok := trackingStages[stage]
	return s, ok
}
