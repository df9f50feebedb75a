package constant

// AllocationPolicy controls how reserve handles a shortfall.
type AllocationPolicy string

const (
	AllocationPolicyFull    AllocationPolicy = "full"
	AllocationPolicyPartial AllocationPolicy = "partial"
)

// MovementKind tags rows in the append-only inventory movement log.
type MovementKind string

const (
	MovementKindReceive MovementKind = "RECEIVE"
	MovementKindPick    MovementKind = "PICK"
	MovementKindAdjust  MovementKind = "ADJUST"
)

type PicklistStatus int

const (
	PicklistStatusPending PicklistStatus = iota + 1
	PicklistStatusProcessing
	PicklistStatusCompleted
)

var picklistStatusName = map[PicklistStatus]string{
	PicklistStatusPending:    "PENDING",
	PicklistStatusProcessing: "PROCESSING",
	PicklistStatusCompleted:  "COMPLETED",
}

func (s PicklistStatus) String() string {
	if name, ok := picklistStatusName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

type DeliveryStatus int

const (
	DeliveryStatusPending DeliveryStatus = iota + 1
	DeliveryStatusShipped
	DeliveryStatusDelivered
	DeliveryStatusRTO
	DeliveryStatusReturned
)

var deliveryStatusName = map[DeliveryStatus]string{
	DeliveryStatusPending:   "PENDING",
	DeliveryStatusShipped:   "SHIPPED",
	DeliveryStatusDelivered: "DELIVERED",
	DeliveryStatusRTO:       "RTO",
	DeliveryStatusReturned:  "RETURNED",
}

func (s DeliveryStatus) String() string {
	if name, ok := deliveryStatusName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

type ManifestStatus int

const (
	ManifestStatusOpen ManifestStatus = iota + 1
	ManifestStatusClosed
)
