package constant

type EventType int

const (
	EventAllocate EventType = iota + 1
	EventGeneratePicklist
	EventStartPicking
	EventRecordPick
	EventCompletePicking
	EventStartPacking
	EventRecordPack
	EventCompletePacking
	EventManifest
	EventShip
	EventTrackingUpdate
	EventDeliver
	EventCancel
	EventInitiateRTO
	EventCompleteRTO
)

var eventTypeName = map[EventType]string{
	EventAllocate:         "ALLOCATE",
	EventGeneratePicklist: "GENERATE_PICKLIST",
	EventStartPicking:     "START_PICKING",
	EventRecordPick:       "RECORD_PICK",
	EventCompletePicking:  "COMPLETE_PICKING",
	EventStartPacking:     "START_PACKING",
	EventRecordPack:       "RECORD_PACK",
	EventCompletePacking:  "COMPLETE_PACKING",
	EventManifest:         "MANIFEST",
	EventShip:             "SHIP",
	EventTrackingUpdate:   "TRACKING_UPDATE",
	EventDeliver:          "DELIVER",
	EventCancel:           "CANCEL",
	EventInitiateRTO:      "INITIATE_RTO",
	EventCompleteRTO:      "COMPLETE_RTO",
}

var eventTypeByName = func() map[string]EventType {
	m := make(map[string]EventType, len(eventTypeName))
	for ev, name := range eventTypeName {
		m[name] = ev
	}
	return m
}()

func (e EventType) String() string {
	if name, ok := eventTypeName[e]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseEventType resolves the wire name of an event to its EventType.
func ParseEventType(name string) (EventType, bool) {
	ev, ok := eventTypeByName[name]
	return ev, ok
}
