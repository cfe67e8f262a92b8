package sim

// EventType names a state transition. The string value is the name written
// into simulation records.
type EventType string

const (
	EventTypeInfection        EventType = "INFECTION"
	EventTypeInfectionFailed  EventType = "INFECTION_FAILED"  // no eligible target left
	EventTypeInfectionAvoided EventType = "INFECTION_AVOIDED" // transmission suppressed by quarantine
	EventTypeInfectionIgnored EventType = "INFECTION_IGNORED" // target was already infected
	EventTypeRemoval          EventType = "REMOVAL"
	EventTypeQuarantine       EventType = "QUARANTINE"
	EventTypeReintegration    EventType = "REINTEGRATION"
	EventTypeAbort            EventType = "ABORT"
	EventTypeEnd              EventType = "END"
	EventTypePlugin           EventType = "PLUGIN"
)

// recordTypes lists the event types that may appear in a simulation log.
// PLUGIN is internal to the queue and never written.
var recordTypes = map[EventType]bool{
	EventTypeInfection:        true,
	EventTypeInfectionFailed:  true,
	EventTypeInfectionAvoided: true,
	EventTypeInfectionIgnored: true,
	EventTypeRemoval:          true,
	EventTypeQuarantine:       true,
	EventTypeReintegration:    true,
	EventTypeAbort:            true,
	EventTypeEnd:              true,
}

// IsRecordType reports whether t is written to the simulation log.
func IsRecordType(t EventType) bool {
	return recordTypes[t]
}

func (t EventType) String() string {
	return string(t)
}
