package sim

// Event is one pending state transition. Each variant carries only the fields
// its transition needs; the Simulator dispatches on the concrete type.
// Events are single-use: produced once, applied once, then discarded.
type Event interface {
	Timestamp() float64
	Type() EventType
}

// InfectionEvent infects Target, or a uniformly chosen eligible individual
// when Target is NoID.
type InfectionEvent struct {
	time   float64
	Target ID
	By     *Individual // infector; nil for seed infections
}

// NewInfectionEvent creates an infection of target (NoID = choose at dispatch) with no infector.
func NewInfectionEvent(time float64, target ID) *InfectionEvent {
	return &InfectionEvent{time: time, Target: target}
}

func (e *InfectionEvent) Timestamp() float64 { return e.time }
func (e *InfectionEvent) Type() EventType    { return EventTypeInfection }

// by returns the infector id, or NoID.
func (e *InfectionEvent) by() ID {
	if e.By == nil {
		return NoID
	}
	return e.By.id
}

// QuarantineEvent quarantines Target until Till.
type QuarantineEvent struct {
	time   float64
	Target ID
	Till   float64
}

// NewQuarantineEvent creates a quarantine of target at time lasting until till.
func NewQuarantineEvent(time float64, target ID, till float64) *QuarantineEvent {
	return &QuarantineEvent{time: time, Target: target, Till: till}
}

func (e *QuarantineEvent) Timestamp() float64 { return e.time }
func (e *QuarantineEvent) Type() EventType    { return EventTypeQuarantine }

// ReintegrationEvent releases Target from quarantine.
type ReintegrationEvent struct {
	time   float64
	Target ID
}

// NewReintegrationEvent creates a release of target at time.
func NewReintegrationEvent(time float64, target ID) *ReintegrationEvent {
	return &ReintegrationEvent{time: time, Target: target}
}

func (e *ReintegrationEvent) Timestamp() float64 { return e.time }
func (e *ReintegrationEvent) Type() EventType    { return EventTypeReintegration }

// InfectionAvoidedEvent records a transmission by a quarantined infector that
// did not happen. The state change already occurred inside Infect.
type InfectionAvoidedEvent struct {
	time float64
	By   ID
}

// NewInfectionAvoidedEvent creates an avoided-infection record for infector by.
func NewInfectionAvoidedEvent(time float64, by ID) *InfectionAvoidedEvent {
	return &InfectionAvoidedEvent{time: time, By: by}
}

func (e *InfectionAvoidedEvent) Timestamp() float64 { return e.time }
func (e *InfectionAvoidedEvent) Type() EventType    { return EventTypeInfectionAvoided }

// RemovalEvent removes Target from the population.
type RemovalEvent struct {
	time   float64
	Target ID
}

// NewRemovalEvent creates a removal of target at time.
func NewRemovalEvent(time float64, target ID) *RemovalEvent {
	return &RemovalEvent{time: time, Target: target}
}

func (e *RemovalEvent) Timestamp() float64 { return e.time }
func (e *RemovalEvent) Type() EventType    { return EventTypeRemoval }

// AbortEvent terminates the realization when its bucket is drained.
// It is intercepted by the loop and never dispatched.
type AbortEvent struct {
	time   float64
	Target ID
}

// NewAbortEvent creates an abort caused by target at time.
func NewAbortEvent(time float64, target ID) *AbortEvent {
	return &AbortEvent{time: time, Target: target}
}

func (e *AbortEvent) Timestamp() float64 { return e.time }
func (e *AbortEvent) Type() EventType    { return EventTypeAbort }

// PluginEvent fires a plugin. Whether it actually applies is decided by the
// plugin's scheduler when the event is dispatched.
type PluginEvent struct {
	time     float64
	instance *pluginRun
}

func (e *PluginEvent) Timestamp() float64 { return e.time }
func (e *PluginEvent) Type() EventType    { return EventTypePlugin }

// Plugin returns the plugin this event fires.
func (e *PluginEvent) Plugin() Plugin { return e.instance.plugin }
