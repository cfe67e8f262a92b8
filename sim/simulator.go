// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

// Simulator holds the read-only configuration shared by every realization of a run.
// Each realization builds its own population, RNG streams, model and plugins, so
// realizations may run on separate goroutines as long as each is given its own sink.
type Simulator struct {
	Config   Config
	NewModel ModelFactory
	Plugins  []PluginInstance
	Sink     trace.Sink
	Seed     int64
}

// NewSimulator validates the configuration and plugin timings and returns a Simulator.
func NewSimulator(cfg Config, newModel ModelFactory, sink trace.Sink, seed int64, plugins []PluginInstance) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if newModel == nil {
		return nil, fmt.Errorf("transmission model factory is required")
	}
	for i, p := range plugins {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("plugins[%d]: %w", i, err)
		}
	}
	return &Simulator{
		Config:   cfg,
		NewModel: newModel,
		Plugins:  plugins,
		Sink:     sink,
		Seed:     seed,
	}, nil
}

// Result summarises a finished realization.
type Result struct {
	Realization int
	EndTime     float64 // time of the last drained bucket
	PopSize     int     // live individuals at termination
	Infected    int     // individuals infected during the realization
	Aborted     bool
	Buckets     int // buckets drained
	Events      int // events dispatched
}

// Simulate runs one realization to completion and writes its records to the sink.
func (s *Simulator) Simulate(realizationID int) Result {
	return s.NewRealization(realizationID).Run()
}

// Realization is the exclusively-owned state of one stochastic run: the
// population, the event queue and the per-realization RNG streams.
type Realization struct {
	ID         int
	Clock      float64
	Queue      *EventQueue
	Population *Population

	cfg     Config
	rng     *PartitionedRNG
	rec     *recorder
	plugins []*pluginRun
	aborted bool
	ended   bool
	buckets int
	events  int
}

// NewRealization builds the population and seeds the queue: the optional
// pre-quarantine of individual 0, the initial infection, and the first firing
// of every plugin, all at time 0 unless a plugin trigger says otherwise.
func (s *Simulator) NewRealization(id int) *Realization {
	rng := NewPartitionedRNG(RealizationKey(s.Seed, id))
	rec := &recorder{realization: id, sink: s.Sink}
	model := s.NewModel(rng.ForSubsystem(SubsystemModel))

	r := &Realization{
		ID:         id,
		Queue:      NewEventQueue(),
		Population: newPopulation(s.Config.PopSize, model, rng.ForSubsystem(SubsystemTransmission), rec),
		cfg:        s.Config,
		rng:        rng,
		rec:        rec,
	}

	if s.Config.PreQuarantine != nil {
		r.Queue.Schedule(NewQuarantineEvent(0, 0, *s.Config.PreQuarantine))
	}
	r.Queue.Schedule(NewInfectionEvent(0, NoID))
	for _, p := range s.Plugins {
		run := newPluginRun(p)
		r.plugins = append(r.plugins, run)
		for _, ev := range run.initialEvents() {
			r.Queue.Schedule(ev)
		}
	}
	return r
}

// Run drains the queue until it is empty or an ABORT is reached, then writes
// the END record.
func (r *Realization) Run() Result {
	for r.Step() {
	}
	return r.finish()
}

// Step drains the earliest bucket. It returns false once the realization is over.
//
// Follow-up events are buffered while the bucket is processed and inserted
// afterwards, so a follow-up due at the current time forms a new bucket that
// the next Step drains.
func (r *Realization) Step() bool {
	if r.aborted || r.ended {
		return false
	}
	now, bucket, ok := r.Queue.PopBucket()
	if !ok {
		return false
	}
	r.Clock = now
	r.buckets++

	var followUps []Event
	for _, ev := range bucket {
		if abort, isAbort := ev.(*AbortEvent); isAbort {
			r.rec.write(now, EventTypeAbort, abort.Target.String())
			logrus.Infof("[realization %d] aborted at %.2f by individual %s", r.ID, now, abort.Target)
			r.aborted = true
			r.Queue.Clear()
			return false
		}
		r.events++
		followUps = append(followUps, r.dispatch(ev)...)
	}
	for _, ev := range followUps {
		r.schedule(ev)
	}
	next, ok := r.Queue.peekTime()
	if ok {
		logrus.Tracef("[realization %d] next bucket at %.2f", r.ID, next)
	}
	return ok
}

func (r *Realization) finish() Result {
	if !r.ended {
		r.ended = true
		size := r.Population.Size()
		r.rec.write(r.Clock, EventTypeEnd, strconv.Itoa(size), intParam("popsize", size))
		logrus.Infof("[realization %d] ended at %.2f, popsize=%d, buckets=%d", r.ID, r.Clock, size, r.buckets)
	}
	infected := 0
	for _, ind := range r.Population.individuals {
		if ind.infected != nil {
			infected++
		}
	}
	return Result{
		Realization: r.ID,
		EndTime:     r.Clock,
		PopSize:     r.Population.Size(),
		Infected:    infected,
		Aborted:     r.aborted,
		Buckets:     r.buckets,
		Events:      r.events,
	}
}

// schedule inserts a follow-up. Events may not travel back in time.
func (r *Realization) schedule(ev Event) {
	t := ev.Timestamp()
	if math.IsNaN(t) || t < r.Clock {
		logrus.Panicf("[realization %d] %s event scheduled at %v, before current time %.2f", r.ID, ev.Type(), t, r.Clock)
	}
	r.Queue.Schedule(ev)
}

// dispatch applies one event and returns its follow-ups.
func (r *Realization) dispatch(ev Event) []Event {
	switch e := ev.(type) {
	case *InfectionEvent:
		return r.applyInfection(e)
	case *QuarantineEvent:
		ind, ok := r.Population.Get(e.Target)
		if !ok {
			r.dropped(e, e.Target)
			return nil
		}
		r.rec.write(e.time, EventTypeQuarantine, e.Target.String(), floatParam("till", e.Till))
		return ind.Quarantine(e.Till)
	case *ReintegrationEvent:
		ind, ok := r.Population.Get(e.Target)
		if !ok {
			r.dropped(e, e.Target)
			return nil
		}
		r.rec.write(e.time, EventTypeReintegration, e.Target.String())
		return ind.Reintegrate()
	case *InfectionAvoidedEvent:
		r.rec.write(e.time, EventTypeInfectionAvoided, trace.Missing, param("by", e.By.String()))
		return nil
	case *RemovalEvent:
		if !r.Population.Contains(e.Target) {
			r.dropped(e, e.Target)
			return nil
		}
		r.rec.write(e.time, EventTypeRemoval, e.Target.String())
		r.Population.Remove(e.Target)
		return nil
	case *PluginEvent:
		return e.instance.fire(e.time, r.Population, r.cfg)
	case *AbortEvent:
		logrus.Panicf("[realization %d] ABORT reached dispatch; it must be intercepted by the event loop", r.ID)
	default:
		logrus.Panicf("[realization %d] unrecognized event %T (%s)", r.ID, ev, ev.Type())
	}
	return nil
}

func (r *Realization) applyInfection(e *InfectionEvent) []Event {
	target := e.Target
	if target == NoID {
		id, ok := r.Population.chooseTarget(e.by(), r.rng.ForSubsystem(SubsystemDispatch))
		if !ok {
			var params []trace.Param
			if e.By != nil {
				params = append(params, param("by", e.By.id.String()))
			}
			r.rec.write(e.time, EventTypeInfectionFailed, trace.Missing, params...)
			return nil
		}
		target = id
	}
	ind, ok := r.Population.Get(target)
	if !ok {
		r.dropped(e, target)
		return nil
	}
	return ind.Infect(e.time, e.By, r.cfg.KeepSymptomatic)
}

// dropped logs an event addressed to an individual that has left the population.
func (r *Realization) dropped(ev Event, target ID) {
	logrus.Debugf("[realization %d] %s for removed individual %s at %.2f dropped", r.ID, ev.Type(), target, ev.Timestamp())
}

// Plugins returns this realization's plugins in configuration order.
func (r *Realization) Plugins() []Plugin {
	plugins := make([]Plugin, len(r.plugins))
	for i, run := range r.plugins {
		plugins[i] = run.plugin
	}
	return plugins
}

// Aborted reports whether the realization was terminated by an ABORT event.
func (r *Realization) Aborted() bool { return r.aborted }
