package sim

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

// Individual is one member of the population and runs its own infection algorithm.
//
// State machine: susceptible → infected (symptomatic | asymptomatic) → removed,
// with an orthogonal quarantined overlay. The infection time is set once by Infect
// and never cleared; later infection attempts are logged and ignored.
type Individual struct {
	id    ID
	model TransmissionModel
	rng   *rand.Rand // Bernoulli outcomes on the transmission grid
	rec   *recorder

	infected      *float64 // nil until infected, then immutable
	quarantineEnd *float64 // nil when not quarantined

	symptomatic      bool
	r0               float64
	incubationPeriod float64
	offsets          []float64
	transProb        []float64
	infectees        int
}

func newIndividual(id ID, model TransmissionModel, rng *rand.Rand, rec *recorder) *Individual {
	return &Individual{
		id:    id,
		model: model,
		rng:   rng,
		rec:   rec,
	}
}

// ID returns the individual's stable id.
func (ind *Individual) ID() ID { return ind.id }

// InfectedAt returns the infection time and whether the individual was ever infected.
func (ind *Individual) InfectedAt() (float64, bool) {
	if ind.infected == nil {
		return 0, false
	}
	return *ind.infected, true
}

// QuarantinedUntil returns the quarantine end and whether the individual is quarantined.
func (ind *Individual) QuarantinedUntil() (float64, bool) {
	if ind.quarantineEnd == nil {
		return 0, false
	}
	return *ind.quarantineEnd, true
}

// IsQuarantined reports whether a quarantine end is currently set.
func (ind *Individual) IsQuarantined() bool { return ind.quarantineEnd != nil }

// Symptomatic reports the branch drawn at infection; false before infection.
func (ind *Individual) Symptomatic() bool { return ind.symptomatic }

// R0 returns the realized reproduction number; zero before infection.
func (ind *Individual) R0() float64 { return ind.r0 }

// IncubationPeriod returns the drawn incubation period; zero before infection.
func (ind *Individual) IncubationPeriod() float64 { return ind.incubationPeriod }

// Infectees returns how many individuals this one has infected.
func (ind *Individual) Infectees() int { return ind.infectees }

// Quarantine sets the quarantine end, overwriting any previous one, and
// schedules the matching reintegration.
func (ind *Individual) Quarantine(till float64) []Event {
	ind.quarantineEnd = &till
	return []Event{NewReintegrationEvent(till, ind.id)}
}

// Reintegrate releases the individual from quarantine.
func (ind *Individual) Reintegrate() []Event {
	ind.quarantineEnd = nil
	return nil
}

// Infect infects the individual at time. by is the infector, nil for a seed
// infection. Re-infecting an infected individual writes INFECTION_IGNORED and
// changes nothing.
func (ind *Individual) Infect(time float64, by *Individual, keepSymptomatic bool) []Event {
	if ind.infected != nil {
		var params []trace.Param
		if by != nil {
			params = append(params, param("by", by.id.String()))
		}
		ind.rec.write(time, EventTypeInfectionIgnored, ind.id.String(), params...)
		return nil
	}

	symptomatic := !ind.model.DrawIsAsymptomatic()
	return ind.infect(time, by, symptomatic, keepSymptomatic)
}

// infect runs the infection algorithm. The symptomatic and asymptomatic
// branches differ only in the distributions the model draws from.
func (ind *Individual) infect(time float64, by *Individual, symptomatic, keepSymptomatic bool) []Event {
	ind.infected = &time
	ind.symptomatic = symptomatic
	ind.r0 = ind.model.DrawR0(symptomatic)
	ind.incubationPeriod = ind.model.DrawIncubationPeriod()

	offsets, probs := ind.model.TransmissionProbabilityCurve(ind.incubationPeriod, ind.r0, TransmissionStep)
	if len(offsets) != len(probs) {
		logrus.Panicf("transmission curve has %d offsets but %d probabilities", len(offsets), len(probs))
	}
	ind.offsets, ind.transProb = offsets, probs

	var events []Event
	presymptomatic, symptomaticInfected := 0, 0
	for i, offset := range offsets {
		// only the presymptomatic window is live unless symptomatic carriers stay in the population
		if !keepSymptomatic && offset >= ind.incubationPeriod {
			continue
		}
		if !ind.transmits(probs[i]) {
			continue
		}
		at := time + offset
		if ind.quarantineEnd != nil && at < *ind.quarantineEnd {
			events = append(events, NewInfectionAvoidedEvent(at, ind.id))
			continue
		}
		events = append(events, &InfectionEvent{time: at, Target: NoID, By: ind})
		if offset < ind.incubationPeriod {
			presymptomatic++
		} else {
			symptomaticInfected++
		}
	}

	onset := time + ind.incubationPeriod
	if !keepSymptomatic && ind.quarantineEnd != nil && *ind.quarantineEnd < onset {
		events = append(events, NewAbortEvent(onset, ind.id))
	} else {
		events = append(events, NewRemovalEvent(onset, ind.id))
	}

	var params []trace.Param
	if by != nil {
		by.infectees++
		params = append(params, param("by", by.id.String()))
	}
	params = append(params,
		floatParam("r0", ind.r0),
		intParam("r", presymptomatic+symptomaticInfected),
		intParam("r_presym", presymptomatic),
		intParam("r_sym", symptomaticInfected),
		floatParam("incu", ind.incubationPeriod),
	)
	ind.rec.write(time, EventTypeInfection, ind.id.String(), params...)
	return events
}

// transmits draws one Bernoulli outcome with success probability p.
func (ind *Individual) transmits(p float64) bool {
	if p <= 0 {
		return false
	}
	return distuv.Bernoulli{P: p, Src: ind.rng}.Rand() == 1
}
