// Package model provides the default statistical TransmissionModel: priors for
// the asymptomatic proportion, r0 and incubation period, and a transmission
// probability curve peaking at symptom onset.
package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// Model draws from Params using the generator of a single realization.
// Thread-safety: NOT thread-safe.
type Model struct {
	params   Params
	propAsym float64
	rng      *rand.Rand
}

// New creates a Model and draws the realization's asymptomatic proportion.
func New(params Params, rng *rand.Rand) *Model {
	m := &Model{params: params, rng: rng}
	m.propAsym = m.drawPropAsymCarriers()
	return m
}

// Factory adapts New to sim.ModelFactory.
func Factory(params Params) sim.ModelFactory {
	return func(rng *rand.Rand) sim.TransmissionModel {
		return New(params, rng)
	}
}

// PropAsymCarriers returns the asymptomatic proportion drawn for this realization.
func (m *Model) PropAsymCarriers() float64 {
	return m.propAsym
}

func (m *Model) drawPropAsymCarriers() float64 {
	spec := m.params.PropAsymCarriers
	if spec.Scale == 0 {
		return clamp01(spec.Loc)
	}
	return clamp01(distuv.Normal{Mu: spec.Loc, Sigma: spec.Scale, Src: m.rng}.Rand())
}

// DrawIsAsymptomatic draws the branch of a new infection.
func (m *Model) DrawIsAsymptomatic() bool {
	return distuv.Bernoulli{P: m.propAsym, Src: m.rng}.Rand() == 1
}

// DrawR0 draws a reproduction number from the prior of the given branch.
func (m *Model) DrawR0(symptomatic bool) float64 {
	r := m.params.AsymptomaticR0
	if symptomatic {
		r = m.params.SymptomaticR0
	}
	if r.Low == r.High {
		return r.Low
	}
	return distuv.Uniform{Min: r.Low, Max: r.High, Src: m.rng}.Rand()
}

// DrawIncubationPeriod draws the incubation period in days.
func (m *Model) DrawIncubationPeriod() float64 {
	spec := m.params.IncubationPeriod
	if spec.Sigma == 0 {
		return math.Exp(spec.Mu)
	}
	return distuv.LogNormal{Mu: spec.Mu, Sigma: spec.Sigma, Src: m.rng}.Rand()
}

// TransmissionProbabilityCurve samples a normal density centred on the incubation
// period over [0, incubation+tail) and scales it so the expected number of
// infections over the whole window equals r0. Probabilities are capped at 1.
func (m *Model) TransmissionProbabilityCurve(incubationPeriod, r0, step float64) ([]float64, []float64) {
	n := int(math.Ceil((incubationPeriod + m.params.InfectiousTail) / step))
	if n <= 0 || r0 <= 0 {
		return []float64{}, []float64{}
	}
	// 2.5% of the mass falls before infection
	sigma := math.Max(incubationPeriod/1.96, step)
	shedding := distuv.Normal{Mu: incubationPeriod, Sigma: sigma}

	offsets := make([]float64, n)
	probs := make([]float64, n)
	for i := range n {
		offsets[i] = float64(i) * step
		probs[i] = shedding.Prob(offsets[i])
	}
	total := floats.Sum(probs)
	if total == 0 {
		return offsets, probs
	}
	floats.Scale(r0/total, probs)
	for i, p := range probs {
		probs[i] = math.Min(p, 1)
	}
	return offsets, probs
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
