package sim

import "math/rand/v2"

// TransmissionStep is the spacing of the transmission probability grid: one hour, in days.
const TransmissionStep = 1.0 / 24

// TransmissionModel supplies the stochastic draws an Individual consumes when infected.
// Implementations draw from the generator they were constructed with and must not
// share mutable state across realizations.
type TransmissionModel interface {
	// DrawIsAsymptomatic selects the asymptomatic (true) or symptomatic branch.
	DrawIsAsymptomatic() bool
	// DrawR0 draws the realized reproduction number for the given branch.
	DrawR0(symptomatic bool) float64
	// DrawIncubationPeriod draws the time from infection to removal, in days.
	DrawIncubationPeriod() float64
	// TransmissionProbabilityCurve samples the per-offset probability of causing a new
	// infection on a grid with the given step. Both slices have the same length and
	// every probability lies in [0, 1].
	TransmissionProbabilityCurve(incubationPeriod, r0, step float64) (offsets, probs []float64)
}

// ModelFactory builds the TransmissionModel of one realization from that
// realization's model RNG stream.
type ModelFactory func(rng *rand.Rand) TransmissionModel
