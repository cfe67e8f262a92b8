package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible realization.
// Two realizations with the same SimulationKey and identical configuration
// MUST produce identical records.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RealizationKey derives the key of one realization from the run seed.
// Realizations of the same run draw from unrelated streams.
func RealizationKey(seed int64, realizationID int) SimulationKey {
	return SimulationKey(seed ^ fnv1a64(fmt.Sprintf("realization_%d", realizationID)))
}

// === Subsystem Constants ===

const (
	// SubsystemModel feeds the TransmissionModel draws (r0, incubation, asymptomatic flag).
	SubsystemModel = "model"

	// SubsystemTransmission feeds the per-grid-point Bernoulli outcomes.
	SubsystemTransmission = "transmission"

	// SubsystemDispatch feeds the uniform choice of an infection target.
	SubsystemDispatch = "dispatch"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: PCG(key, fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Each realization owns its own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key), uint64(fnv1a64(name))))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
