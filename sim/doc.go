// Package sim provides the discrete-event engine that runs single stochastic
// realizations of an outbreak inside a closed, finite population.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - individual.go: the per-individual infection/quarantine state machine
//   - event.go: one Event variant per state transition
//   - simulator.go: the bucket-draining loop, dispatch, and ABORT handling
//   - plugin.go: trigger scheduling for externally supplied interventions
//
// # Architecture
//
// The sim package defines interfaces; implementations live in sub-packages:
//   - sim/model/: the default statistical TransmissionModel
//   - sim/plugins/: built-in plugins, registered via init()
//   - sim/trace/: simulation records and the sinks they are written to
//
// Every stochastic call draws from a PartitionedRNG keyed by (seed, realization
// id), so a realization is fully reproducible from its seed and configuration.
// A realization runs synchronously on one goroutine and owns its population,
// queue and RNG streams; realizations share nothing mutable.
package sim
