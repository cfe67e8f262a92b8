// Package plugins holds the built-in interventions. Importing it registers them
// with the sim package's plugin registry, the same way implementations of other
// sim extension points are wired in from their own packages.
package plugins

import "github.com/outbreak-sim/outbreak-sim/sim"

func init() {
	sim.RegisterPlugin(QuarantineName, func() sim.Plugin { return &Quarantine{} })
	sim.RegisterPlugin(SampleName, func() sim.Plugin { return &Sample{} })
}
