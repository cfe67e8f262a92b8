package plugins

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// SampleName is the registry name of the sample plugin.
const SampleName = "sample"

// Snapshot is what the sample plugin observed at one firing.
type Snapshot struct {
	Time        float64
	PopSize     int
	Quarantined int
	Sampled     int
	Infected    int // among the sampled individuals
}

// Sample observes the population without changing it. Each firing inspects the
// first size live individuals (all of them when size is unset) and logs how
// many were ever infected.
//
// Args:
//   - size: number of individuals to inspect (optional, positive)
type Sample struct {
	Snapshots []Snapshot
}

func (s *Sample) Name() string { return SampleName }

// ValidateArgs checks the optional sample size.
func (s *Sample) ValidateArgs(args sim.PluginArgs) error {
	size, ok, err := args.Int("size")
	if err != nil {
		return err
	}
	if ok && size <= 0 {
		return fmt.Errorf("args.size must be positive, got %d", size)
	}
	return nil
}

// Apply records a Snapshot and returns no events.
func (s *Sample) Apply(time float64, pop *sim.Population, args sim.PluginArgs, _ sim.Config) []sim.Event {
	ids := pop.IDs()
	size, ok, _ := args.Int("size")
	if !ok || size > len(ids) {
		size = len(ids)
	}

	snap := Snapshot{Time: time, PopSize: pop.Size(), Sampled: size}
	for i, id := range ids {
		ind, _ := pop.Get(id)
		if ind.IsQuarantined() {
			snap.Quarantined++
		}
		if i < size {
			if _, infected := ind.InfectedAt(); infected {
				snap.Infected++
			}
		}
	}
	s.Snapshots = append(s.Snapshots, snap)
	logrus.Infof("sample at %.2f: popsize=%d quarantined=%d infected=%d/%d",
		time, snap.PopSize, snap.Quarantined, snap.Infected, snap.Sampled)
	return nil
}
