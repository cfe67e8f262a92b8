package plugins

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// QuarantineName is the registry name of the quarantine plugin.
const QuarantineName = "quarantine"

// Quarantine quarantines a fixed list of individuals each time it fires.
//
// Args:
//   - ids: individual ids to quarantine (required)
//   - duration: quarantine length in days (required, non-negative)
type Quarantine struct{}

func (q *Quarantine) Name() string { return QuarantineName }

// ValidateArgs checks ids and duration.
func (q *Quarantine) ValidateArgs(args sim.PluginArgs) error {
	ids, ok, err := args.IDs("ids")
	if err != nil {
		return err
	}
	if !ok || len(ids) == 0 {
		return fmt.Errorf("args.ids is required")
	}
	duration, ok, err := args.Float("duration")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("args.duration is required")
	}
	if duration < 0 {
		return fmt.Errorf("args.duration must be non-negative, got %f", duration)
	}
	return nil
}

// Apply emits a QUARANTINE event at time for every listed id still in the population.
func (q *Quarantine) Apply(time float64, pop *sim.Population, args sim.PluginArgs, _ sim.Config) []sim.Event {
	ids, _, err := args.IDs("ids")
	if err != nil {
		logrus.Panicf("quarantine plugin: %v", err)
	}
	duration, _, err := args.Float("duration")
	if err != nil {
		logrus.Panicf("quarantine plugin: %v", err)
	}

	var events []sim.Event
	for _, id := range ids {
		if !pop.Contains(id) {
			continue
		}
		events = append(events, sim.NewQuarantineEvent(time, id, time+duration))
	}
	return events
}
