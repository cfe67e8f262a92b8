package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

// stubModel is a deterministic TransmissionModel: every infection draws the
// same branch, r0, incubation period and curve.
type stubModel struct {
	asymptomatic bool
	r0           float64
	incubation   float64
	offsets      []float64
	probs        []float64
}

func (m *stubModel) DrawIsAsymptomatic() bool        { return m.asymptomatic }
func (m *stubModel) DrawR0(symptomatic bool) float64 { return m.r0 }
func (m *stubModel) DrawIncubationPeriod() float64   { return m.incubation }
func (m *stubModel) TransmissionProbabilityCurve(incubationPeriod, r0, step float64) ([]float64, []float64) {
	return m.offsets, m.probs
}

func (m *stubModel) factory() ModelFactory {
	return func(*rand.Rand) TransmissionModel { return m }
}

// hourlyCurve builds an hourly grid over [0, until) whose probability is p at
// the listed hour indexes and 0 elsewhere.
func hourlyCurve(until float64, p float64, hours ...int) ([]float64, []float64) {
	var offsets, probs []float64
	for i := 0; float64(i)*TransmissionStep < until; i++ {
		offsets = append(offsets, float64(i)*TransmissionStep)
		probs = append(probs, 0)
	}
	for _, h := range hours {
		probs[h] = p
	}
	return offsets, probs
}

// chainModel infects exactly one individual at infection time (Scenario B).
func chainModel() *stubModel {
	offsets, probs := hourlyCurve(5, 1.0, 0)
	return &stubModel{r0: 2, incubation: 5, offsets: offsets, probs: probs}
}

// silentModel never transmits.
func silentModel(incubation float64) *stubModel {
	offsets, probs := hourlyCurve(incubation, 0)
	return &stubModel{r0: 0, incubation: incubation, offsets: offsets, probs: probs}
}

// newTestSimulator builds a Simulator writing into an in-memory log.
func newTestSimulator(t *testing.T, cfg Config, m TransmissionModel, plugins ...PluginInstance) (*Simulator, *trace.Log) {
	t.Helper()
	log := trace.NewLog()
	factory := func(*rand.Rand) TransmissionModel { return m }
	s, err := NewSimulator(cfg, factory, log, 42, plugins)
	require.NoError(t, err)
	return s, log
}

// newTestIndividual builds an individual outside any realization.
func newTestIndividual(id ID, m TransmissionModel, log *trace.Log) *Individual {
	rec := &recorder{realization: 0, sink: log}
	return newIndividual(id, m, rand.New(rand.NewPCG(1, 2)), rec)
}

func floatPtr(v float64) *float64 { return &v }

// eventsOfType filters events by their type tag.
func eventsOfType(events []Event, typ EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type() == typ {
			out = append(out, ev)
		}
	}
	return out
}

// recordingPlugin remembers every time it was applied.
type recordingPlugin struct {
	applied []float64
	emit    func(time float64, pop *Population) []Event
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) Apply(time float64, pop *Population, args PluginArgs, cfg Config) []Event {
	p.applied = append(p.applied, time)
	if p.emit != nil {
		return p.emit(time, pop)
	}
	return nil
}

// sharedFactory hands the same plugin to every realization so tests can inspect it.
func sharedFactory(p Plugin) PluginFactory {
	return func() Plugin { return p }
}

// summarize folds every record of l into a fresh Summary.
func summarize(l *trace.Log) *trace.Summary {
	s := trace.NewSummary()
	if l == nil {
		return s
	}
	for _, r := range l.Records {
		s.Write(r)
	}
	return s
}
