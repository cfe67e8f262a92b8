package plugins_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outbreak-sim/outbreak-sim/sim"
	"github.com/outbreak-sim/outbreak-sim/sim/model"
	"github.com/outbreak-sim/outbreak-sim/sim/plugins"
	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

var _ = Describe("Sample", func() {
	var (
		s   *plugins.Sample
		r   *sim.Realization
		cfg sim.Config
	)

	BeforeEach(func() {
		s = &plugins.Sample{}
		r = newRealization(6, trace.NewLog())
		cfg = sim.NewConfig(6, nil, false)
	})

	It("should validate the sample size", func() {
		Expect(s.ValidateArgs(sim.PluginArgs{})).To(Succeed())
		Expect(s.ValidateArgs(sim.PluginArgs{"size": 3})).To(Succeed())
		Expect(s.ValidateArgs(sim.PluginArgs{"size": 0})).ToNot(Succeed())
		Expect(s.ValidateArgs(sim.PluginArgs{"size": 1.5})).ToNot(Succeed())
	})

	It("should observe without emitting events", func() {
		events := s.Apply(0, r.Population, sim.PluginArgs{}, cfg)

		Expect(events).To(BeEmpty())
		Expect(s.Snapshots).To(HaveLen(1))
		Expect(s.Snapshots[0]).To(Equal(plugins.Snapshot{Time: 0, PopSize: 6, Sampled: 6}))
	})

	It("should count quarantined and infected individuals", func() {
		ind0, _ := r.Population.Get(0)
		ind0.Infect(0, nil, false)
		ind4, _ := r.Population.Get(4)
		ind4.Quarantine(10)
		ind4.Infect(0, nil, false)
		r.Population.Remove(5)

		s.Apply(1, r.Population, sim.PluginArgs{"size": 2}, cfg)

		snap := s.Snapshots[0]
		Expect(snap.PopSize).To(Equal(5))
		Expect(snap.Quarantined).To(Equal(1))
		Expect(snap.Sampled).To(Equal(2))
		Expect(snap.Infected).To(Equal(1), "only individual 0 is among the first two")
	})

	It("should clamp the sample size to the population", func() {
		s.Apply(0, r.Population, sim.PluginArgs{"size": 100}, cfg)

		Expect(s.Snapshots[0].Sampled).To(Equal(6))
	})

	Context("when scheduled with the default trigger", func() {
		It("should take exactly one snapshot at time 0", func() {
			inst, err := sim.PluginSpec{Name: plugins.SampleName}.Build()
			Expect(err).ToNot(HaveOccurred())
			sm, err := sim.NewSimulator(cfg, model.Factory(model.DefaultParams()), trace.NewLog(), 42,
				[]sim.PluginInstance{inst})
			Expect(err).ToNot(HaveOccurred())

			run := sm.NewRealization(0)
			run.Run()

			Expect(run.Plugins()).To(HaveLen(1))
			sample, ok := run.Plugins()[0].(*plugins.Sample)
			Expect(ok).To(BeTrue())
			Expect(sample.Snapshots).To(HaveLen(1))
			Expect(sample.Snapshots[0].Time).To(Equal(0.0))
		})
	})

	It("should keep snapshots per realization", func() {
		inst, err := sim.PluginSpec{Name: plugins.SampleName, Trigger: sim.Trigger{At: []float64{0, 1}}}.Build()
		Expect(err).ToNot(HaveOccurred())
		sm, err := sim.NewSimulator(cfg, model.Factory(model.DefaultParams()), trace.NewLog(), 42,
			[]sim.PluginInstance{inst})
		Expect(err).ToNot(HaveOccurred())

		first, second := sm.NewRealization(0), sm.NewRealization(1)
		first.Run()
		second.Run()

		Expect(first.Plugins()[0]).ToNot(BeIdenticalTo(second.Plugins()[0]))
		for _, run := range []*sim.Realization{first, second} {
			snaps := run.Plugins()[0].(*plugins.Sample).Snapshots
			Expect(len(snaps)).To(BeNumerically("<=", 2))
			Expect(snaps).ToNot(BeEmpty())
			Expect(snaps[0].Time).To(Equal(0.0))
		}
	})
})
