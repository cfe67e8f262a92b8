package plugins_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outbreak-sim/outbreak-sim/sim"
	"github.com/outbreak-sim/outbreak-sim/sim/model"
	"github.com/outbreak-sim/outbreak-sim/sim/plugins"
	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

var _ = Describe("Quarantine", func() {
	var (
		q   *plugins.Quarantine
		pop *sim.Population
		cfg sim.Config
	)

	BeforeEach(func() {
		q = &plugins.Quarantine{}
		pop = newRealization(5, trace.NewLog()).Population
		cfg = sim.NewConfig(5, nil, false)
	})

	It("should be registered by name", func() {
		p, err := sim.NewPlugin(plugins.QuarantineName)

		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&plugins.Quarantine{}))
		Expect(sim.RegisteredPlugins()).To(ContainElements("quarantine", "sample"))
	})

	Context("when validating arguments", func() {
		It("should accept ids and a duration", func() {
			err := q.ValidateArgs(sim.PluginArgs{"ids": []any{0, 3}, "duration": 2})

			Expect(err).ToNot(HaveOccurred())
		})

		It("should require ids", func() {
			err := q.ValidateArgs(sim.PluginArgs{"duration": 2})

			Expect(err).To(MatchError(ContainSubstring("args.ids")))
		})

		It("should require a duration", func() {
			err := q.ValidateArgs(sim.PluginArgs{"ids": []any{1}})

			Expect(err).To(MatchError(ContainSubstring("args.duration")))
		})

		It("should reject a negative duration", func() {
			err := q.ValidateArgs(sim.PluginArgs{"ids": []any{1}, "duration": -1.0})

			Expect(err).To(HaveOccurred())
		})

		It("should reject non-numeric ids", func() {
			err := q.ValidateArgs(sim.PluginArgs{"ids": []any{"a"}, "duration": 1})

			Expect(err).To(HaveOccurred())
		})
	})

	Context("when applied", func() {
		It("should quarantine every listed live individual", func() {
			events := q.Apply(2, pop, sim.PluginArgs{"ids": []any{1, 3}, "duration": 1.5}, cfg)

			Expect(events).To(HaveLen(2))
			first := events[0].(*sim.QuarantineEvent)
			Expect(first.Timestamp()).To(Equal(2.0))
			Expect(first.Target).To(Equal(sim.ID(1)))
			Expect(first.Till).To(Equal(3.5))
			Expect(events[1].(*sim.QuarantineEvent).Target).To(Equal(sim.ID(3)))
		})

		It("should skip removed and unknown individuals", func() {
			pop.Remove(1)

			events := q.Apply(0, pop, sim.PluginArgs{"ids": []any{1, 4, 9}, "duration": 1}, cfg)

			Expect(events).To(HaveLen(1))
			Expect(events[0].(*sim.QuarantineEvent).Target).To(Equal(sim.ID(4)))
		})
	})

	Context("when run inside a realization", func() {
		It("should produce QUARANTINE and REINTEGRATION records", func() {
			inst, err := sim.PluginSpec{
				Name:    plugins.QuarantineName,
				Trigger: sim.Trigger{At: []float64{0}},
				Args:    sim.PluginArgs{"ids": []any{2}, "duration": 0.25},
			}.Build()
			Expect(err).ToNot(HaveOccurred())

			log := trace.NewLog()
			s, err := sim.NewSimulator(sim.NewConfig(3, nil, true), model.Factory(model.DefaultParams()), log, 1, []sim.PluginInstance{inst})
			Expect(err).ToNot(HaveOccurred())
			s.Simulate(0)

			quarantines := log.OfType("QUARANTINE")
			Expect(quarantines).To(HaveLen(1))
			Expect(quarantines[0].Subject).To(Equal("2"))
			reint := log.OfType("REINTEGRATION")
			Expect(reint).To(HaveLen(1))
			Expect(reint[0].Time).To(Equal(0.25))
		})
	})
})
