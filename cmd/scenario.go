package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/outbreak-sim/outbreak-sim/sim"
	"github.com/outbreak-sim/outbreak-sim/sim/model"
)

// Scenario is the YAML form of a run: population settings, model priors and plugins.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	PopSize         int              `yaml:"popsize"`
	PreQuarantine   *float64         `yaml:"pre_quarantine,omitempty"`
	KeepSymptomatic bool             `yaml:"keep_symptomatic"`
	Seed            *int64           `yaml:"seed,omitempty"`
	Repeats         int              `yaml:"repeats,omitempty"`
	Model           model.Params     `yaml:"model"`
	Plugins         []sim.PluginSpec `yaml:"plugins,omitempty"`
}

// defaultScenario is the scenario used when no file is given.
func defaultScenario() Scenario {
	return Scenario{
		PopSize: 64,
		Repeats: 1,
		Model:   model.DefaultParams(),
	}
}

// loadScenario parses a scenario file over defaultScenario.
// Uses strict field checking: typos must cause errors.
func loadScenario(path string) (Scenario, error) {
	sc := defaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("reading scenario: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return sc, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Model.Resolve(); err != nil {
		return sc, fmt.Errorf("parsing scenario: %w", err)
	}
	return sc, nil
}

// Validate checks everything that can be checked before the first realization.
func (sc Scenario) Validate() error {
	if err := sc.config().Validate(); err != nil {
		return err
	}
	if sc.Repeats <= 0 {
		return fmt.Errorf("repeats must be positive, got %d", sc.Repeats)
	}
	if err := sc.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	_, err := sc.plugins()
	return err
}

func (sc Scenario) config() sim.Config {
	return sim.NewConfig(sc.PopSize, sc.PreQuarantine, sc.KeepSymptomatic)
}

// plugins resolves every plugin spec against the registry.
func (sc Scenario) plugins() ([]sim.PluginInstance, error) {
	instances := make([]sim.PluginInstance, 0, len(sc.Plugins))
	for i, spec := range sc.Plugins {
		inst, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("plugins[%d]: %w", i, err)
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
