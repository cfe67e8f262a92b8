package sim

import (
	"fmt"
	"math"
)

// Config groups the population-level parameters of a realization.
type Config struct {
	PopSize         int      // number of individuals (must be > 0)
	PreQuarantine   *float64 // quarantine individual 0 at time 0 until this time (nil = no pre-quarantine)
	KeepSymptomatic bool     // symptomatic individuals keep infecting after their incubation period
}

// NewConfig creates a Config.
func NewConfig(popSize int, preQuarantine *float64, keepSymptomatic bool) Config {
	return Config{
		PopSize:         popSize,
		PreQuarantine:   preQuarantine,
		KeepSymptomatic: keepSymptomatic,
	}
}

// Validate checks the configuration before any realization starts.
func (c Config) Validate() error {
	if c.PopSize <= 0 {
		return fmt.Errorf("popsize must be positive, got %d", c.PopSize)
	}
	if c.PreQuarantine != nil {
		if err := validateTime("pre_quarantine", *c.PreQuarantine); err != nil {
			return err
		}
	}
	return nil
}

// validateTime rejects NaN, infinite and negative times and durations.
func validateTime(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
