package model

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// z975 is the 97.5% quantile of the standard normal, rounded as in the literature.
const z975 = 1.96

// NormalSpec parameterizes a normal distribution. The scale may instead be
// given through the 2.5% quantile, in which case Resolve derives it assuming a
// symmetric 95% interval around Loc.
type NormalSpec struct {
	Loc         float64  `yaml:"loc"`
	Scale       float64  `yaml:"scale"`
	Quantile025 *float64 `yaml:"quantile_2.5,omitempty"`
}

// resolve replaces Quantile025 with the matching Scale.
func (n *NormalSpec) resolve(name string) error {
	if n.Quantile025 == nil {
		return nil
	}
	q := *n.Quantile025
	if err := validateFinite(name+".quantile_2.5", q); err != nil {
		return err
	}
	if q > n.Loc {
		return fmt.Errorf("%s.quantile_2.5 (%f) must not exceed %s.loc (%f)", name, q, name, n.Loc)
	}
	n.Scale = (n.Loc - q) / z975
	n.Quantile025 = nil
	return nil
}

// RangeSpec parameterizes a uniform distribution on [Low, High].
type RangeSpec struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// LogNormalSpec parameterizes a lognormal distribution by the mean and standard
// deviation of ln(X).
type LogNormalSpec struct {
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
}

// Params holds the priors of the default TransmissionModel.
// Loaded from YAML via LoadParams(path) or taken from DefaultParams().
type Params struct {
	PropAsymCarriers NormalSpec    `yaml:"prop_asym_carriers"` // proportion of asymptomatic carriers, drawn once per realization
	SymptomaticR0    RangeSpec     `yaml:"symptomatic_r0"`
	AsymptomaticR0   RangeSpec     `yaml:"asymptomatic_r0"`
	IncubationPeriod LogNormalSpec `yaml:"incubation_period"` // days
	InfectiousTail   float64       `yaml:"infectious_tail"`   // days the curve extends past the incubation period
}

// DefaultParams returns the priors used when no parameter file is given.
// The asymptomatic proportion has a 95% interval of [0.1, 0.4].
func DefaultParams() Params {
	return Params{
		PropAsymCarriers: NormalSpec{Loc: 0.25, Scale: 0.15 / z975},
		SymptomaticR0:    RangeSpec{Low: 1.4, High: 2.8},
		AsymptomaticR0:   RangeSpec{Low: 0.14, High: 0.28},
		IncubationPeriod: LogNormalSpec{Mu: 1.621, Sigma: 0.418},
		InfectiousTail:   8,
	}
}

// LoadParams reads a YAML parameter file on top of DefaultParams.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model params: %w", err)
	}
	params := DefaultParams()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("parsing model params: %w", err)
	}
	if err := params.Resolve(); err != nil {
		return nil, fmt.Errorf("parsing model params: %w", err)
	}
	return &params, nil
}

// Resolve derives every scale given as a quantile. Call it after decoding
// Params from YAML.
func (p *Params) Resolve() error {
	return p.PropAsymCarriers.resolve("prop_asym_carriers")
}

// Validate checks that every prior is usable.
func (p Params) Validate() error {
	if err := validateFinite("prop_asym_carriers.loc", p.PropAsymCarriers.Loc); err != nil {
		return err
	}
	if err := validateNonNegative("prop_asym_carriers.scale", p.PropAsymCarriers.Scale); err != nil {
		return err
	}
	if err := validateRange("symptomatic_r0", p.SymptomaticR0); err != nil {
		return err
	}
	if err := validateRange("asymptomatic_r0", p.AsymptomaticR0); err != nil {
		return err
	}
	if err := validateFinite("incubation_period.mu", p.IncubationPeriod.Mu); err != nil {
		return err
	}
	if err := validateNonNegative("incubation_period.sigma", p.IncubationPeriod.Sigma); err != nil {
		return err
	}
	return validateNonNegative("infectious_tail", p.InfectiousTail)
}

func validateRange(name string, r RangeSpec) error {
	if err := validateNonNegative(name+".low", r.Low); err != nil {
		return err
	}
	if err := validateNonNegative(name+".high", r.High); err != nil {
		return err
	}
	if r.High < r.Low {
		return fmt.Errorf("%s.high (%f) must not be below %s.low (%f)", name, r.High, name, r.Low)
	}
	return nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	return nil
}

func validateNonNegative(name string, val float64) error {
	if err := validateFinite(name, val); err != nil {
		return err
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
