package sim

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"
)

// timeEpsilon absorbs the rounding error of repeatedly adding an interval to a trigger time.
const timeEpsilon = 1e-9

// === Trigger ===

// Trigger configures when a plugin fires. All fields are optional; a Trigger
// with no field set fires once at time 0.
type Trigger struct {
	Start    *float64  `yaml:"start,omitempty"`
	End      *float64  `yaml:"end,omitempty"`
	At       []float64 `yaml:"at,omitempty"`
	Interval *float64  `yaml:"interval,omitempty"`
}

// Validate rejects malformed timing before any realization starts.
func (t Trigger) Validate() error {
	if t.Start != nil {
		if err := validateTime("start", *t.Start); err != nil {
			return err
		}
	}
	if t.End != nil {
		if err := validateTime("end", *t.End); err != nil {
			return err
		}
	}
	if t.Start != nil && t.End != nil && *t.End < *t.Start {
		return fmt.Errorf("end (%f) must not precede start (%f)", *t.End, *t.Start)
	}
	for i, at := range t.At {
		if err := validateTime(fmt.Sprintf("at[%d]", i), at); err != nil {
			return err
		}
	}
	if t.Interval != nil {
		if math.IsNaN(*t.Interval) || math.IsInf(*t.Interval, 0) || *t.Interval <= 0 {
			return fmt.Errorf("interval must be a positive finite number, got %f", *t.Interval)
		}
	}
	return nil
}

// InitialTimes returns the times at which the plugin is first offered to fire:
// start if set, 0 if an interval is set without a start, every at time, and 0
// when nothing is configured. Periodic firings are not precomputed; each
// successful firing schedules the next one.
func (t Trigger) InitialTimes() []float64 {
	var times []float64
	if t.Start != nil {
		times = append(times, *t.Start)
	}
	if t.Interval != nil && t.Start == nil {
		times = append(times, 0)
	}
	times = append(times, t.At...)
	if len(times) == 0 {
		times = append(times, 0)
	}
	return times
}

// === PluginScheduler ===

// PluginScheduler decides whether a plugin fires at a candidate time and
// remembers every time it fired, so that no (plugin, time) pair fires twice.
// Thread-safety: NOT thread-safe. One scheduler per plugin per realization.
type PluginScheduler struct {
	trigger     Trigger
	at          map[float64]bool
	lastApplied *float64
	appliedAt   map[float64]struct{}
}

// NewPluginScheduler creates a scheduler with no firing history. A trigger
// with neither start, at nor interval fires once at time 0.
func NewPluginScheduler(trigger Trigger) *PluginScheduler {
	at := make(map[float64]bool, len(trigger.At))
	for _, t := range trigger.At {
		at[t] = true
	}
	if trigger.Start == nil && trigger.Interval == nil && len(trigger.At) == 0 {
		at[0] = true
	}
	return &PluginScheduler{
		trigger:   trigger,
		at:        at,
		appliedAt: make(map[float64]struct{}),
	}
}

// CanApply reports whether the plugin fires at time, recording the firing when it does.
func (s *PluginScheduler) CanApply(time float64) bool {
	// several plugin events may land on the same time point
	if _, done := s.appliedAt[time]; done {
		return false
	}
	trig := s.trigger
	if trig.End != nil && time > *trig.End {
		return false
	}
	if trig.Start != nil && s.lastApplied == nil && time >= *trig.Start {
		s.record(time)
		return true
	}
	if trig.Interval != nil {
		// without a start the first call opens the series
		if (s.lastApplied == nil && trig.Start == nil) ||
			(s.lastApplied != nil && time-*s.lastApplied >= *trig.Interval-timeEpsilon) {
			s.record(time)
			return true
		}
	}
	if s.at[time] {
		s.record(time)
		return true
	}
	return false
}

func (s *PluginScheduler) record(time float64) {
	s.lastApplied = &time
	s.appliedAt[time] = struct{}{}
}

// Next returns the time of the follow-up firing after a successful firing at time.
func (s *PluginScheduler) Next(time float64) (float64, bool) {
	trig := s.trigger
	if trig.Interval == nil {
		return 0, false
	}
	next := time + *trig.Interval
	if trig.End != nil && next > *trig.End+timeEpsilon {
		return 0, false
	}
	return next, true
}

// LastApplied returns the most recent firing time.
func (s *PluginScheduler) LastApplied() (float64, bool) {
	if s.lastApplied == nil {
		return 0, false
	}
	return *s.lastApplied, true
}

// AppliedAt returns every firing time in ascending order.
func (s *PluginScheduler) AppliedAt() []float64 {
	times := slices.Collect(maps.Keys(s.appliedAt))
	sort.Float64s(times)
	return times
}

// === Plugin ===

// PluginArgs holds the plugin-specific arguments of a plugin instance, as decoded from YAML.
type PluginArgs map[string]any

// Plugin is an externally supplied intervention. Apply is called at every time
// its scheduler accepts; the returned events join the same queue as native events.
type Plugin interface {
	Name() string
	Apply(time float64, pop *Population, args PluginArgs, cfg Config) []Event
}

// ArgsValidator is implemented by plugins that check their arguments up front.
type ArgsValidator interface {
	ValidateArgs(args PluginArgs) error
}

// PluginInstance binds a plugin to its trigger and arguments. It is read-only
// configuration: every realization creates its own plugin through New, so
// plugin state is never shared between realizations.
type PluginInstance struct {
	New     PluginFactory
	Trigger Trigger
	Args    PluginArgs
}

// Validate checks the trigger and, when supported, the plugin arguments.
func (p PluginInstance) Validate() error {
	if p.New == nil {
		return fmt.Errorf("plugin factory is nil")
	}
	plugin := p.New()
	if plugin == nil {
		return fmt.Errorf("plugin factory returned nil")
	}
	if err := p.Trigger.Validate(); err != nil {
		return fmt.Errorf("%s: %w", plugin.Name(), err)
	}
	if v, ok := plugin.(ArgsValidator); ok {
		if err := v.ValidateArgs(p.Args); err != nil {
			return fmt.Errorf("%s: %w", plugin.Name(), err)
		}
	}
	return nil
}

// pluginRun is the per-realization state of one PluginInstance.
type pluginRun struct {
	plugin    Plugin
	args      PluginArgs
	scheduler *PluginScheduler
}

func newPluginRun(p PluginInstance) *pluginRun {
	return &pluginRun{
		plugin:    p.New(),
		args:      p.Args,
		scheduler: NewPluginScheduler(p.Trigger),
	}
}

func (r *pluginRun) initialEvents() []Event {
	times := r.scheduler.trigger.InitialTimes()
	events := make([]Event, 0, len(times))
	for _, t := range times {
		events = append(events, &PluginEvent{time: t, instance: r})
	}
	return events
}

// fire applies the plugin if its scheduler accepts time, then schedules the
// next periodic firing.
func (r *pluginRun) fire(time float64, pop *Population, cfg Config) []Event {
	if !r.scheduler.CanApply(time) {
		logrus.Debugf("plugin %s not applicable at %.2f", r.plugin.Name(), time)
		return nil
	}
	logrus.Debugf("plugin %s applied at %.2f", r.plugin.Name(), time)
	events := r.plugin.Apply(time, pop, r.args, cfg)
	if next, ok := r.scheduler.Next(time); ok {
		events = append(events, &PluginEvent{time: next, instance: r})
	}
	return events
}

// === Registry ===

// PluginFactory creates a fresh plugin.
type PluginFactory func() Plugin

var pluginRegistry = map[string]PluginFactory{}

// RegisterPlugin makes a plugin available by name. Sub-packages call it from init().
func RegisterPlugin(name string, factory PluginFactory) {
	if _, dup := pluginRegistry[name]; dup {
		logrus.Panicf("plugin %q registered twice", name)
	}
	pluginRegistry[name] = factory
}

// NewPlugin creates the plugin registered under name.
func NewPlugin(name string) (Plugin, error) {
	factory, err := lookupPlugin(name)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

func lookupPlugin(name string) (PluginFactory, error) {
	factory, ok := pluginRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q; valid: %v", name, RegisteredPlugins())
	}
	return factory, nil
}

// RegisteredPlugins returns the registered plugin names in sorted order.
func RegisteredPlugins() []string {
	names := slices.Collect(maps.Keys(pluginRegistry))
	sort.Strings(names)
	return names
}

// PluginSpec is the configuration form of a PluginInstance.
type PluginSpec struct {
	Name    string     `yaml:"name"`
	Trigger `yaml:",inline"`
	Args    PluginArgs `yaml:"args,omitempty"`
}

// Build resolves the plugin by name and validates the result.
func (s PluginSpec) Build() (PluginInstance, error) {
	factory, err := lookupPlugin(s.Name)
	if err != nil {
		return PluginInstance{}, err
	}
	inst := PluginInstance{New: factory, Trigger: s.Trigger, Args: s.Args}
	if err := inst.Validate(); err != nil {
		return PluginInstance{}, err
	}
	return inst, nil
}
