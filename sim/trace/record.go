// Package trace provides the simulation record type and the sinks records are
// written to. This package has no dependencies on sim/: it stores pure data types.
package trace

import (
	"fmt"
	"strings"
)

// Missing is written in place of an absent subject or parameter list.
const Missing = "."

// Param is a single key=value pair attached to a record.
type Param struct {
	Key   string
	Value string
}

// Record captures one line of the simulation log.
type Record struct {
	Realization int
	Time        float64
	Type        string
	Subject     string  // Missing when the record has no subject
	Params      []Param // nil renders as Missing
}

// Line renders the record as a tab-separated line without the trailing newline:
// realization, time (2 decimals), type, subject, key=value[,key=value...].
func (r Record) Line() string {
	subject := r.Subject
	if subject == "" {
		subject = Missing
	}
	return fmt.Sprintf("%d\t%.2f\t%s\t%s\t%s", r.Realization, r.Time, r.Type, subject, r.ParamString())
}

// ParamString joins the parameters as key=value pairs separated by commas.
func (r Record) ParamString() string {
	if len(r.Params) == 0 {
		return Missing
	}
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, ",")
}

// Param returns the value of the named parameter.
func (r Record) Param(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Sink receives records in the order they are produced.
// Implementations own any buffering; the simulator never closes a sink.
type Sink interface {
	Write(record Record)
}

// Tee fans records out to every sink in order.
type Tee []Sink

// Write forwards the record to each sink.
func (t Tee) Write(record Record) {
	for _, s := range t {
		s.Write(record)
	}
}
