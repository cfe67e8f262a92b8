package sim

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

// ID identifies an individual. Ids are dense, start at 0 and are never reused.
type ID int

// NoID marks an unresolved target or an absent infector.
const NoID ID = -1

// String renders the id as written in records; NoID renders as ".".
func (id ID) String() string {
	if id == NoID {
		return trace.Missing
	}
	return strconv.Itoa(int(id))
}

// recorder formats simulation records for one realization and hands them to the sink.
type recorder struct {
	realization int
	sink        trace.Sink
}

// write panics on event types that never appear in a simulation log.
func (r *recorder) write(time float64, typ EventType, subject string, params ...trace.Param) {
	if !IsRecordType(typ) {
		logrus.Panicf("[realization %d] %s is not a record type", r.realization, typ)
	}
	if r.sink == nil {
		return
	}
	r.sink.Write(trace.Record{
		Realization: r.realization,
		Time:        time,
		Type:        typ.String(),
		Subject:     subject,
		Params:      params,
	})
}

func param(key string, value string) trace.Param {
	return trace.Param{Key: key, Value: value}
}

func floatParam(key string, value float64) trace.Param {
	return trace.Param{Key: key, Value: strconv.FormatFloat(value, 'f', 2, 64)}
}

func intParam(key string, value int) trace.Param {
	return trace.Param{Key: key, Value: strconv.Itoa(value)}
}
