package trace

// Log collects records in memory.
type Log struct {
	Records []Record
}

// NewLog creates a Log ready for recording.
func NewLog() *Log {
	return &Log{
		Records: make([]Record, 0),
	}
}

// Write appends a record.
func (l *Log) Write(record Record) {
	l.Records = append(l.Records, record)
}

// OfType returns the records with the given type, preserving order.
func (l *Log) OfType(typ string) []Record {
	var out []Record
	for _, r := range l.Records {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// Reset drops all collected records.
func (l *Log) Reset() {
	l.Records = l.Records[:0]
}
