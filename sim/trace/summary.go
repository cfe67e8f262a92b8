package trace

import "strconv"

// Summary aggregates statistics from the records of a single realization.
// It is a Sink, so it can be teed next to the record outputs and Reset
// between realizations.
type Summary struct {
	TotalRecords int
	CountByType  map[string]int
	Removals     map[string]int // subject → number of REMOVAL records
	Infections   map[string]int // subject → number of INFECTION records
	Aborted      bool
	Ended        bool
	EndTime      float64
	EndPopSize   int
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	s := &Summary{}
	s.Reset()
	return s
}

// Reset discards everything aggregated so far.
func (s *Summary) Reset() {
	*s = Summary{
		CountByType: make(map[string]int),
		Removals:    make(map[string]int),
		Infections:  make(map[string]int),
	}
}

// Write folds one record into the summary.
func (s *Summary) Write(r Record) {
	s.TotalRecords++
	s.CountByType[r.Type]++
	switch r.Type {
	case "REMOVAL":
		s.Removals[r.Subject]++
	case "INFECTION":
		s.Infections[r.Subject]++
	case "ABORT":
		s.Aborted = true
	case "END":
		s.Ended = true
		s.EndTime = r.Time
		if v, ok := r.Param("popsize"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				s.EndPopSize = n
			}
		}
	}
}
