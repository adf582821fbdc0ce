package cvm

import (
	"iter"
	"slices"
	"sort"
)

// Series stores a chronological sequence of float64 values, each associated
// with a specific date. Dates are unique and the sequence is always sorted.
type Series struct {
	days   []Date
	values []float64
}

// Append adds a point to the series. An existing value at that date is
// overwritten, giving higher priority to the last data.
func (s *Series) Append(on Date, v float64) *Series {
	if i := slices.Index(s.days, on); i >= 0 {
		s.values[i] = v
		return s
	}
	s.days, s.values = append(s.days, on), append(s.values, v)
	s.sort()
	return s
}

// chronological is a private implementation to keep the series sorted.
type chronological struct{ *Series }

func (c chronological) Len() int           { return len(c.days) }
func (c chronological) Less(i, j int) bool { return c.days[i].Before(c.days[j]) }
func (c chronological) Swap(i, j int) {
	c.days[i], c.days[j] = c.days[j], c.days[i]
	c.values[i], c.values[j] = c.values[j], c.values[i]
}

func (s *Series) sort() { sort.Sort(chronological{s}) }

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// Get returns the value at 'day' and true, or zero and false.
func (s *Series) Get(day Date) (float64, bool) {
	if i := slices.Index(s.days, day); i >= 0 {
		return s.values[i], true
	}
	return 0, false
}

// First returns the earliest date and value, or zeros on an empty series.
func (s *Series) First() (Date, float64) {
	if len(s.days) == 0 {
		return Date{}, 0
	}
	return s.days[0], s.values[0]
}

// Latest returns the latest date and value, or zeros on an empty series.
func (s *Series) Latest() (Date, float64) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return s.days[last], s.values[last]
}

// Values returns an iterator over all date/value pairs, in chronological order.
func (s *Series) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Dates returns the dates of the series, in chronological order.
func (s *Series) Dates() []Date { return slices.Clone(s.days) }

// Span returns the range covered by the series.
func (s *Series) Span() Range {
	if len(s.days) == 0 {
		return Range{}
	}
	return Range{From: s.days[0], To: s.days[len(s.days)-1]}
}

// LastPerPeriod keeps the last observed value of each calendar period,
// reindexed at the period's end date. This is how month-end quota values
// are sampled out of a daily series.
func (s *Series) LastPerPeriod(p Period) *Series {
	out := new(Series)
	for i, on := range s.days {
		out.Append(on.EndOf(p), s.values[i])
	}
	return out
}

// Between returns the sub-series whose dates fall within r, boundaries
// included. Slicing one calendar year out of a daily price series is how
// per-year volatility is computed.
func (s *Series) Between(r Range) *Series {
	out := new(Series)
	for i, on := range s.days {
		if r.Contains(on) {
			out.Append(on, s.values[i])
		}
	}
	return out
}

// Map returns a new series with f applied to every value.
func (s *Series) Map(f func(float64) float64) *Series {
	out := &Series{days: slices.Clone(s.days), values: make([]float64, len(s.values))}
	for i, v := range s.values {
		out.values[i] = f(v)
	}
	return out
}
