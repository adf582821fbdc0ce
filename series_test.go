package cvm

import (
	"reflect"
	"testing"
)

func TestSeries_AppendKeepsOrder(t *testing.T) {
	s := new(Series)
	s.Append(MustParse("2024-06-30"), 2)
	s.Append(MustParse("2024-04-30"), 1)
	s.Append(MustParse("2024-05-31"), 3)

	want := []Date{MustParse("2024-04-30"), MustParse("2024-05-31"), MustParse("2024-06-30")}
	if got := s.Dates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}

	// appending at an existing date replaces the value
	s.Append(MustParse("2024-05-31"), 30)
	if v, _ := s.Get(MustParse("2024-05-31")); v != 30 {
		t.Errorf("Get() after replace = %v, want 30", v)
	}
	if s.Len() != 3 {
		t.Errorf("Len() after replace = %d, want 3", s.Len())
	}
}

func TestSeries_FirstLatest(t *testing.T) {
	s := new(Series)
	if on, v := s.Latest(); !on.IsZero() || v != 0 {
		t.Errorf("Latest() on empty series = %s, %v", on, v)
	}
	s.Append(MustParse("2024-01-02"), 10).Append(MustParse("2024-03-01"), 12)
	if on, v := s.First(); on != MustParse("2024-01-02") || v != 10 {
		t.Errorf("First() = %s, %v", on, v)
	}
	if on, v := s.Latest(); on != MustParse("2024-03-01") || v != 12 {
		t.Errorf("Latest() = %s, %v", on, v)
	}
}

func TestSeries_LastPerPeriod(t *testing.T) {
	s := new(Series)
	s.Append(MustParse("2024-05-02"), 10)
	s.Append(MustParse("2024-05-31"), 11)
	s.Append(MustParse("2024-06-03"), 12)
	s.Append(MustParse("2024-06-28"), 13)

	monthly := s.LastPerPeriod(Monthly)
	if monthly.Len() != 2 {
		t.Fatalf("LastPerPeriod() has %d points, want 2", monthly.Len())
	}
	if v, ok := monthly.Get(MustParse("2024-05-31")); !ok || v != 11 {
		t.Errorf("May sample = %v, want 11", v)
	}
	// June's last observation lands on the month-end index even though
	// the 28th was the last trading day.
	if v, ok := monthly.Get(MustParse("2024-06-30")); !ok || v != 13 {
		t.Errorf("June sample = %v, want 13", v)
	}
}

func TestSeries_Between(t *testing.T) {
	s := new(Series)
	for _, day := range []string{"2023-12-29", "2024-01-02", "2024-06-28", "2024-12-30", "2025-01-02"} {
		s.Append(MustParse(day), 1)
	}
	year := NewRange(MustParse("2024-01-01"), MustParse("2024-12-31"))
	got := s.Between(year)
	want := []Date{MustParse("2024-01-02"), MustParse("2024-06-28"), MustParse("2024-12-30")}
	if !reflect.DeepEqual(got.Dates(), want) {
		t.Errorf("Between() = %v, want %v", got.Dates(), want)
	}
}

func TestSeries_Map(t *testing.T) {
	s := new(Series)
	s.Append(MustParse("2024-01-02"), 2).Append(MustParse("2024-01-03"), 3)
	doubled := s.Map(func(v float64) float64 { return v * 2 })
	if v, _ := doubled.Get(MustParse("2024-01-03")); v != 6 {
		t.Errorf("Map() = %v, want 6", v)
	}
	// the original is untouched
	if v, _ := s.Get(MustParse("2024-01-03")); v != 3 {
		t.Errorf("Map() mutated source: %v", v)
	}
}
