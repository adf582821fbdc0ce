package cvm

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"15/01/2025", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDate(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDateBR(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"15/01/2025", NewDate(2025, time.January, 15), false},
		{"01/07/2024", NewDate(2024, time.July, 1), false},
		// month-first strings must not silently swap day and month
		{"2025-01-15", Date{}, true},
		{"13/32/2025", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateBR(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDateBR(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("ParseDateBR(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEndOf(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		period   Period
		expected Date
	}{
		{"leap february", NewDate(2024, time.February, 10), Monthly, NewDate(2024, time.February, 29)},
		{"regular month", NewDate(2024, time.June, 1), Monthly, NewDate(2024, time.June, 30)},
		{"year", NewDate(2024, time.June, 1), Yearly, NewDate(2024, time.December, 31)},
		{"day", NewDate(2024, time.June, 15), Daily, NewDate(2024, time.June, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.EndOf(tt.period); got != tt.expected {
				t.Errorf("EndOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}
