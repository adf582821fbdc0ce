package cvm

import (
	"fmt"
	"math"
)

// Percent is a percentage value, where 1.0 means 1%.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsNaN reports whether the percentage is undefined (an empty slice weight).
func (p Percent) IsNaN() bool { return math.IsNaN(float64(p)) }

func (p Percent) String() string {
	if p.IsNaN() {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if p.IsNaN() {
		return "-"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
