package cvm

import "math"

// Weighted is one position of a category slice together with its weight:
// the share of the position's market value in the slice's total. The
// weight is a fraction (0.25 means a quarter of the category), relative to
// the category, not to the whole fund. That is deliberate: the categorized
// portfolio report ranks assets within their own category.
type Weighted struct {
	Position
	Weight float64
}

// Slice is a position set restricted to one application category of one
// fund, ranked and weighted.
type Slice struct {
	Category  string
	Positions []Weighted
}

// Options categories are inspected as a chronological sequence of
// positions rather than ranked by size.
func chronologicalCategory(category string) bool {
	return category == CategoryOptionsHeld || category == CategoryOptionsWritten
}

// NewSlice partitions one fund's positions down to a single category,
// sorted by market value descending (options: by report date ascending),
// and computes each position's weight as value over slice total. A slice
// whose total is zero yields NaN weights; that division is intentionally
// unguarded, callers observe the NaN. An empty selection yields an empty
// slice, never an error.
func NewSlice(h Holdings, category string) Slice {
	sel := h.Category(category)
	if chronologicalCategory(category) {
		sel.SortByDate()
	} else {
		sel.SortByValueDesc()
	}

	total := sel.TotalValue()
	s := Slice{Category: category, Positions: make([]Weighted, 0, len(sel))}
	for _, p := range sel {
		s.Positions = append(s.Positions, Weighted{Position: p, Weight: p.MarketValue / total})
	}
	return s
}

// Len returns the number of positions in the slice.
func (s Slice) Len() int { return len(s.Positions) }

// Total sums the market values of the slice.
func (s Slice) Total() float64 {
	var total float64
	for _, p := range s.Positions {
		total += p.MarketValue
	}
	return total
}

// SumWeights re-sums the weight column. It is 1.0 (within floating
// tolerance) for any non-empty slice with a non-zero total, and NaN for an
// empty slice.
func (s Slice) SumWeights() float64 {
	if len(s.Positions) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, p := range s.Positions {
		sum += p.Weight
	}
	return sum
}

// Dates returns the distinct reporting dates of the slice, sorted.
func (s Slice) Dates() []Date { return sliceDates(s) }

// On restricts the slice to one reporting date, keeping weights as
// computed over the whole slice.
func (s Slice) On(day Date) Slice {
	out := Slice{Category: s.Category}
	for _, p := range s.Positions {
		if p.ReportDate == day {
			out.Positions = append(out.Positions, p)
		}
	}
	return out
}

// Composition is a fund's portfolio partitioned into the nine disclosed
// application categories.
type Composition struct {
	FundCNPJ string
	FundName string

	Equities         Slice
	BDRs             Slice
	Foreign          Slice
	FundQuotas       Slice
	PublicBonds      Slice
	ShortObligations Slice
	Debentures       Slice
	OptionsHeld      Slice
	OptionsWritten   Slice
}

// NewComposition filters the positions of the fund with the given CNPJ and
// splits them into category slices. An unknown CNPJ produces a composition
// of empty slices.
func NewComposition(h Holdings, cnpj string) Composition {
	fund := h.Fund(cnpj)
	c := Composition{FundCNPJ: cnpj}
	if len(fund) > 0 {
		c.FundName = fund[0].FundName
	}
	c.Equities = NewSlice(fund, CategoryEquities)
	c.BDRs = NewSlice(fund, CategoryBDR)
	c.Foreign = NewSlice(fund, CategoryForeign)
	c.FundQuotas = NewSlice(fund, CategoryFundQuotas)
	c.PublicBonds = NewSlice(fund, CategoryPublicBonds)
	c.ShortObligations = NewSlice(fund, CategoryShortObligations)
	c.Debentures = NewSlice(fund, CategoryDebentures)
	c.OptionsHeld = NewSlice(fund, CategoryOptionsHeld)
	c.OptionsWritten = NewSlice(fund, CategoryOptionsWritten)
	return c
}

// Slices returns the nine category slices in disclosure order.
func (c Composition) Slices() []Slice {
	return []Slice{
		c.Equities, c.BDRs, c.Foreign, c.FundQuotas, c.PublicBonds,
		c.ShortObligations, c.Debentures, c.OptionsHeld, c.OptionsWritten,
	}
}
