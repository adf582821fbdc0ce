package cvm

import (
	"slices"
	"sort"
)

// Position is one disclosed asset holding of one fund on one reporting date,
// normalized onto the canonical schema shared by every CDA block reader.
type Position struct {
	FundType    string  // TP_FUNDO: "FI" or "CLASSES - FIF"
	FundCNPJ    string  // fund identifier
	FundName    string  // DENOM_SOCIAL
	ReportDate  Date    // DT_COMPTC
	Category    string  // TP_APLIC application category
	AssetType   string  // TP_ATIVO
	AssetCode   string  // CD_ATIVO, derived per block
	MarketValue float64 // VL_MERC_POS_FINAL

	// Validity window, only set by the options variant of the BLC-4 reader.
	ValidityStart Date
	ValidityEnd   Date
}

// Holdings is a set of normalized positions, possibly covering many funds
// and many reporting dates.
type Holdings []Position

// Merge concatenates several position sets into one, the way the block
// files are combined before per-fund analysis.
func Merge(hs ...Holdings) Holdings {
	var out Holdings
	for _, h := range hs {
		out = append(out, h...)
	}
	return out
}

// Fund returns only the positions of the fund with the given CNPJ.
// An absent CNPJ yields an empty result, not an error.
func (h Holdings) Fund(cnpj string) Holdings {
	var out Holdings
	for _, p := range h {
		if p.FundCNPJ == cnpj {
			out = append(out, p)
		}
	}
	return out
}

// Category returns only the positions whose application category matches
// exactly.
func (h Holdings) Category(category string) Holdings {
	var out Holdings
	for _, p := range h {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// On returns only the positions reported on the given date.
func (h Holdings) On(day Date) Holdings {
	var out Holdings
	for _, p := range h {
		if p.ReportDate == day {
			out = append(out, p)
		}
	}
	return out
}

// Dates returns the distinct reporting dates present, in chronological order.
func (h Holdings) Dates() []Date {
	var out []Date
	for _, p := range h {
		if !slices.Contains(out, p.ReportDate) {
			out = append(out, p.ReportDate)
		}
	}
	slices.SortFunc(out, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		default:
			return 0
		}
	})
	return out
}

// TotalValue sums the market values of all positions.
func (h Holdings) TotalValue() float64 {
	var total float64
	for _, p := range h {
		total += p.MarketValue
	}
	return total
}

// SortByValueDesc sorts positions by market value, largest first. The sort
// is stable so equal values keep their original file order.
func (h Holdings) SortByValueDesc() {
	sort.SliceStable(h, func(i, j int) bool { return h[i].MarketValue > h[j].MarketValue })
}

// SortByDate sorts positions by reporting date, oldest first, keeping the
// original order within a date.
func (h Holdings) SortByDate() {
	sort.SliceStable(h, func(i, j int) bool { return h[i].ReportDate.Before(h[j].ReportDate) })
}

// positionKey identifies a position within a fund's filing.
type positionKey struct {
	cnpj  string
	date  Date
	asset string
}

// Duplicates returns the positions whose (fund CNPJ, report date, asset
// code) key appears more than once. The CVM files do not guarantee this
// uniqueness; it is a property worth checking, not an invariant enforced
// at read time.
func (h Holdings) Duplicates() Holdings {
	seen := make(map[positionKey]int, len(h))
	for _, p := range h {
		seen[positionKey{p.FundCNPJ, p.ReportDate, p.AssetCode}]++
	}
	var out Holdings
	for _, p := range h {
		if seen[positionKey{p.FundCNPJ, p.ReportDate, p.AssetCode}] > 1 {
			out = append(out, p)
		}
	}
	return out
}
