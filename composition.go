package cvm

import (
	"slices"
	"sort"
)

// Portfolio evolution helpers: a category slice built over several monthly
// filings is a chronological record of the fund's portfolio, and these
// functions answer what changed between consecutive months.

// Change lists the assets that entered and left a fund's portfolio between
// two consecutive reporting dates.
type Change struct {
	From, To Date
	Bought   []string // assets present on To but not on From
	Sold     []string // assets present on From but not on To
}

// Changes compares the portfolio at each reporting date with the previous
// one. Asset order follows the slice order of each date.
func Changes(s Slice) []Change {
	dates := sliceDates(s)
	var out []Change
	for i := 1; i < len(dates); i++ {
		prev := assetCodes(s.On(dates[i-1]))
		curr := assetCodes(s.On(dates[i]))

		ch := Change{From: dates[i-1], To: dates[i]}
		for _, a := range curr {
			if !slices.Contains(prev, a) {
				ch.Bought = append(ch.Bought, a)
			}
		}
		for _, a := range prev {
			if !slices.Contains(curr, a) {
				ch.Sold = append(ch.Sold, a)
			}
		}
		out = append(out, ch)
	}
	return out
}

// Count is the number of positions a fund held on one reporting date.
type Count struct {
	Date  Date
	Count int
}

// Counts returns the per-date position count of a slice, chronologically.
func Counts(s Slice) []Count {
	var out []Count
	for _, on := range sliceDates(s) {
		out = append(out, Count{Date: on, Count: s.On(on).Len()})
	}
	return out
}

// Rank is the top assets of a fund on one reporting date, by weight.
type Rank struct {
	Date   Date
	Assets []string
}

// TopN ranks the n largest positions by weight for each reporting date.
func TopN(s Slice, n int) []Rank {
	var out []Rank
	for _, on := range sliceDates(s) {
		day := s.On(on).Positions
		sort.SliceStable(day, func(i, j int) bool { return day[i].Weight > day[j].Weight })
		if len(day) > n {
			day = day[:n]
		}
		r := Rank{Date: on}
		for _, p := range day {
			r.Assets = append(r.Assets, p.AssetCode)
		}
		out = append(out, r)
	}
	return out
}

// sliceDates returns the distinct reporting dates of a slice, sorted.
func sliceDates(s Slice) []Date {
	h := make(Holdings, 0, len(s.Positions))
	for _, p := range s.Positions {
		h = append(h, p.Position)
	}
	return h.Dates()
}

func assetCodes(s Slice) []string {
	out := make([]string, 0, len(s.Positions))
	for _, p := range s.Positions {
		out = append(out, p.AssetCode)
	}
	return out
}
