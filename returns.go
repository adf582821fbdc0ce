package cvm

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Return math follows the MaisRetorno methodology: monthly returns compare
// the last quota of a month with the last quota of the previous month, and
// annual returns compound the monthly unit factors of the calendar year.

// tradingDays is the day count used to annualize daily volatility.
const tradingDays = 252

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// changes computes the unrounded period-over-period percent change of a
// series. The first period has no previous value and is dropped. Compounded
// quantities (cumulative return, drawdown) build on this so that rounding
// only ever touches the emitted values, never the intermediate factors.
func changes(s *Series) *Series {
	out := new(Series)
	prev := math.NaN()
	for on, v := range s.Values() {
		if !math.IsNaN(prev) {
			out.Append(on, (v/prev-1)*100)
		}
		prev = v
	}
	return out
}

// PercentChange computes the period-over-period change of a series, in
// percent, rounded to 2 decimals. The first period has no previous value
// and is dropped.
func PercentChange(s *Series) *Series {
	return changes(s).Map(round2)
}

// MonthlyReturns computes the monthly return series of a quota series:
// last observed quota per calendar month, then percent change. Points are
// indexed at month end.
func MonthlyReturns(quotas *Series) *Series {
	return PercentChange(quotas.LastPerPeriod(Monthly))
}

// AnnualReturns compounds a monthly percent return series into annual
// returns: the product of the monthly unit factors (1 + r/100) of each
// calendar year, expressed back as a percent. Points are indexed at year
// end; partial years compound whatever months they have.
func AnnualReturns(monthly *Series) *Series {
	factors := make(map[Date]float64)
	var years []Date
	for on, r := range monthly.Values() {
		year := on.EndOf(Yearly)
		if _, ok := factors[year]; !ok {
			factors[year] = 1
			years = append(years, year)
		}
		factors[year] *= 1 + r/100
	}
	out := new(Series)
	for _, year := range years {
		out.Append(year, round2((factors[year]-1)*100))
	}
	return out
}

// Comparison is a fund return series joined with a benchmark's, aligned on
// date, with the fund's excess return over the benchmark per period.
type Comparison struct {
	FundName      string
	BenchmarkName string
	Rows          []ComparisonRow
}

// ComparisonRow is one aligned period of a Comparison. A period missing on
// either side carries NaN, which propagates into the performance column.
type ComparisonRow struct {
	Date        Date
	Fund        float64
	Benchmark   float64
	Performance float64 // Fund − Benchmark
}

// Compare joins a fund's percent return series with a benchmark's on date
// and derives the performance column: did the fund beat the benchmark?
func Compare(fundName string, fund *Series, benchmarkName string, benchmark *Series) *Comparison {
	union := new(Series)
	for on := range fund.Values() {
		union.Append(on, 0)
	}
	for on := range benchmark.Values() {
		union.Append(on, 0)
	}

	cmp := &Comparison{FundName: fundName, BenchmarkName: benchmarkName}
	for on := range union.Values() {
		row := ComparisonRow{Date: on, Fund: math.NaN(), Benchmark: math.NaN()}
		if v, ok := fund.Get(on); ok {
			row.Fund = v
		}
		if v, ok := benchmark.Get(on); ok {
			row.Benchmark = v
		}
		row.Performance = row.Fund - row.Benchmark
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp
}

// Cumulative compounds a percent return series into a growth-of-one-unit
// series. By convention the series starts at 1.0 on its first date
// regardless of that date's own return; later points still compound every
// return, first included.
func Cumulative(returns *Series) *Series {
	out := new(Series)
	acc := 1.0
	first := true
	for on, r := range returns.Values() {
		acc *= 1 + r/100
		if first {
			out.Append(on, 1.0)
			first = false
			continue
		}
		out.Append(on, acc)
	}
	return out
}

// CumulativeFromPrices derives the growth-of-one-unit series of a price
// series: daily percent changes (first dropped), compounded, starting at
// 1.0. The daily changes are compounded unrounded.
func CumulativeFromPrices(prices *Series) *Series {
	return Cumulative(changes(prices))
}

// Drawdown computes the running decline of a price series from its
// historical peak, in percent: compounded return over running maximum,
// minus one. Unlike Cumulative, the first point is not pinned to 1.0; the
// first return already counts toward the peak. A monotonically increasing
// series draws down 0% everywhere.
func Drawdown(prices *Series) *Series {
	out := new(Series)
	acc, peak := 1.0, math.Inf(-1)
	for on, r := range changes(prices).Values() {
		acc *= 1 + r/100
		if acc > peak {
			peak = acc
		}
		out.Append(on, round2((acc/peak-1)*100))
	}
	return out
}

// MaxDrawdown returns the most negative drawdown over the whole series,
// or NaN for a series too short to have one.
func MaxDrawdown(prices *Series) float64 {
	min := math.NaN()
	for _, dd := range Drawdown(prices).Values() {
		if math.IsNaN(min) || dd < min {
			min = dd
		}
	}
	return min
}

// LogReturns computes the daily log-return series of a price series,
// first period dropped.
func LogReturns(prices *Series) *Series {
	out := new(Series)
	prev := math.NaN()
	for on, v := range prices.Values() {
		if !math.IsNaN(prev) {
			out.Append(on, math.Log(v/prev))
		}
		prev = v
	}
	return out
}

// AnnualizedVolatility is the population standard deviation of daily
// log-returns scaled by √252, in percent, rounded to 2 decimals.
func AnnualizedVolatility(prices *Series) float64 {
	logs := LogReturns(prices)
	if logs.Len() == 0 {
		return math.NaN()
	}
	return round2(stat.PopStdDev(logs.values, nil) * math.Sqrt(tradingDays) * 100)
}

// RiskReturn summarizes one asset on the risk/return plane: mean and
// standard deviation of its daily log-returns, in percent.
type RiskReturn struct {
	Name string
	Mean float64 // expected daily log-return, percent
	Risk float64 // daily log-return standard deviation, percent
}

// NewRiskReturn computes the risk/return point of a price series.
func NewRiskReturn(name string, prices *Series) RiskReturn {
	logs := LogReturns(prices)
	return RiskReturn{
		Name: name,
		Mean: stat.Mean(logs.values, nil) * 100,
		Risk: stat.StdDev(logs.values, nil) * 100,
	}
}
