package render

import (
	"fmt"
	"math"

	"github.com/brquant/cvm"
)

// NamedSeries pairs a series with the label it is drawn under.
type NamedSeries struct {
	Name   string
	Series *cvm.Series
}

// PortfolioBars builds one horizontal bar chart per reporting month of a
// category slice: each asset's weight within the category, largest first.
func PortfolioBars(fundName string, s cvm.Slice) []Figure {
	var figs []Figure
	for _, on := range s.Dates() {
		day := s.On(on)
		t := Trace{Kind: Bar, Name: on.Format("01/2006")}
		for _, p := range day.Positions {
			t.X = append(t.X, p.AssetCode)
			t.Y = append(t.Y, p.Weight*100)
		}
		figs = append(figs, Figure{
			Title:  fmt.Sprintf("%s portfolio distribution - %s", fundName, on.Format("01/2006")),
			Width:  900,
			Height: 600,
			Traces: []Trace{t},
		})
	}
	return figs
}

// CumulativeChart draws growth-of-one-unit curves on a single figure, with
// a reference line at 1: above it an investment has gained since the first
// date, below it it has lost.
func CumulativeChart(title string, curves ...NamedSeries) Figure {
	fig := Figure{
		Title:  title,
		Height: 800,
		HLines: []Line{{At: 1, Color: "red"}},
	}
	for _, c := range curves {
		t := Trace{Kind: Scatter, Name: c.Name}
		for on, v := range c.Series.Values() {
			t.X = append(t.X, on.String())
			t.Y = append(t.Y, v)
		}
		fig.Traces = append(fig.Traces, t)
	}
	return fig
}

// AnnualHeatmap lays annual percent return series out as a matrix: one row
// per curve, one column per year, each cell annotated with its value.
// Years missing from a curve read as NaN.
func AnnualHeatmap(title string, curves ...NamedSeries) Figure {
	// the union of all years, chronological
	union := new(cvm.Series)
	for _, c := range curves {
		for on := range c.Series.Values() {
			union.Append(on, 0)
		}
	}
	years := union.Dates()

	t := Trace{Kind: Heatmap}
	for _, on := range years {
		t.X = append(t.X, fmt.Sprintf("%d", on.Year()))
	}
	for _, c := range curves {
		t.Text = append(t.Text, c.Name)
		row := make([]float64, 0, len(years))
		for _, on := range years {
			v, ok := c.Series.Get(on)
			if !ok {
				v = math.NaN()
			}
			row = append(row, v)
		}
		t.Z = append(t.Z, row)
	}

	return Figure{Title: title, Width: 2000, Height: 1000, Traces: []Trace{t}}
}

// RiskReturnChart places assets on the risk/return plane, one marker each,
// with red reference lines through the origin.
func RiskReturnChart(title string, points ...cvm.RiskReturn) Figure {
	fig := Figure{
		Title:  title,
		HLines: []Line{{At: 0, Color: "red"}},
		VLines: []Line{{At: 0, Color: "red"}},
	}
	for _, p := range points {
		fig.Traces = append(fig.Traces, Trace{
			Kind: Scatter,
			Name: p.Name,
			X:    []string{fmt.Sprintf("%.4f", p.Mean)},
			Y:    []float64{p.Risk},
		})
	}
	return fig
}

// DrawdownChart draws the running decline of a price series from its peak.
func DrawdownChart(name string, prices *cvm.Series) Figure {
	t := Trace{Kind: Scatter, Name: name}
	for on, v := range cvm.Drawdown(prices).Values() {
		t.X = append(t.X, on.String())
		t.Y = append(t.Y, v)
	}
	return Figure{
		Title:  fmt.Sprintf("%s drawdown", name),
		Traces: []Trace{t},
		HLines: []Line{{At: 0, Color: "red"}},
	}
}
