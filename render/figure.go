// Package render turns fund analytics into figures and markdown reports.
// Figures are plain data: a caller supplies a Plotter to draw them with
// whatever backend it has, and reports come out as markdown strings ready
// for a file or the terminal.
package render

// TraceKind selects how one trace of a figure is drawn.
type TraceKind int

const (
	Bar TraceKind = iota
	Scatter
	Heatmap
)

func (k TraceKind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Scatter:
		return "scatter"
	case Heatmap:
		return "heatmap"
	}
	return "unknown"
}

// Trace is one data series of a figure. Bar and Scatter traces pair X
// labels with Y values; Heatmap traces carry a Z matrix indexed by the X
// and Y labels. Text, when set, annotates each point.
type Trace struct {
	Kind TraceKind
	Name string

	X []string
	Y []float64
	Z [][]float64

	Text []string
}

// Line is a horizontal or vertical reference line.
type Line struct {
	At    float64
	Color string
}

// Figure is a complete chart description, backend agnostic.
type Figure struct {
	Title         string
	Width, Height int

	Traces []Trace
	HLines []Line // horizontal reference lines
	VLines []Line // vertical reference lines
}

// Plotter draws figures. Implementations render to the screen, to image
// files, or collect figures in tests.
type Plotter interface {
	Plot(Figure) error
}

// PlotAll feeds every figure to the plotter, stopping at the first error.
func PlotAll(p Plotter, figs []Figure) error {
	for _, f := range figs {
		if err := p.Plot(f); err != nil {
			return err
		}
	}
	return nil
}
