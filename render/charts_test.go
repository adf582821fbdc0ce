package render

import (
	"math"
	"strings"
	"testing"

	"github.com/brquant/cvm"
)

// collector is a Plotter that keeps figures for inspection.
type collector struct {
	figures []Figure
}

func (c *collector) Plot(f Figure) error {
	c.figures = append(c.figures, f)
	return nil
}

func equities(t *testing.T) cvm.Slice {
	t.Helper()
	h := cvm.Holdings{
		{FundCNPJ: "c", FundName: "Fundo Alpha", ReportDate: cvm.MustParse("2024-05-31"),
			Category: cvm.CategoryEquities, AssetCode: "PETR4", MarketValue: 100},
		{FundCNPJ: "c", FundName: "Fundo Alpha", ReportDate: cvm.MustParse("2024-05-31"),
			Category: cvm.CategoryEquities, AssetCode: "VALE3", MarketValue: 300},
		{FundCNPJ: "c", FundName: "Fundo Alpha", ReportDate: cvm.MustParse("2024-06-30"),
			Category: cvm.CategoryEquities, AssetCode: "PETR4", MarketValue: 200},
	}
	return cvm.NewSlice(h, cvm.CategoryEquities)
}

func TestPortfolioBars(t *testing.T) {
	figs := PortfolioBars("Fundo Alpha", equities(t))
	if len(figs) != 2 {
		t.Fatalf("PortfolioBars() built %d figures, want one per month", len(figs))
	}
	if !strings.Contains(figs[0].Title, "05/2024") {
		t.Errorf("first figure title = %q, want the month in it", figs[0].Title)
	}
	may := figs[0].Traces[0]
	if may.Kind != Bar || len(may.X) != 2 {
		t.Fatalf("May trace = %+v, want a 2-asset bar trace", may)
	}
	// weights are within the whole slice, rendered as percent
	if may.X[0] != "VALE3" {
		t.Errorf("largest May position is %q, want VALE3", may.X[0])
	}
	if math.Abs(may.Y[0]-50.0) > 0.01 {
		t.Errorf("VALE3 bar = %v, want 50%%", may.Y[0])
	}

	var c collector
	if err := PlotAll(&c, figs); err != nil {
		t.Fatalf("PlotAll() unexpected error = %v", err)
	}
	if len(c.figures) != 2 {
		t.Errorf("PlotAll() delivered %d figures, want 2", len(c.figures))
	}
}

func TestCumulativeChart(t *testing.T) {
	s := new(cvm.Series)
	s.Append(cvm.MustParse("2024-01-31"), 1.0)
	s.Append(cvm.MustParse("2024-02-29"), 1.05)

	fig := CumulativeChart("Retorno Acumulado", NamedSeries{Name: "Fundo Alpha", Series: s})
	if len(fig.Traces) != 1 || fig.Traces[0].Kind != Scatter {
		t.Fatalf("CumulativeChart() traces = %+v, want one scatter", fig.Traces)
	}
	if len(fig.HLines) != 1 || fig.HLines[0].At != 1 {
		t.Errorf("CumulativeChart() reference lines = %+v, want one at 1", fig.HLines)
	}
	if fig.Traces[0].X[0] != "2024-01-31" {
		t.Errorf("first x label = %q", fig.Traces[0].X[0])
	}
}

func TestAnnualHeatmap(t *testing.T) {
	fund := new(cvm.Series)
	fund.Append(cvm.MustParse("2023-12-31"), 12.5)
	fund.Append(cvm.MustParse("2024-12-31"), -3.2)
	benchmark := new(cvm.Series)
	benchmark.Append(cvm.MustParse("2024-12-31"), 8.0)

	fig := AnnualHeatmap("Retorno Anual",
		NamedSeries{Name: "Fundo Alpha", Series: fund},
		NamedSeries{Name: "CDI", Series: benchmark},
	)
	hm := fig.Traces[0]
	if hm.Kind != Heatmap {
		t.Fatalf("trace kind = %v, want heatmap", hm.Kind)
	}
	if len(hm.X) != 2 || hm.X[0] != "2023" || hm.X[1] != "2024" {
		t.Fatalf("years = %v, want [2023 2024]", hm.X)
	}
	if len(hm.Z) != 2 {
		t.Fatalf("rows = %d, want 2", len(hm.Z))
	}
	// the benchmark has no 2023 figure: the cell is NaN, not zero
	if !math.IsNaN(hm.Z[1][0]) {
		t.Errorf("missing year cell = %v, want NaN", hm.Z[1][0])
	}
	if hm.Z[1][1] != 8.0 {
		t.Errorf("CDI 2024 cell = %v, want 8.0", hm.Z[1][1])
	}
}

func TestRiskReturnChart(t *testing.T) {
	fig := RiskReturnChart("risco x retorno",
		cvm.RiskReturn{Name: "HGLG11", Mean: 0.03, Risk: 1.1},
		cvm.RiskReturn{Name: "XPLG11", Mean: -0.01, Risk: 1.4},
	)
	if len(fig.Traces) != 2 {
		t.Fatalf("RiskReturnChart() has %d traces, want one per asset", len(fig.Traces))
	}
	if len(fig.HLines) != 1 || len(fig.VLines) != 1 {
		t.Errorf("reference lines = %+v %+v, want one of each through the origin", fig.HLines, fig.VLines)
	}
}
