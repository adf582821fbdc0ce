package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/brquant/cvm"
	md "github.com/nao1215/markdown"
)

// CompositionMarkdown renders a fund's categorized portfolio as a markdown
// report: one table per non-empty category, assets ranked the way the
// category ranks them.
func CompositionMarkdown(c cvm.Composition) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio of %s", c.FundName))
	doc.PlainText(fmt.Sprintf("CNPJ: %s", c.FundCNPJ))

	for _, s := range c.Slices() {
		if s.Len() == 0 {
			continue
		}
		doc.H2(s.Category)

		table := md.TableSet{
			Header: []string{"Date", "Asset", "Weight", "Market Value"},
			Rows:   [][]string{},
		}
		for _, p := range s.Positions {
			table.Rows = append(table.Rows, []string{
				p.ReportDate.String(),
				p.AssetCode,
				formatWeight(p.Weight),
				cvm.BRL(p.MarketValue).String(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// ComparisonMarkdown renders a fund-versus-benchmark return table.
func ComparisonMarkdown(c *cvm.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s vs %s", c.FundName, c.BenchmarkName))

	table := md.TableSet{
		Header: []string{"Period", c.FundName, c.BenchmarkName, "Performance"},
		Rows:   [][]string{},
	}
	for _, row := range c.Rows {
		table.Rows = append(table.Rows, []string{
			row.Date.Format("2006-01"),
			cvm.Percent(row.Fund).String(),
			cvm.Percent(row.Benchmark).String(),
			cvm.Percent(row.Performance).SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// FIIMarkdown renders the indicator history of one real estate fund:
// price over book value, dividend yield and leverage per month, with the
// dividend yield summary on top.
func FIIMarkdown(ticker string, records cvm.FIIs, priceToBook *cvm.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s indicators", ticker))
	if len(records) > 0 {
		doc.PlainText(fmt.Sprintf("Segment: %s", records[len(records)-1].Segment))
	}

	mean, max, min := cvm.DividendYieldStats(records.DividendYields())
	doc.H2("Dividend Yield")
	doc.Table(md.TableSet{
		Header: []string{"Mean", "Max", "Min"},
		Rows: [][]string{{
			cvm.Percent(mean).String(),
			cvm.Percent(max).String(),
			cvm.Percent(min).String(),
		}},
	})

	doc.H2("Monthly history")
	table := md.TableSet{
		Header: []string{"Month", "P/BV", "Dividend Yield", "Monthly Return", "Leverage"},
		Rows:   [][]string{},
	}
	for _, r := range records {
		pvp := math.NaN()
		if v, ok := priceToBook.Get(r.ReportDate); ok {
			pvp = v
		}
		table.Rows = append(table.Rows, []string{
			r.ReportDate.Format("2006-01"),
			formatRatio(pvp),
			cvm.Percent(r.DividendYield).String(),
			cvm.Percent(r.MonthlyReturn).SignedString(),
			cvm.Percent(r.Leverage).String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ChangesMarkdown renders the month-over-month portfolio turnover of a
// category slice.
func ChangesMarkdown(fundName string, changes []cvm.Change) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio changes of %s", fundName))
	for _, ch := range changes {
		doc.H2(fmt.Sprintf("%s to %s", ch.From.Format("01/2006"), ch.To.Format("01/2006")))
		doc.BulletList(
			fmt.Sprintf("bought: %s", orNone(ch.Bought)),
			fmt.Sprintf("sold: %s", orNone(ch.Sold)),
		)
	}

	return doc.String()
}

func formatWeight(w float64) string {
	if math.IsNaN(w) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", w*100)
}

func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func orNone(assets []string) string {
	if len(assets) == 0 {
		return "none"
	}
	out := assets[0]
	for _, a := range assets[1:] {
		out += ", " + a
	}
	return out
}
