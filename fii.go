package cvm

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// FII is one month of disclosed data about a real estate investment fund,
// joined from the three monthly report files it is scattered across.
type FII struct {
	CNPJ       string
	ReportDate Date

	// from the asset/liability report
	PropertyObligations   float64 // debt from property acquisitions
	ReceivableObligations float64 // debt from receivable securitizations

	// from the complement report
	TotalAssets   float64
	NetWorth      float64
	SharesIssued  float64
	BookValue     float64 // net worth per share
	MonthlyReturn float64 // percent
	DividendYield float64 // percent

	// from the general report
	Segment string

	// derived
	TotalDebt float64
	Leverage  float64 // total debt over total assets, percent
}

// FIIs is a chronological collection of monthly FII records.
type FIIs []FII

// Fund restricts the records to one fund's CNPJ, in place order.
func (f FIIs) Fund(cnpj string) FIIs {
	var out FIIs
	for _, r := range f {
		if r.CNPJ == cnpj {
			out = append(out, r)
		}
	}
	return out
}

// SortByDate sorts the records chronologically.
func (f FIIs) SortByDate() {
	sort.SliceStable(f, func(i, j int) bool { return f[i].ReportDate.Before(f[j].ReportDate) })
}

// DividendYields returns the monthly dividend yield of the records as a
// series. Callers usually restrict to one fund first.
func (f FIIs) DividendYields() *Series {
	out := new(Series)
	for _, r := range f {
		out.Append(r.ReportDate, r.DividendYield)
	}
	return out
}

// BookValues returns the net worth per share of the records as a series.
func (f FIIs) BookValues() *Series {
	out := new(Series)
	for _, r := range f {
		out.Append(r.ReportDate, r.BookValue)
	}
	return out
}

// OpenFIIReports reads and joins the three monthly FII report files:
// inf_mensal_fii_ativo_passivo, inf_mensal_fii_complemento and
// inf_mensal_fii_geral.
func OpenFIIReports(assetLiabilityPath, complementPath, generalPath string) (FIIs, error) {
	readers := make([]io.Reader, 0, 3)
	for _, path := range []string{assetLiabilityPath, complementPath, generalPath} {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open FII report %q: %w", path, err)
		}
		defer f.Close()
		readers = append(readers, charmap.ISO8859_1.NewDecoder().Reader(f))
	}
	return ReadFIIReports(readers[0], readers[1], readers[2])
}

// fiiKey identifies one fund in one reference month across the three files.
type fiiKey struct {
	cnpj string
	on   Date
}

// ReadFIIReports is like OpenFIIReports for already-decoded readers. The
// join is inner: a fund-month appears in the result only when all three
// files carry it. Percentage columns arrive as fractions and are rescaled
// to percent. An asset total of zero makes the leverage ratio undefined;
// like any other hole left by the join arithmetic it is filled with zero.
func ReadFIIReports(assetLiability, complement, general io.Reader) (FIIs, error) {
	type assets struct{ property, receivable float64 }
	type compl struct {
		totalAssets, netWorth, shares, bookValue float64
		monthlyReturn, dividendYield             float64
	}

	ap := make(map[fiiKey]assets)
	err := readFIITable(assetLiability, "ativo_passivo",
		[]string{"Obrigacoes_Aquisicao_Imoveis", "Obrigacoes_Securitizacao_Recebiveis"},
		func(key fiiKey, v []float64, _ []string) {
			ap[key] = assets{property: v[0], receivable: v[1]}
		})
	if err != nil {
		return nil, err
	}

	cp := make(map[fiiKey]compl)
	err = readFIITable(complement, "complemento",
		[]string{
			"Valor_Ativo", "Patrimonio_Liquido", "Cotas_Emitidas", "Valor_Patrimonial_Cotas",
			"Percentual_Rentabilidade_Efetiva_Mes", "Percentual_Dividend_Yield_Mes",
		},
		func(key fiiKey, v []float64, _ []string) {
			cp[key] = compl{
				totalAssets: v[0], netWorth: v[1], shares: v[2], bookValue: v[3],
				monthlyReturn: round2(v[4] * 100),
				dividendYield: round2(v[5] * 100),
			}
		})
	if err != nil {
		return nil, err
	}

	var out FIIs
	err = readFIITable(general, "geral", nil,
		func(key fiiKey, _ []float64, raw []string) {
			a, ok := ap[key]
			if !ok {
				return
			}
			c, ok := cp[key]
			if !ok {
				return
			}
			r := FII{
				CNPJ:                  key.cnpj,
				ReportDate:            key.on,
				PropertyObligations:   a.property,
				ReceivableObligations: a.receivable,
				TotalAssets:           c.totalAssets,
				NetWorth:              c.netWorth,
				SharesIssued:          c.shares,
				BookValue:             c.bookValue,
				MonthlyReturn:         c.monthlyReturn,
				DividendYield:         c.dividendYield,
				Segment:               raw[0],
			}
			r.TotalDebt = r.PropertyObligations + r.ReceivableObligations
			r.Leverage = r.TotalDebt / r.TotalAssets * 100
			if math.IsNaN(r.Leverage) || math.IsInf(r.Leverage, 0) {
				r.Leverage = 0
			}
			out = append(out, r)
		}, "Segmento_Atuacao")
	if err != nil {
		return nil, err
	}

	out.SortByDate()
	return out, nil
}

// readFIITable parses one FII monthly report: resolves the CNPJ naming
// variant, then hands each row's key, numeric columns and raw string
// columns to emit. Empty numeric cells count as zero.
func readFIITable(r io.Reader, name string, numeric []string, emit func(fiiKey, []float64, []string), raw ...string) error {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	head, err := cr.Read()
	if err != nil {
		return fmt.Errorf("%s: cannot read header: %w", name, err)
	}
	h := newHeader(head)

	schema, err := h.detectFII()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	iCNPJ, err := h.index(fiiCNPJColumn[schema])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	iDate, err := h.index("Data_Referencia")
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	iNum := make([]int, len(numeric))
	for k, col := range numeric {
		if iNum[k], err = h.index(col); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	iRaw := make([]int, len(raw))
	for k, col := range raw {
		if iRaw[k], err = h.index(col); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: line %d: %w", name, line, err)
		}
		key := fiiKey{cnpj: strings.TrimSpace(rec[iCNPJ])}
		if key.on, err = ParseDate(rec[iDate]); err != nil {
			return fmt.Errorf("%s: line %d: bad reference date: %w", name, line, err)
		}
		nums := make([]float64, len(iNum))
		for k, i := range iNum {
			if strings.TrimSpace(rec[i]) == "" {
				continue
			}
			if nums[k], err = parseValue(rec[i]); err != nil {
				return fmt.Errorf("%s: line %d: %w", name, line, err)
			}
		}
		strs := make([]string, len(iRaw))
		for k, i := range iRaw {
			strs[k] = rec[i]
		}
		emit(key, nums, strs)
	}
}

// PriceToBook divides each month-end market price by the fund's disclosed
// net worth per share on the matching reference month. Months without a
// price, or without a filing, are skipped.
func PriceToBook(f FIIs, prices *Series) *Series {
	monthly := prices.LastPerPeriod(Monthly)
	out := new(Series)
	for _, r := range f {
		p, ok := monthly.Get(r.ReportDate.EndOf(Monthly))
		if !ok {
			continue
		}
		out.Append(r.ReportDate, round2(p/r.BookValue))
	}
	return out
}

// DividendYieldStats summarizes a monthly dividend yield series as its
// mean, maximum and minimum, in percent. All three are NaN on an empty
// series.
func DividendYieldStats(dy *Series) (mean, max, min float64) {
	if dy.Len() == 0 {
		nan := math.NaN()
		return nan, nan, nan
	}
	max, min = math.Inf(-1), math.Inf(1)
	var sum float64
	for _, v := range dy.Values() {
		sum += v
		max = math.Max(max, v)
		min = math.Min(min, v)
	}
	return round2(sum / float64(dy.Len())), round2(max), round2(min)
}

// TrailingDividendYield compounds the monthly dividend yield over rolling
// twelve-month windows. A window is the product of its unit factors
// (1 + r/100) minus one, in percent; the first eleven months carry no full
// window and are dropped.
func TrailingDividendYield(dy *Series) *Series {
	const window = 12

	days := dy.Dates()
	out := new(Series)
	if len(days) < window {
		return out
	}
	factors := make([]float64, 0, len(days))
	for _, v := range dy.Values() {
		factors = append(factors, 1+v/100)
	}
	for i := window - 1; i < len(factors); i++ {
		acc := 1.0
		for _, f := range factors[i-window+1 : i+1] {
			acc *= f
		}
		out.Append(days[i], round2((acc-1)*100))
	}
	return out
}
