package cvm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ETFConstituent is one line of a B3 theoretical portfolio file: one stock
// of the index an ETF tracks, with its weight.
type ETFConstituent struct {
	Code          string  // ticker, "PETR4"
	Name          string  // company name
	Type          string  // share type, "ON" or "PN"
	Quantity      float64 // theoretical quantity
	Participation float64 // weight in the index, percent
}

// ETFPortfolio is the full theoretical portfolio of one index.
type ETFPortfolio []ETFConstituent

// Participation sums the weight column, in percent.
func (p ETFPortfolio) Participation() float64 {
	var sum float64
	for _, c := range p {
		sum += c.Participation
	}
	return sum
}

// Find returns the constituent with the given ticker, or false.
func (p ETFPortfolio) Find(code string) (ETFConstituent, bool) {
	for _, c := range p {
		if c.Code == code {
			return c, true
		}
	}
	return ETFConstituent{}, false
}

// OpenETFPortfolio reads a theoretical portfolio file as published by B3
// for its indexes (IBOV, SMLL and friends): ';'-separated, Latin-1, a
// title line above the header and two summary lines below the table.
func OpenETFPortfolio(path string) (ETFPortfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ETF portfolio %q: %w", path, err)
	}
	defer f.Close()
	return ReadETFPortfolio(charmap.ISO8859_1.NewDecoder().Reader(f))
}

// ReadETFPortfolio is like OpenETFPortfolio for an already-decoded reader.
func ReadETFPortfolio(r io.Reader) (ETFPortfolio, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	// The title and footer lines do not share the table's field count.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ETF portfolio: %w", err)
	}
	// title, header, at least one row, two footers
	if len(records) < 5 {
		return nil, fmt.Errorf("ETF portfolio: %w: got %d lines", ErrSchema, len(records))
	}

	h := newHeader(records[1])
	var cols struct{ code, name, typ, quantity, part int }
	for _, c := range []struct {
		raw string
		dst *int
	}{
		{"Código", &cols.code},
		{"Ação", &cols.name},
		{"Tipo", &cols.typ},
		{"Qtde. Teórica", &cols.quantity},
		{"Part. (%)", &cols.part},
	} {
		if *c.dst, err = h.index(c.raw); err != nil {
			return nil, fmt.Errorf("ETF portfolio: %w", err)
		}
	}

	rows := records[2 : len(records)-2]
	out := make(ETFPortfolio, 0, len(rows))
	for i, rec := range rows {
		c := ETFConstituent{
			Code: rec[cols.code],
			Name: rec[cols.name],
			Type: rec[cols.typ],
		}
		// Quantities carry thousands dots, weights a decimal comma.
		q := strings.ReplaceAll(rec[cols.quantity], ".", "")
		if c.Quantity, err = strconv.ParseFloat(q, 64); err != nil {
			return nil, fmt.Errorf("ETF portfolio: line %d: bad quantity %q: %w", i+3, rec[cols.quantity], err)
		}
		w := strings.ReplaceAll(rec[cols.part], ",", ".")
		if c.Participation, err = strconv.ParseFloat(w, 64); err != nil {
			return nil, fmt.Errorf("ETF portfolio: line %d: bad participation %q: %w", i+3, rec[cols.part], err)
		}
		out = append(out, c)
	}
	return out, nil
}
