package cvm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// Quotas holds the daily quota (net asset value per share) series of many
// funds, keyed by fund CNPJ.
type Quotas map[string]*Series

// Fund returns the quota series of one fund. An absent CNPJ yields an
// empty series, not an error; callers see its emptiness downstream.
func (q Quotas) Fund(cnpj string) *Series {
	if s, ok := q[cnpj]; ok {
		return s
	}
	return new(Series)
}

// OpenQuotas reads an inf_diario-style quota file: one row per fund per
// day with the VL_QUOTA column, under either CNPJ naming convention.
func OpenQuotas(path string) (Quotas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open quota file %q: %w", path, err)
	}
	defer f.Close()
	return ReadQuotas(charmap.ISO8859_1.NewDecoder().Reader(f))
}

// ReadQuotas is like OpenQuotas for an already-decoded reader.
func ReadQuotas(r io.Reader) (Quotas, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("quotas: cannot read header: %w", err)
	}
	h := newHeader(head)

	// Quota files carry no fund-type column; the CNPJ column itself tells
	// the naming variant apart.
	schema, err := h.variant(fundCNPJColumn)
	if err != nil {
		return nil, fmt.Errorf("quotas: %w", err)
	}
	iCNPJ, err := h.index(fundCNPJColumn[schema])
	if err != nil {
		return nil, fmt.Errorf("quotas: %w", err)
	}
	iDate, err := h.index("DT_COMPTC")
	if err != nil {
		return nil, fmt.Errorf("quotas: %w", err)
	}
	iQuota, err := h.index("VL_QUOTA")
	if err != nil {
		return nil, fmt.Errorf("quotas: %w", err)
	}

	out := make(Quotas)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("quotas: line %d: %w", line, err)
		}
		on, err := ParseDate(rec[iDate])
		if err != nil {
			return nil, fmt.Errorf("quotas: line %d: bad date: %w", line, err)
		}
		v, err := parseValue(rec[iQuota])
		if err != nil {
			return nil, fmt.Errorf("quotas: line %d: bad quota: %w", line, err)
		}
		cnpj := rec[iCNPJ]
		if out[cnpj] == nil {
			out[cnpj] = new(Series)
		}
		out[cnpj].Append(on, v)
	}
	return out, nil
}
