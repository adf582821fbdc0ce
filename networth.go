package cvm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// OpenNetWorth reads a cda_fi_PL file and returns the net-asset-value
// (patrimônio líquido) series of one fund. Both "FI" funds and
// "CLASSES - FIF" fund classes are considered; an absent CNPJ yields an
// empty series.
func OpenNetWorth(path, cnpj string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open PL file %q: %w", path, err)
	}
	defer f.Close()
	return ReadNetWorth(charmap.ISO8859_1.NewDecoder().Reader(f), cnpj)
}

// ReadNetWorth is like OpenNetWorth for an already-decoded reader.
func ReadNetWorth(r io.Reader, cnpj string) (*Series, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("PL: cannot read header: %w", err)
	}
	h := newHeader(head)

	schema, err := h.detect()
	if err != nil {
		return nil, fmt.Errorf("PL: %w", err)
	}
	iType, err := h.index(fundTypeColumn[schema])
	if err != nil {
		return nil, fmt.Errorf("PL: %w", err)
	}
	iCNPJ, err := h.index(fundCNPJColumn[schema])
	if err != nil {
		return nil, fmt.Errorf("PL: %w", err)
	}
	iDate, err := h.index("DT_COMPTC")
	if err != nil {
		return nil, fmt.Errorf("PL: %w", err)
	}
	iValue, err := h.index("VL_PATRIM_LIQ")
	if err != nil {
		return nil, fmt.Errorf("PL: %w", err)
	}

	out := new(Series)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("PL: line %d: %w", line, err)
		}
		if rec[iType] != "FI" && rec[iType] != "CLASSES - FIF" {
			continue
		}
		if rec[iCNPJ] != cnpj {
			continue
		}
		on, err := ParseDate(rec[iDate])
		if err != nil {
			return nil, fmt.Errorf("PL: line %d: bad report date: %w", line, err)
		}
		v, err := parseValue(rec[iValue])
		if err != nil {
			return nil, fmt.Errorf("PL: line %d: bad net worth: %w", line, err)
		}
		out.Append(on, v)
	}
	return out, nil
}
