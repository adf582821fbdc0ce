package cvm

import (
	"errors"
	"fmt"
)

// ErrSchema is returned when a file does not carry any of the known raw
// column namings for a required column. It is unrecoverable: the caller
// must fix the input file, not retry.
var ErrSchema = errors.New("unknown file schema")

// Schema identifies which of the two CVM column-naming conventions a file
// uses. Filings up to the 2024 fund-class reform name columns after the
// fund (TP_FUNDO, CNPJ_FUNDO); later filings name them after the fund
// class (TP_FUNDO_CLASSE, CNPJ_FUNDO_CLASSE). The variant is resolved once
// per file from its header, then every raw column name is a fixed lookup.
type Schema int

const (
	SchemaFund  Schema = iota // pre-reform naming (TP_FUNDO, CNPJ_FUNDO, ...)
	SchemaClass               // post-reform naming (TP_FUNDO_CLASSE, ...)
)

func (s Schema) String() string {
	if s == SchemaClass {
		return "fund-class"
	}
	return "fund"
}

// Raw column names per schema variant. Readers never branch on column
// presence; they resolve the variant once and use these tables.
var (
	fundTypeColumn = map[Schema]string{
		SchemaFund:  "TP_FUNDO",
		SchemaClass: "TP_FUNDO_CLASSE",
	}
	fundCNPJColumn = map[Schema]string{
		SchemaFund:  "CNPJ_FUNDO",
		SchemaClass: "CNPJ_FUNDO_CLASSE",
	}
	quotaFundNameColumn = map[Schema]string{
		SchemaFund:  "NM_FUNDO_COTA",
		SchemaClass: "NM_FUNDO_CLASSE_SUBCLASSE_COTA",
	}
	fiiCNPJColumn = map[Schema]string{
		SchemaFund:  "CNPJ_Fundo",
		SchemaClass: "CNPJ_Fundo_Classe",
	}
)

// header maps a raw column name to its position in the file.
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[name] = i
	}
	return h
}

// index returns the position of a raw column, or an ErrSchema error.
func (h header) index(name string) (int, error) {
	i, ok := h[name]
	if !ok {
		return 0, fmt.Errorf("%w: column %q not found", ErrSchema, name)
	}
	return i, nil
}

// variant resolves the schema variant of a header by probing a lookup
// table's column under both namings. Every "does the file carry column A
// or column B" decision goes through here.
func (h header) variant(table map[Schema]string) (Schema, error) {
	if _, ok := h[table[SchemaFund]]; ok {
		return SchemaFund, nil
	}
	if _, ok := h[table[SchemaClass]]; ok {
		return SchemaClass, nil
	}
	return 0, fmt.Errorf("%w: neither %q nor %q found",
		ErrSchema, table[SchemaFund], table[SchemaClass])
}

// detect resolves the schema variant of a CDA header from its fund-type
// column.
func (h header) detect() (Schema, error) { return h.variant(fundTypeColumn) }

// detectFII resolves the schema variant of an FII monthly report header,
// which names its CNPJ column differently from the CDA files.
func (h header) detectFII() (Schema, error) { return h.variant(fiiCNPJColumn) }
