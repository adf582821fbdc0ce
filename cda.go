package cvm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Application categories disclosed in the CDA files, as spelled by the CVM.
const (
	CategoryEquities         = "Ações"
	CategoryBDR              = "Brazilian Depository Receipt - BDR"
	CategoryForeign          = "Investimento no Exterior"
	CategoryFundQuotas       = "Cotas de Fundos"
	CategoryPublicBonds      = "Títulos Públicos"
	CategoryShortObligations = "Obrigações por ações e outros TVM recebidos em empréstimo"
	CategoryDebentures       = "Debêntures"
	CategoryOptionsHeld      = "Opções - Posições titulares"
	CategoryOptionsWritten   = "Opções - Posições lançadas"
)

var (
	fundOnly       = []string{"FI"}
	fundAndClasses = []string{"FI", "CLASSES - FIF"}
)

// blcSpec describes how one CDA block file maps onto the canonical schema.
// The asset code is the only column whose origin differs per block: some
// blocks carry it directly, others derive it from an issuer, a quota-fund
// name, or a bond type plus maturity.
type blcSpec struct {
	name      string
	fundTypes []string // accepted TP_FUNDO values

	// assetCode resolves, from the header, a function extracting the asset
	// code of a record. Resolution fails with ErrSchema when the block's
	// source columns are missing.
	assetCode func(s Schema, h header) (func(rec []string) string, error)

	validity bool // read the option validity window columns

	// keep, when set, restricts rows after normalization.
	keep func(p Position) bool
}

// column returns an assetCode resolver reading a single raw column.
func column(name string) func(s Schema, h header) (func(rec []string) string, error) {
	return func(_ Schema, h header) (func(rec []string) string, error) {
		i, err := h.index(name)
		if err != nil {
			return nil, err
		}
		return func(rec []string) string { return rec[i] }, nil
	}
}

// lookup returns an assetCode resolver reading the column named by a
// schema-variant lookup table.
func lookup(table map[Schema]string) func(s Schema, h header) (func(rec []string) string, error) {
	return func(s Schema, h header) (func(rec []string) string, error) {
		i, err := h.index(table[s])
		if err != nil {
			return nil, err
		}
		return func(rec []string) string { return rec[i] }, nil
	}
}

// bondCode derives the public bond asset code by joining the bond type and
// its maturity date with a single space, the form used everywhere else the
// bond is referenced.
func bondCode(_ Schema, h header) (func(rec []string) string, error) {
	iType, err := h.index("TP_TITPUB")
	if err != nil {
		return nil, err
	}
	iMaturity, err := h.index("DT_VENC")
	if err != nil {
		return nil, err
	}
	return func(rec []string) string { return rec[iType] + " " + rec[iMaturity] }, nil
}

// OpenBLC1 reads a cda_fi_BLC_1 file (public bonds). Only plain investment
// funds ("FI") are kept.
func OpenBLC1(path string) (Holdings, error) { return openBLC(path, blc1) }

// OpenBLC2 reads a cda_fi_BLC_2 file (fund-of-funds quotas). Only plain
// investment funds ("FI") are kept.
func OpenBLC2(path string) (Holdings, error) { return openBLC(path, blc2) }

// OpenBLC4 reads a cda_fi_BLC_4 file (equities, BDRs and other listed
// assets). Both "FI" funds and "CLASSES - FIF" fund classes are kept.
func OpenBLC4(path string) (Holdings, error) { return openBLC(path, blc4) }

// OpenBLC4Options reads a cda_fi_BLC_4 file keeping the option validity
// window columns, for inspecting option positions as a chronological
// sequence.
func OpenBLC4Options(path string) (Holdings, error) { return openBLC(path, blc4Options) }

// OpenBLC7 reads a cda_fi_BLC_7 file (derivatives, keyed by issuer).
func OpenBLC7(path string) (Holdings, error) { return openBLC(path, blc7) }

// OpenBLC8 reads a cda_fi_BLC_8 file. The raw file conflates BDR and
// equity rows with a bond category that is authoritative in BLC-1, so the
// result is restricted to BDRs and equities, sorted by market value
// descending.
func OpenBLC8(path string) (Holdings, error) { return openBLC(path, blc8) }

// ReadBLC1 is like OpenBLC1 for an already-decoded reader.
func ReadBLC1(r io.Reader) (Holdings, error) { return readBLC(r, blc1) }

// ReadBLC2 is like OpenBLC2 for an already-decoded reader.
func ReadBLC2(r io.Reader) (Holdings, error) { return readBLC(r, blc2) }

// ReadBLC4 is like OpenBLC4 for an already-decoded reader.
func ReadBLC4(r io.Reader) (Holdings, error) { return readBLC(r, blc4) }

// ReadBLC4Options is like OpenBLC4Options for an already-decoded reader.
func ReadBLC4Options(r io.Reader) (Holdings, error) { return readBLC(r, blc4Options) }

// ReadBLC7 is like OpenBLC7 for an already-decoded reader.
func ReadBLC7(r io.Reader) (Holdings, error) { return readBLC(r, blc7) }

// ReadBLC8 is like OpenBLC8 for an already-decoded reader.
func ReadBLC8(r io.Reader) (Holdings, error) { return readBLC(r, blc8) }

var (
	blc1 = blcSpec{name: "BLC_1", fundTypes: fundOnly, assetCode: bondCode}
	blc2 = blcSpec{name: "BLC_2", fundTypes: fundOnly, assetCode: lookup(quotaFundNameColumn)}
	blc4 = blcSpec{name: "BLC_4", fundTypes: fundAndClasses, assetCode: column("CD_ATIVO")}

	blc4Options = blcSpec{
		name:      "BLC_4",
		fundTypes: fundAndClasses,
		assetCode: column("CD_ATIVO"),
		validity:  true,
	}

	blc7 = blcSpec{name: "BLC_7", fundTypes: fundOnly, assetCode: column("EMISSOR")}

	blc8 = blcSpec{
		name:      "BLC_8",
		fundTypes: fundOnly,
		assetCode: column("DS_ATIVO"),
		keep: func(p Position) bool {
			return p.Category == CategoryBDR || p.Category == CategoryEquities
		},
	}
)

// openBLC opens a CVM snapshot file (';'-separated, Latin-1) and reads it.
func openBLC(path string, spec blcSpec) (Holdings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s file %q: %w", spec.name, path, err)
	}
	defer f.Close()
	return readBLC(charmap.ISO8859_1.NewDecoder().Reader(f), spec)
}

// readBLC parses one CDA block file into canonical positions.
func readBLC(r io.Reader, spec blcSpec) (Holdings, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: cannot read header: %w", spec.name, err)
	}
	h := newHeader(head)

	schema, err := h.detect()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.name, err)
	}

	iType, err := h.index(fundTypeColumn[schema])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.name, err)
	}
	iCNPJ, err := h.index(fundCNPJColumn[schema])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.name, err)
	}
	assetCode, err := spec.assetCode(schema, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.name, err)
	}

	// Columns named identically in every variant.
	var fixed struct{ name, date, category, assetType, value int }
	for _, c := range []struct {
		raw string
		dst *int
	}{
		{"DENOM_SOCIAL", &fixed.name},
		{"DT_COMPTC", &fixed.date},
		{"TP_APLIC", &fixed.category},
		{"TP_ATIVO", &fixed.assetType},
		{"VL_MERC_POS_FINAL", &fixed.value},
	} {
		if *c.dst, err = h.index(c.raw); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}
	}

	var iStart, iEnd int
	if spec.validity {
		if iStart, err = h.index("DT_INI_VIGENCIA"); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}
		if iEnd, err = h.index("DT_FIM_VIGENCIA"); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}
	}

	var out Holdings
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", spec.name, line, err)
		}
		if !slices.Contains(spec.fundTypes, rec[iType]) {
			continue
		}

		p := Position{
			FundType:  rec[iType],
			FundCNPJ:  rec[iCNPJ],
			FundName:  rec[fixed.name],
			Category:  rec[fixed.category],
			AssetType: rec[fixed.assetType],
			AssetCode: assetCode(rec),
		}
		p.ReportDate, err = ParseDate(rec[fixed.date])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: bad report date: %w", spec.name, line, err)
		}
		p.MarketValue, err = parseValue(rec[fixed.value])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: bad market value: %w", spec.name, line, err)
		}
		if spec.validity {
			if p.ValidityStart, err = parseOptionalDate(rec[iStart]); err != nil {
				return nil, fmt.Errorf("%s: line %d: bad validity start: %w", spec.name, line, err)
			}
			if p.ValidityEnd, err = parseOptionalDate(rec[iEnd]); err != nil {
				return nil, fmt.Errorf("%s: line %d: bad validity end: %w", spec.name, line, err)
			}
		}
		if spec.keep != nil && !spec.keep(p) {
			continue
		}
		out = append(out, p)
	}

	if spec.keep != nil {
		// Restricted blocks are delivered ranked by position size.
		out.SortByValueDesc()
	}
	return out, nil
}

// parseValue parses a market value. CVM snapshots use a plain decimal point.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

// parseOptionalDate parses a date column that may legitimately be empty.
func parseOptionalDate(s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, nil
	}
	return ParseDate(s)
}
