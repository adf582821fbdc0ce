package cvm

import (
	"strings"
	"testing"
)

func TestReadNetWorth(t *testing.T) {
	csv := `TP_FUNDO;CNPJ_FUNDO;DENOM_SOCIAL;DT_COMPTC;VL_PATRIM_LIQ
FI;11.222.333/0001-44;Fundo Alpha;2024-05-31;1500000.00
FI;11.222.333/0001-44;Fundo Alpha;2024-06-30;1600000.00
CLASSES - FIF;11.222.333/0001-44;Fundo Alpha;2024-07-31;1700000.00
FIP;11.222.333/0001-44;Fundo Alpha;2024-06-30;999.00
FI;99.888.777/0001-66;Fundo Beta;2024-06-30;5.00
`
	got, err := ReadNetWorth(strings.NewReader(csv), "11.222.333/0001-44")
	if err != nil {
		t.Fatalf("ReadNetWorth() unexpected error = %v", err)
	}
	// FIP rows and other funds are dropped; FI and CLASSES - FIF kept
	if got.Len() != 3 {
		t.Fatalf("ReadNetWorth() has %d points, want 3", got.Len())
	}
	if v, _ := got.Get(MustParse("2024-07-31")); v != 1700000.00 {
		t.Errorf("July net worth = %v, want 1700000.00", v)
	}

	empty, err := ReadNetWorth(strings.NewReader(csv), "00.000.000/0000-00")
	if err != nil {
		t.Fatalf("ReadNetWorth() unexpected error = %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("unknown CNPJ produced %d points, want 0", empty.Len())
	}
}
