package cvm

import (
	"errors"
	"strings"
	"testing"
)

const ibovSample = `IBOV - Carteira do Dia 28/06/24
Código;Ação;Tipo;Qtde. Teórica;Part. (%)
PETR4;PETROBRAS;PN N2;4.104.940.951;7,031
VALE3;VALE;ON NM;4.539.007.580;6,421
WEGE3;WEG;ON NM;1.482.465.305;2,502
Quantidade Teórica Total;;;93.682.297.437;100,000
Redutor;;;17.610.905,94;
`

func TestReadETFPortfolio(t *testing.T) {
	got, err := ReadETFPortfolio(strings.NewReader(ibovSample))
	if err != nil {
		t.Fatalf("ReadETFPortfolio() unexpected error = %v", err)
	}
	// the title line and the two summary lines are not constituents
	if len(got) != 3 {
		t.Fatalf("ReadETFPortfolio() parsed %d constituents, want 3", len(got))
	}

	petr, ok := got.Find("PETR4")
	if !ok {
		t.Fatal("Find(PETR4) not found")
	}
	if petr.Name != "PETROBRAS" || petr.Type != "PN N2" {
		t.Errorf("PETR4 = %+v", petr)
	}
	// thousands dots stripped from the quantity
	if petr.Quantity != 4104940951 {
		t.Errorf("PETR4 quantity = %v, want 4104940951", petr.Quantity)
	}
	// decimal comma converted on the weight
	if petr.Participation != 7.031 {
		t.Errorf("PETR4 participation = %v, want 7.031", petr.Participation)
	}

	want := 7.031 + 6.421 + 2.502
	if got := got.Participation(); got != want {
		t.Errorf("Participation() = %v, want %v", got, want)
	}

	if _, ok := got.Find("XXXX9"); ok {
		t.Error("Find() found a ticker that is not in the portfolio")
	}
}

func TestReadETFPortfolio_TooShort(t *testing.T) {
	_, err := ReadETFPortfolio(strings.NewReader("IBOV\nCódigo;Ação\n"))
	if !errors.Is(err, ErrSchema) {
		t.Errorf("got error %v, want ErrSchema", err)
	}
}
