package cvm

import (
	"math"
	"strings"
	"testing"
)

func TestReadFIIReports(t *testing.T) {
	assetLiability := `CNPJ_Fundo;Data_Referencia;Obrigacoes_Aquisicao_Imoveis;Obrigacoes_Securitizacao_Recebiveis
 11.222.333/0001-44 ;2024-01-01;1000;500
11.222.333/0001-44;2024-02-01;1000;500
`
	// a post-reform file naming the CNPJ after the fund class
	complement := `CNPJ_Fundo_Classe;Data_Referencia;Valor_Ativo;Patrimonio_Liquido;Cotas_Emitidas;Valor_Patrimonial_Cotas;Percentual_Rentabilidade_Efetiva_Mes;Percentual_Dividend_Yield_Mes
11.222.333/0001-44;2024-01-01;30000;25000;250;100;0.0123;0.008
11.222.333/0001-44;2024-02-01;0;25500;250;102;;0.009
99.888.777/0001-66;2024-01-01;1;1;1;1;0;0
`
	general := `CNPJ_Fundo;Data_Referencia;Segmento_Atuacao
11.222.333/0001-44;2024-01-01;Shoppings
11.222.333/0001-44;2024-02-01;Shoppings
`

	got, err := ReadFIIReports(
		strings.NewReader(assetLiability),
		strings.NewReader(complement),
		strings.NewReader(general),
	)
	if err != nil {
		t.Fatalf("ReadFIIReports() unexpected error = %v", err)
	}

	// 99.888.777/0001-66 only filed the complement: the join drops it.
	if len(got) != 2 {
		t.Fatalf("ReadFIIReports() joined %d records, want 2", len(got))
	}

	jan := got[0]
	if jan.CNPJ != "11.222.333/0001-44" {
		t.Errorf("CNPJ = %q, want trimmed %q", jan.CNPJ, "11.222.333/0001-44")
	}
	if jan.Segment != "Shoppings" {
		t.Errorf("Segment = %q, want Shoppings", jan.Segment)
	}
	// fractions are rescaled to percent
	if jan.MonthlyReturn != 1.23 {
		t.Errorf("MonthlyReturn = %v, want 1.23", jan.MonthlyReturn)
	}
	if jan.DividendYield != 0.8 {
		t.Errorf("DividendYield = %v, want 0.8", jan.DividendYield)
	}
	if jan.TotalDebt != 1500 {
		t.Errorf("TotalDebt = %v, want 1500", jan.TotalDebt)
	}
	if jan.Leverage != 5.0 {
		t.Errorf("Leverage = %v, want 5.0", jan.Leverage)
	}

	// february has a zero asset total: the undefined ratio reads as zero
	feb := got[1]
	if feb.Leverage != 0 {
		t.Errorf("Leverage over zero assets = %v, want 0", feb.Leverage)
	}
	if feb.MonthlyReturn != 0 {
		t.Errorf("empty monthly return = %v, want 0", feb.MonthlyReturn)
	}
}

func TestPriceToBook(t *testing.T) {
	records := FIIs{
		{CNPJ: "c", ReportDate: MustParse("2024-01-01"), BookValue: 100},
		{CNPJ: "c", ReportDate: MustParse("2024-02-01"), BookValue: 102},
	}
	prices := new(Series)
	prices.Append(MustParse("2024-01-15"), 95)
	prices.Append(MustParse("2024-01-30"), 110)
	// no February quotes

	got := PriceToBook(records, prices)
	if got.Len() != 1 {
		t.Fatalf("PriceToBook() has %d points, want 1", got.Len())
	}
	if v, _ := got.Get(MustParse("2024-01-01")); v != 1.1 {
		t.Errorf("January P/BV = %v, want 1.1", v)
	}
}

func TestDividendYieldStats(t *testing.T) {
	dy := new(Series)
	dy.Append(MustParse("2024-01-01"), 1.0)
	dy.Append(MustParse("2024-02-01"), 2.0)
	dy.Append(MustParse("2024-03-01"), 0.5)

	mean, max, min := DividendYieldStats(dy)
	if mean != 1.17 || max != 2.0 || min != 0.5 {
		t.Errorf("DividendYieldStats() = %v, %v, %v, want 1.17, 2.0, 0.5", mean, max, min)
	}

	mean, max, min = DividendYieldStats(new(Series))
	if !math.IsNaN(mean) || !math.IsNaN(max) || !math.IsNaN(min) {
		t.Errorf("DividendYieldStats() on empty series = %v, %v, %v, want NaN", mean, max, min)
	}
}

func TestTrailingDividendYield(t *testing.T) {
	dy := new(Series)
	for i := 0; i < 13; i++ {
		dy.Append(MustParse("2023-01-01").AddMonth(i), 1.0)
	}

	got := TrailingDividendYield(dy)
	// the first eleven months carry no full window
	if got.Len() != 2 {
		t.Fatalf("TrailingDividendYield() has %d points, want 2", got.Len())
	}
	// (1.01)^12 - 1 = 12.68%
	if v, _ := got.Get(MustParse("2023-12-01")); v != 12.68 {
		t.Errorf("first full window = %v, want 12.68", v)
	}
	if v, _ := got.Get(MustParse("2024-01-01")); v != 12.68 {
		t.Errorf("second window = %v, want 12.68", v)
	}

	short := new(Series)
	short.Append(MustParse("2024-01-01"), 1.0)
	if got := TrailingDividendYield(short); got.Len() != 0 {
		t.Errorf("TrailingDividendYield() on a short series has %d points, want 0", got.Len())
	}
}
