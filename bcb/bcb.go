// Package bcb fetches time series from the Brazilian central bank's SGS
// (Sistema Gerenciador de Séries Temporais) open API. The usual suspects
// are the CDI and Selic reference rates and the IPCA and IGP-M inflation
// indexes, used as benchmarks for fund returns.
package bcb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/brquant/cvm"
)

// SGS codes of the series this package is normally asked for. Any other
// code published on the SGS catalog works with Fetch too.
const (
	Selic = 11  // daily Selic rate, percent
	CDI   = 12  // daily CDI rate, percent
	IGPM  = 189 // monthly IGP-M variation, percent
	IPCA  = 433 // monthly IPCA variation, percent
)

/*
	The SGS payload is a flat JSON list, dates in day-first Brazilian
	format and values as decimal strings:

	[
	    {"data": "01/07/2024", "valor": "0.040168"},
	    {"data": "02/07/2024", "valor": "0.040168"}
	]
*/

// Fetch downloads one SGS series restricted to a date range. Responses
// are cached on disk for a day.
func Fetch(code int, r cvm.Range) (*cvm.Series, error) {
	addr := fmt.Sprintf(
		"https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados?formato=json&dataInicial=%s&dataFinal=%s",
		code, r.From.Format(cvm.BRDateFormat), r.To.Format(cvm.BRDateFormat))

	var jobj any
	if err := jwget(cvm.NewDailyCachingClient(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget sgs.%d: %w", code, err)
	}
	return parse(code, jobj)
}

// parse extracts the date and value columns of a decoded SGS payload.
func parse(code int, jobj any) (*cvm.Series, error) {
	jdates, err := jsonpath.Get("$[*].data", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing sgs.%d: %q %w", code, "$[*].data", err)
	}
	jvals, err := jsonpath.Get("$[*].valor", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing sgs.%d: %q %w", code, "$[*].valor", err)
	}

	dates, ok := jdates.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing sgs.%d: dates are not a list: %v", code, jdates)
	}
	vals, ok := jvals.([]any)
	if !ok || len(vals) != len(dates) {
		return nil, fmt.Errorf("error parsing sgs.%d: values do not pair with dates", code)
	}

	out := new(cvm.Series)
	for i := range dates {
		ds, ok := dates[i].(string)
		if !ok {
			return nil, fmt.Errorf("error parsing sgs.%d: date %v is not a string", code, dates[i])
		}
		on, err := cvm.ParseDateBR(ds)
		if err != nil {
			return nil, fmt.Errorf("error parsing sgs.%d: %w", code, err)
		}
		vs, ok := vals[i].(string)
		if !ok {
			return nil, fmt.Errorf("error parsing sgs.%d: value %v is not a string", code, vals[i])
		}
		v, err := strconv.ParseFloat(vs, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing sgs.%d: bad value %q: %w", code, vs, err)
		}
		out.Append(on, v)
	}
	return out, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
