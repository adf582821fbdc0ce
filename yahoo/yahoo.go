// Package yahoo fetches daily price histories from the Yahoo Finance
// chart API. B3-listed tickers carry the ".SA" suffix there ("HGLG11.SA",
// "BOVA11.SA").
package yahoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brquant/cvm"
)

/*
	https://query1.finance.yahoo.com/v8/finance/chart/BOVA11.SA?period1=...&period2=...&interval=1d

	{
	    "chart": {
	        "result": [{
	            "timestamp": [1704897000, 1704983400],
	            "indicators": {
	                "adjclose": [{"adjclose": [101.5, 102.1]}]
	            }
	        }],
	        "error": null
	    }
	}
*/

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Prices downloads the dividend- and split-adjusted daily closes of one
// ticker over a date range. Days without a quote (holidays, halts) are
// absent from the result. Responses are cached on disk for a day.
func Prices(ticker string, r cvm.Range) (*cvm.Series, error) {
	addr := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=capitalGain%%7Cdiv%%7Csplit",
		ticker, unix(r.From), unix(r.To.Add(1)))

	var content chartResponse
	if err := jwget(cvm.NewDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("failed to fetch prices for %s: %w", ticker, err)
	}
	return series(ticker, content)
}

// series extracts the adjusted close series of a decoded chart payload.
func series(ticker string, content chartResponse) (*cvm.Series, error) {
	if e := content.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart API error for %s: %s: %s", ticker, e.Code, e.Description)
	}
	if len(content.Chart.Result) == 0 || len(content.Chart.Result[0].Indicators.Adjclose) == 0 {
		return nil, fmt.Errorf("chart API returned no series for %s", ticker)
	}

	result := content.Chart.Result[0]
	closes := result.Indicators.Adjclose[0].Adjclose
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("chart API returned %d closes for %d timestamps for %s",
			len(closes), len(result.Timestamp), ticker)
	}

	out := new(cvm.Series)
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		t := time.Unix(ts, 0).UTC()
		out.Append(cvm.NewDate(t.Year(), t.Month(), t.Day()), *closes[i])
	}
	return out, nil
}

// unix returns the UTC midnight timestamp of a date.
func unix(d cvm.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix()
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
