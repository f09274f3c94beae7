package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechLens/internal/model"
)

const yahooFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1704205800, 1704292200, 1704378600, 1704465000],
      "indicators": {"quote": [{
        "open":   [373.86, 369.01, null, 368.97],
        "high":   [375.90, 373.26, null, 372.06],
        "low":    [366.77, 368.51, null, 366.50],
        "close":  [370.87, 370.60, null, 367.94],
        "volume": [25258600, 23083500, null, 20987000]
      }]}
    }],
    "error": null
  }
}`

func TestYahooFetcher_FetchBars(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(yahooFixture))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	f.SymbolMap = map[string]string{"SPX500": "^GSPC"}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchBars(context.Background(), "SPX500", model.IntervalDaily, start, end)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/v8/finance/chart/^GSPC", got.URL.Path)
	assert.Equal(t, "1d", got.URL.Query().Get("interval"))
	assert.Equal(t, "1704067200", got.URL.Query().Get("period1"))
	assert.Equal(t, "1704499200", got.URL.Query().Get("period2"))

	require.Len(t, bars, 3, "null row skipped")
	assert.Equal(t, 370.87, bars[0].Close)
	assert.Equal(t, 367.94, bars[2].Close)
	assert.Equal(t, time.Unix(1704205800, 0).UTC(), bars[0].Time)
	assert.Equal(t, "yahoo", f.Name())
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchBars(context.Background(), "NOPE", model.IntervalDaily, time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooFetcher_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchBars(context.Background(), "MSFT", model.IntervalDaily, time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
