package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TechLens/internal/model"
)

var baseTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

func series(t *testing.T, values ...float64) model.Series {
	t.Helper()
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = baseTime.AddDate(0, 0, i)
	}
	s, err := model.NewSeries("Close", times, values)
	require.NoError(t, err)
	return s
}

func priceSeries(values ...float64) *model.PriceSeries {
	bars := make([]model.OHLCV, len(values))
	for i, v := range values {
		bars[i] = model.OHLCV{Time: baseTime.AddDate(0, 0, i), Open: v, High: v, Low: v, Close: v}
	}
	return &model.PriceSeries{Symbol: "MSFT", Interval: model.IntervalDaily, Bars: bars}
}

// zigzag produces a deterministic series with both up and down days.
func zigzag(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		switch i % 5 {
		case 0, 1, 3:
			p += float64(i%7) * 0.75
		default:
			p -= float64(i%4) * 1.3
		}
		out[i] = p
	}
	return out
}

func requireUndefinedPrefix(t *testing.T, s model.Series, n int) {
	t.Helper()
	for i := 0; i < n && i < s.Len(); i++ {
		require.Falsef(t, s.At(i).Valid, "%s[%d] should be undefined", s.Name, i)
	}
	for i := n; i < s.Len(); i++ {
		require.Truef(t, s.At(i).Valid, "%s[%d] should be defined", s.Name, i)
	}
}
