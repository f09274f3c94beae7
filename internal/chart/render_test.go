package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"TechLens/internal/calculator"
	"TechLens/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func table(t *testing.T, n int) *model.IndicatorTable {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + 10*math.Sin(float64(i)/7) + float64(i)*0.1
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	tbl, err := calculator.Compute(&model.PriceSeries{Symbol: "MSFT", Interval: model.IntervalDaily, Bars: bars}, calculator.DefaultParams())
	require.NoError(t, err)
	return tbl
}

func small() Options {
	return Options{Width: 400, Height: 200}
}

func TestRenderPrice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPrice(&buf, table(t, 120), small()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderRSI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRSI(&buf, table(t, 120), small()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_ShortHistorySkipsEmptySeries(t *testing.T) {
	// 10 bars: SMA_50 and RSI_14 are entirely undefined.
	tbl := table(t, 10)
	require.Zero(t, tbl.SMA.DefinedCount())
	require.Zero(t, tbl.RSI.DefinedCount())

	var price, rsi bytes.Buffer
	require.NoError(t, RenderPrice(&price, tbl, small()))
	require.NoError(t, RenderRSI(&rsi, tbl, small()))
	assert.True(t, bytes.HasPrefix(price.Bytes(), pngMagic))
	assert.True(t, bytes.HasPrefix(rsi.Bytes(), pngMagic))
}

func TestRender_TooFewPoints(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderPrice(&buf, table(t, 1), small()), ErrTooFewPoints)
	assert.ErrorIs(t, RenderRSI(&buf, nil, small()), ErrTooFewPoints)
}

func TestRenderFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := RenderFiles(dir, table(t, 80), small())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "price.png"), filepath.Join(dir, "rsi.png")}, paths)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), p)
	}
}

func TestTimeSeriesDropsUndefined(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := model.NewSeries("x", []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}, []float64{math.NaN(), 2, 3})
	require.NoError(t, err)

	ts, ok := timeSeries(s, chart.Style{})
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3}, ts.YValues)
	assert.Len(t, ts.XValues, 2)
}
