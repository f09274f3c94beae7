package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyTimes(n int) []time.Time {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.AddDate(0, 0, i)
	}
	return out
}

func TestNewSeries_LengthMismatch(t *testing.T) {
	_, err := NewSeries("x", dailyTimes(2), []float64{1})
	assert.Error(t, err)
}

func TestSeries_ScanCarriesPrevious(t *testing.T) {
	s, err := NewSeries("x", dailyTimes(4), []float64{1, 2, 3, 4})
	require.NoError(t, err)

	sum := s.Scan("cumsum",
		func(v Value) Value { return v },
		func(prev, cur Value) Value { return prev.Add(cur) })

	assert.Equal(t, []Value{Of(1), Of(3), Of(6), Of(10)}, sum.Values)
	assert.Equal(t, s.Times, sum.Times)
	assert.Equal(t, []Value{Of(1), Of(2), Of(3), Of(4)}, s.Values, "input untouched")
}

func TestSeries_Diff(t *testing.T) {
	s, err := NewSeries("x", dailyTimes(3), []float64{5, 7, 4})
	require.NoError(t, err)
	assert.Equal(t, []Value{Undefined, Of(2), Of(-3)}, s.Diff("d").Values)
}

func TestSeries_Rolling(t *testing.T) {
	s, err := NewSeries("x", dailyTimes(5), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	hi := s.Rolling("max", 2, func(w []float64) float64 {
		if w[0] > w[1] {
			return w[0]
		}
		return w[1]
	})
	assert.Equal(t, []Value{Undefined, Of(2), Of(3), Of(4), Of(5)}, hi.Values)

	tooLong := s.Rolling("sum", 6, func(w []float64) float64 { return 0 })
	assert.Zero(t, tooLong.DefinedCount())
	assert.Equal(t, 5, tooLong.Len())
}

func TestSeries_ZipMisaligned(t *testing.T) {
	a, _ := NewSeries("a", dailyTimes(2), []float64{1, 2})
	b, _ := NewSeries("b", dailyTimes(3), []float64{1, 2, 3})
	_, err := a.Zip("c", b, Value.Sub)
	assert.True(t, errors.Is(err, ErrMisaligned))
}

func TestSeries_Last(t *testing.T) {
	var empty Series
	assert.Equal(t, Undefined, empty.Last())

	s, _ := NewSeries("a", dailyTimes(2), []float64{1, 2})
	s.Values[0] = Undefined
	assert.Equal(t, Of(2), s.Last())
	assert.True(t, math.IsNaN(s.At(0).Float64()))
}

func TestPriceSeries_Closes(t *testing.T) {
	ps := &PriceSeries{Bars: []OHLCV{
		{Time: dailyTimes(1)[0], Close: 10},
		{Time: dailyTimes(2)[1], Close: 11},
	}}
	c := ps.Closes()
	assert.Equal(t, "Close", c.Name)
	assert.Equal(t, []Value{Of(10), Of(11)}, c.Values)
	assert.Equal(t, 2, ps.Len())
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("")
	require.NoError(t, err)
	assert.Equal(t, IntervalDaily, iv)
	iv, err = ParseInterval("1wk")
	require.NoError(t, err)
	assert.Equal(t, IntervalWeekly, iv)
	_, err = ParseInterval("5m")
	assert.Error(t, err)
}
