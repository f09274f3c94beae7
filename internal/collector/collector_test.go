package collector

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechLens/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	raw := []model.OHLCV{
		{Time: day(5), Close: 5},
		{Time: day(2), Close: 2},
		{Time: day(3), Close: 3},
		{Time: day(3), Close: 33},
		{Time: day(4), Close: math.NaN()},
		{Time: day(1), Close: 1},
		{Time: day(9), Close: 9},
	}
	bars := Normalize(raw, day(2), day(9))

	var closes []float64
	for _, b := range bars {
		closes = append(closes, b.Close)
	}
	assert.Equal(t, []float64{2, 3, 5}, closes, "sorted, first duplicate kept, [start, end) applied")
	assert.Equal(t, 5.0, raw[0].Close, "input untouched")
	assert.NoError(t, ValidateBars(bars))
}

func TestNormalize_OpenRange(t *testing.T) {
	raw := []model.OHLCV{{Time: day(2), Close: 2}, {Time: day(1), Close: 1}}
	assert.Len(t, Normalize(raw, time.Time{}, time.Time{}), 2)
}

func TestValidateBars(t *testing.T) {
	assert.True(t, errors.Is(ValidateBars(nil), ErrEmptySeries))
	err := ValidateBars([]model.OHLCV{{Time: day(2)}, {Time: day(2)}})
	assert.True(t, errors.Is(err, ErrUnorderedSeries))
}

func TestCollector_Collect(t *testing.T) {
	mock := &MockFetcher{Price: 400}
	col := NewCollector(mock, "MSFT", model.IntervalDaily, day(1), day(31))

	ps, err := col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MSFT", ps.Symbol)
	assert.Equal(t, model.IntervalDaily, ps.Interval)
	assert.Equal(t, 22, ps.Len(), "weekdays of January 2024 before the 31st")
	assert.Equal(t, 1, mock.Calls)
	for _, b := range ps.Bars {
		assert.NotEqual(t, time.Saturday, b.Time.Weekday())
		assert.NotEqual(t, time.Sunday, b.Time.Weekday())
	}
}

func TestCollector_Errors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewCollector(&MockFetcher{Err: boom}, "MSFT", model.IntervalDaily, day(1), day(5)).
		Collect(context.Background())
	assert.True(t, errors.Is(err, boom))

	_, err = NewCollector(&MockFetcher{Bars: []model.OHLCV{}}, "MSFT", model.IntervalDaily, day(1), day(5)).
		Collect(context.Background())
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestAggregateDailyToWeekly(t *testing.T) {
	// 2024-01-01 is a Monday.
	daily := []model.OHLCV{
		{Time: day(1), Open: 10, High: 12, Low: 9, Close: 11, Volume: 1},
		{Time: day(2), Open: 11, High: 15, Low: 10, Close: 14, Volume: 2},
		{Time: day(5), Open: 14, High: 14, Low: 8, Close: 9, Volume: 3},
		{Time: day(8), Open: 9, High: 10, Low: 7, Close: 8, Volume: 4},
	}
	weekly := aggregateDailyToWeekly(daily)
	require.Len(t, weekly, 2)
	assert.Equal(t, model.OHLCV{Time: day(1), Open: 10, High: 15, Low: 8, Close: 9, Volume: 6}, weekly[0])
	assert.Equal(t, daily[3], weekly[1])
	assert.Nil(t, aggregateDailyToWeekly(nil))
}
