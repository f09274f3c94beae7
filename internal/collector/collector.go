package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"TechLens/internal/model"
)

var (
	// ErrEmptySeries means no usable bar was left after normalization.
	ErrEmptySeries = errors.New("empty price series")
	// ErrUnorderedSeries means timestamps are not strictly increasing.
	ErrUnorderedSeries = errors.New("price series is not strictly increasing in time")
)

// Collector fetches one instrument's history and hands it to the engine as
// a validated PriceSeries.
type Collector struct {
	Fetcher  Fetcher
	Symbol   string
	Interval model.Interval
	Start    time.Time
	End      time.Time
}

// NewCollector creates a new Collector for [start, end).
func NewCollector(fetcher Fetcher, symbol string, interval model.Interval, start, end time.Time) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Interval: interval, Start: start, End: end}
}

// Collect fetches bars and returns a sorted, de-duplicated, non-empty series.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSeries, error) {
	raw, err := c.Fetcher.FetchBars(ctx, c.Symbol, c.Interval, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	bars := Normalize(raw, c.Start, c.End)
	if dropped := len(raw) - len(bars); dropped > 0 {
		log.Debugf("dropped %d of %d bars for %s", dropped, len(raw), c.Symbol)
	}
	if err := ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Symbol, err)
	}

	log.Infof("collected %d %s bars for %s from %s (%s .. %s)",
		len(bars), c.Interval, c.Symbol, c.Fetcher.Name(),
		bars[0].Time.Format(time.DateOnly), bars[len(bars)-1].Time.Format(time.DateOnly))

	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Interval:  c.Interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// Normalize sorts bars, keeps the first bar per timestamp, and drops bars
// with a non-finite close or outside [start, end). A zero start or end
// leaves that side open. The input slice is not modified.
func Normalize(raw []model.OHLCV, start, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			continue
		}
		if !start.IsZero() && b.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !b.Time.Before(end) {
			continue
		}
		bars = append(bars, b)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for i, b := range bars {
		if i > 0 && b.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ValidateBars checks the PriceSeries invariants.
func ValidateBars(bars []model.OHLCV) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return fmt.Errorf("bar %d at %s: %w", i, bars[i].Time.Format(time.RFC3339), ErrUnorderedSeries)
		}
	}
	return nil
}
