package model

import (
	"fmt"
	"time"
)

// Interval is the bar size requested from a data source.
type Interval string

const (
	IntervalDaily  Interval = "1d"
	IntervalWeekly Interval = "1wk"
)

// ParseInterval accepts the Yahoo-style interval strings.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDaily, IntervalWeekly:
		return Interval(s), nil
	case "":
		return IntervalDaily, nil
	default:
		return "", fmt.Errorf("unknown interval %q", s)
	}
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds one instrument's bar history, strictly increasing in time.
type PriceSeries struct {
	Symbol    string
	Interval  Interval
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (p *PriceSeries) Len() int { return len(p.Bars) }

// Closes returns the closing prices as a fully defined Series named "Close".
func (p *PriceSeries) Closes() Series {
	times := make([]time.Time, len(p.Bars))
	values := make([]Value, len(p.Bars))
	for i, b := range p.Bars {
		times[i] = b.Time
		values[i] = Of(b.Close)
	}
	return Series{Name: "Close", Times: times, Values: values}
}
