package model

import "fmt"

// IndicatorTable is the set of derived series computed from one PriceSeries.
// Every column shares the Close series' time index.
type IndicatorTable struct {
	Symbol   string
	Interval Interval

	Close Series
	SMA   Series
	EMA   Series
	RSI   Series

	MACD       Series
	MACDSignal Series
	MACDHist   Series

	BBMiddle Series
	BBUpper  Series
	BBLower  Series
}

// Columns returns the series in display order.
func (t *IndicatorTable) Columns() []Series {
	return []Series{
		t.Close, t.SMA, t.EMA, t.RSI,
		t.MACD, t.MACDSignal, t.MACDHist,
		t.BBMiddle, t.BBUpper, t.BBLower,
	}
}

// Len returns the number of rows.
func (t *IndicatorTable) Len() int { return t.Close.Len() }

// Column looks a series up by name.
func (t *IndicatorTable) Column(name string) (Series, bool) {
	for _, s := range t.Columns() {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Validate checks that every column is aligned to Close.
func (t *IndicatorTable) Validate() error {
	n := t.Close.Len()
	for _, s := range t.Columns() {
		if s.Len() != n {
			return fmt.Errorf("column %s has %d rows, want %d: %w", s.Name, s.Len(), n, ErrMisaligned)
		}
	}
	return nil
}
