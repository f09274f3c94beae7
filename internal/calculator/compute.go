package calculator

import (
	"fmt"

	"TechLens/internal/model"
)

// Compute builds the full indicator table for a price series. Parameters are
// validated up front, so an error never comes with a partial table.
func Compute(ps *model.PriceSeries, p Params) (*model.IndicatorTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	closes := ps.Closes()

	sma, err := SMA(closes, p.SMAWindow)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	ema, err := EMA(closes, p.EMAWindow)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	rsi, err := RSI(closes, p.RSIWindow)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	macd, err := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	bb, err := Bollinger(closes, p.BollingerWindow, p.BollingerK)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}

	t := &model.IndicatorTable{
		Symbol:     ps.Symbol,
		Interval:   ps.Interval,
		Close:      closes,
		SMA:        sma,
		EMA:        ema,
		RSI:        rsi,
		MACD:       macd.MACD,
		MACDSignal: macd.Signal,
		MACDHist:   macd.Histogram,
		BBMiddle:   bb.Middle,
		BBUpper:    bb.Upper,
		BBLower:    bb.Lower,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
