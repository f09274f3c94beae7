package calculator

import (
	"fmt"

	"TechLens/internal/model"
)

// MACDResult holds the three MACD lines, all aligned to the input.
type MACDResult struct {
	MACD      model.Series
	Signal    model.Series
	Histogram model.Series
}

// MACD computes EMA(fast) - EMA(slow), its signal EMA and the histogram.
// The signal line is an EMA of the MACD line seeded with its first value.
func MACD(s model.Series, fast, slow, signal int) (*MACDResult, error) {
	if err := checkWindow("macd fast", fast); err != nil {
		return nil, err
	}
	if err := checkWindow("macd slow", slow); err != nil {
		return nil, err
	}
	if err := checkWindow("macd signal", signal); err != nil {
		return nil, err
	}

	emaFast := ema(s, "ema_fast", fast)
	emaSlow := ema(s, "ema_slow", slow)

	line, err := emaFast.Zip(macdName, emaSlow, model.Value.Sub)
	if err != nil {
		return nil, fmt.Errorf("macd line: %w", err)
	}
	sig := ema(line, macdSignalName, signal)
	hist, err := line.Zip(macdHistName, sig, model.Value.Sub)
	if err != nil {
		return nil, fmt.Errorf("macd histogram: %w", err)
	}

	return &MACDResult{MACD: line, Signal: sig, Histogram: hist}, nil
}
