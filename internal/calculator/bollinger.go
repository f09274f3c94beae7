package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"TechLens/internal/model"
)

// BollingerResult holds the middle, upper and lower bands.
type BollingerResult struct {
	Middle model.Series
	Upper  model.Series
	Lower  model.Series
}

// Bollinger computes bands at k sample standard deviations (ddof=1) around
// the w-period SMA. Bands share the SMA's undefined prefix of w-1 positions.
// With w == 1 the sample deviation is undefined and so are both bands.
func Bollinger(s model.Series, w int, k float64) (*BollingerResult, error) {
	if err := checkWindow("bollinger window", w); err != nil {
		return nil, err
	}
	if err := checkMultiplier("bollinger multiplier", k); err != nil {
		return nil, err
	}

	middle := rollingMean(s, bbMiddleName, w)
	std := RollingStdDev(s, w)

	upper, err := middle.Zip(bbUpperName, std, func(m, sd model.Value) model.Value {
		return m.Add(sd.Scale(k))
	})
	if err != nil {
		return nil, fmt.Errorf("upper band: %w", err)
	}
	lower, err := middle.Zip(bbLowerName, std, func(m, sd model.Value) model.Value {
		return m.Sub(sd.Scale(k))
	})
	if err != nil {
		return nil, fmt.Errorf("lower band: %w", err)
	}

	return &BollingerResult{Middle: middle, Upper: upper, Lower: lower}, nil
}

// RollingStdDev is the trailing sample standard deviation over w values.
func RollingStdDev(s model.Series, w int) model.Series {
	return s.Rolling("rolling_std", w, func(window []float64) float64 {
		return stat.StdDev(window, nil)
	})
}
