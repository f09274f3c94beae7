package calculator

import (
	"gonum.org/v1/gonum/stat"

	"TechLens/internal/model"
)

// SMA computes the simple moving average over a trailing window of w values.
// The first w-1 positions are undefined.
func SMA(s model.Series, w int) (model.Series, error) {
	if err := checkWindow("sma window", w); err != nil {
		return model.Series{}, err
	}
	return rollingMean(s, smaName(w), w), nil
}

func rollingMean(s model.Series, name string, w int) model.Series {
	return s.Rolling(name, w, func(window []float64) float64 {
		return stat.Mean(window, nil)
	})
}
