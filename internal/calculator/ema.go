package calculator

import "TechLens/internal/model"

// Alpha returns the EMA smoothing constant 2/(w+1).
func Alpha(w int) float64 {
	return 2.0 / float64(w+1)
}

// EMA computes the exponential moving average of s.
//
// The recursion is seeded with the first input value rather than with an
// initial SMA, so every position is defined:
//
//	ema[0] = s[0]
//	ema[i] = s[i]*alpha + ema[i-1]*(1-alpha)
//
// MACD and its signal line depend on this seeding; do not replace it with
// the textbook SMA seed.
func EMA(s model.Series, w int) (model.Series, error) {
	if err := checkWindow("ema window", w); err != nil {
		return model.Series{}, err
	}
	return ema(s, emaName(w), w), nil
}

func ema(s model.Series, name string, w int) model.Series {
	alpha := Alpha(w)
	return s.Scan(name,
		func(first model.Value) model.Value { return first },
		func(prev, cur model.Value) model.Value {
			return cur.Scale(alpha).Add(prev.Scale(1 - alpha))
		},
	)
}
