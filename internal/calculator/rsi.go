package calculator

import (
	"math"

	"TechLens/internal/model"
)

const (
	// OverboughtLevel and OversoldLevel are the conventional RSI reference lines.
	OverboughtLevel = 70.0
	OversoldLevel   = 30.0
)

// RSI computes the relative strength index using simple (not Wilder)
// averages of gains and losses over w periods.
//
// The first w positions are undefined: one is lost to differencing and w-1
// to the averaging window. When the average loss is zero the ratio is +Inf
// and RSI is exactly 100. A window with neither gains nor losses is 0/0 and
// stays undefined.
func RSI(s model.Series, w int) (model.Series, error) {
	if err := checkWindow("rsi window", w); err != nil {
		return model.Series{}, err
	}

	delta := s.Diff("delta")
	gains := delta.Map("gains", func(v model.Value) model.Value {
		return v.Map(func(d float64) float64 { return math.Max(d, 0) })
	})
	losses := delta.Map("losses", func(v model.Value) model.Value {
		return v.Map(func(d float64) float64 { return math.Max(-d, 0) })
	})

	avgGain := rollingMean(gains, "avg_gain", w)
	avgLoss := rollingMean(losses, "avg_loss", w)

	return avgGain.Zip(rsiName, avgLoss, func(g, l model.Value) model.Value {
		rs := g.Div(l)
		return rs.Map(func(r float64) float64 { return 100 - 100/(1+r) })
	})
}

// Zone classifies an RSI reading against the reference lines.
type Zone string

const (
	ZoneUnknown    Zone = "UNKNOWN"
	ZoneOversold   Zone = "OVERSOLD"
	ZoneNeutral    Zone = "NEUTRAL"
	ZoneOverbought Zone = "OVERBOUGHT"
)

// RSIZone maps a reading to its zone. Both thresholds are inclusive.
func RSIZone(v model.Value) Zone {
	switch {
	case !v.Valid:
		return ZoneUnknown
	case v.Float >= OverboughtLevel:
		return ZoneOverbought
	case v.Float <= OversoldLevel:
		return ZoneOversold
	default:
		return ZoneNeutral
	}
}
