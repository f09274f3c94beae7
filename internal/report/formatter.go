package report

import (
	"fmt"
	"strings"
	"time"

	"TechLens/internal/calculator"
	"TechLens/internal/model"
)

func num(v model.Value) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v.Float)
}

// FormatSummary renders the latest value of every indicator as plain text.
func FormatSummary(t *model.IndicatorTable) string {
	var b strings.Builder

	n := t.Len()
	if n == 0 {
		b.WriteString(fmt.Sprintf("%s: no data\n", t.Symbol))
		return b.String()
	}

	date := t.Close.Times[n-1].Format(time.DateOnly)
	b.WriteString(fmt.Sprintf("%s %s summary | %s (%d bars)\n\n", t.Symbol, t.Interval, date, n))

	price := t.Close.Last()
	b.WriteString(fmt.Sprintf("Close: %s\n", num(price)))
	b.WriteString(fmt.Sprintf("%s: %s%s\n", t.SMA.Name, num(t.SMA.Last()), deviation(price, t.SMA.Last())))
	b.WriteString(fmt.Sprintf("%s: %s%s\n", t.EMA.Name, num(t.EMA.Last()), deviation(price, t.EMA.Last())))

	rsi := t.RSI.Last()
	b.WriteString(fmt.Sprintf("RSI: %s (%s)\n", num(rsi), calculator.RSIZone(rsi)))

	hist := t.MACDHist.Last()
	b.WriteString(fmt.Sprintf("MACD: %s | signal %s | hist %s %s\n",
		num(t.MACD.Last()), num(t.MACDSignal.Last()), num(hist), momentum(hist)))

	b.WriteString(fmt.Sprintf("Bollinger: %s / %s / %s (%s)\n",
		num(t.BBLower.Last()), num(t.BBMiddle.Last()), num(t.BBUpper.Last()),
		BandPosition(price, t.BBLower.Last(), t.BBUpper.Last())))

	return b.String()
}

func deviation(price, ma model.Value) string {
	if !price.Valid || !ma.Valid || ma.Float == 0 {
		return ""
	}
	return fmt.Sprintf(" (close %+.1f%%)", (price.Float-ma.Float)/ma.Float*100)
}

func momentum(hist model.Value) string {
	switch {
	case !hist.Valid:
		return ""
	case hist.Float > 0:
		return "bullish"
	case hist.Float < 0:
		return "bearish"
	default:
		return "flat"
	}
}

// BandPosition places a price relative to the Bollinger bands.
func BandPosition(price, lower, upper model.Value) string {
	switch {
	case !price.Valid || !lower.Valid || !upper.Valid:
		return "unknown"
	case price.Float > upper.Float:
		return "above upper band"
	case price.Float < lower.Float:
		return "below lower band"
	default:
		return "inside bands"
	}
}
