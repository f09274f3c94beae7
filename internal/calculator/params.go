package calculator

import "fmt"

const (
	rsiName        = "RSI"
	macdName       = "MACD"
	macdSignalName = "MACD_Signal"
	macdHistName   = "MACD_Hist"
	bbMiddleName   = "BB_Middle"
	bbUpperName    = "BB_Upper"
	bbLowerName    = "BB_Lower"
)

func smaName(w int) string { return fmt.Sprintf("SMA_%d", w) }
func emaName(w int) string { return fmt.Sprintf("EMA_%d", w) }

// Params selects the windows used by Compute.
type Params struct {
	SMAWindow int
	EMAWindow int
	RSIWindow int

	MACDFast   int
	MACDSlow   int
	MACDSignal int

	BollingerWindow int
	BollingerK      float64
}

// DefaultParams returns SMA 50, EMA 20, RSI 14, MACD 12/26/9 and Bollinger 20/2.
func DefaultParams() Params {
	return Params{
		SMAWindow:       50,
		EMAWindow:       20,
		RSIWindow:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerWindow: 20,
		BollingerK:      2,
	}
}

// Validate rejects any parameter that would make a transform fail.
func (p Params) Validate() error {
	windows := []struct {
		name string
		w    int
	}{
		{"sma window", p.SMAWindow},
		{"ema window", p.EMAWindow},
		{"rsi window", p.RSIWindow},
		{"macd fast", p.MACDFast},
		{"macd slow", p.MACDSlow},
		{"macd signal", p.MACDSignal},
		{"bollinger window", p.BollingerWindow},
	}
	for _, w := range windows {
		if err := checkWindow(w.name, w.w); err != nil {
			return err
		}
	}
	return checkMultiplier("bollinger multiplier", p.BollingerK)
}

// MinHistory is the shortest input for which every column has at least one
// defined value.
func (p Params) MinHistory() int {
	n := p.SMAWindow
	if p.RSIWindow+1 > n {
		n = p.RSIWindow + 1
	}
	// sample std needs two points
	bb := p.BollingerWindow
	if bb < 2 {
		bb = 2
	}
	if bb > n {
		n = bb
	}
	return n
}
