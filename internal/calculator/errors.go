package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned before any computation when a window or
// multiplier is out of range.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInsufficientData is never returned by the transforms themselves: a
// series shorter than the window yields an all-undefined result instead.
// Callers that need a hard failure can wrap DefinedCount() == 0 with it.
var ErrInsufficientData = errors.New("insufficient data")

func checkWindow(name string, w int) error {
	if w < 1 {
		return fmt.Errorf("%s must be >= 1, got %d: %w", name, w, ErrInvalidParameter)
	}
	return nil
}

func checkMultiplier(name string, k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return fmt.Errorf("%s must be > 0, got %v: %w", name, k, ErrInvalidParameter)
	}
	return nil
}
