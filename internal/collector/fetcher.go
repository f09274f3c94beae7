package collector

import (
	"context"
	"time"

	"TechLens/internal/model"
)

// Fetcher defines the interface for fetching bars over [start, end).
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, interval model.Interval, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
