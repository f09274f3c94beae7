package cache

import (
	"time"

	"TechLens/internal/model"
)

// Key identifies one fetched range.
type Key struct {
	Symbol   string
	Interval model.Interval
	Start    time.Time
	End      time.Time
}

// Store persists fetched bars so repeated runs over the same range skip the network.
type Store interface {
	// Load returns the bars for key if that exact range was saved less than
	// maxAge ago. maxAge <= 0 never expires.
	Load(key Key, maxAge time.Duration) ([]model.OHLCV, bool, error)
	Save(key Key, bars []model.OHLCV) error
	Close() error
}
