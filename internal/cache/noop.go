package cache

import (
	"time"

	"TechLens/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load(_ Key, _ time.Duration) ([]model.OHLCV, bool, error) {
	return nil, false, nil
}

func (n *NoopStore) Save(_ Key, _ []model.OHLCV) error {
	return nil
}

func (n *NoopStore) Close() error {
	return nil
}
