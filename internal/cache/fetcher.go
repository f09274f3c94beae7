package cache

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"TechLens/internal/collector"
	"TechLens/internal/model"
)

// CachingFetcher serves repeated range requests from a Store. Store
// failures are logged and fall through to the upstream fetcher.
type CachingFetcher struct {
	Upstream collector.Fetcher
	Store    Store
	TTL      time.Duration
}

var _ collector.Fetcher = (*CachingFetcher)(nil)

// NewCachingFetcher wraps upstream with store.
func NewCachingFetcher(upstream collector.Fetcher, store Store, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{Upstream: upstream, Store: store, TTL: ttl}
}

func (f *CachingFetcher) Name() string { return f.Upstream.Name() + "+cache" }

func (f *CachingFetcher) FetchBars(ctx context.Context, symbol string, interval model.Interval, start, end time.Time) ([]model.OHLCV, error) {
	key := Key{Symbol: symbol, Interval: interval, Start: start, End: end}

	bars, ok, err := f.Store.Load(key, f.TTL)
	if err != nil {
		log.WithError(err).Warnf("cache load failed for %s", symbol)
	} else if ok && len(bars) > 0 {
		log.Debugf("cache hit for %s: %d bars", symbol, len(bars))
		return bars, nil
	}

	bars, err = f.Upstream.FetchBars(ctx, symbol, interval, start, end)
	if err != nil {
		return nil, err
	}
	if err := f.Store.Save(key, bars); err != nil {
		log.WithError(err).Warnf("cache save failed for %s", symbol)
	}
	return bars, nil
}
