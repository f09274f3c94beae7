package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"TechLens/internal/cache"
	"TechLens/internal/chart"
	"TechLens/internal/collector"
	"TechLens/internal/config"
	"TechLens/internal/runner"
)

// newFetcher picks the data provider and wraps remote ones in the bar cache.
func newFetcher(cfg *config.Config) (collector.Fetcher, cache.Store) {
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case config.ProviderCSV:
		fetcher = collector.NewCSVFetcher(cfg.DataSource.CSVPath)
		log.Infof("data source: %s (%s)", fetcher.Name(), cfg.DataSource.CSVPath)
		return fetcher, cache.NewNoopStore()
	case config.ProviderHTTP:
		fetcher = collector.NewHTTPFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		yf := collector.NewYahooFetcher(cfg.Proxy)
		yf.SymbolMap = cfg.DataSource.Aliases
		fetcher = yf
	}
	log.Infof("data source: %s", fetcher.Name())

	if cfg.Cache.SQLitePath == "" {
		return fetcher, cache.NewNoopStore()
	}
	store, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath)
	if err != nil {
		log.WithError(err).Warn("init sqlite cache failed, fetching without cache")
		return fetcher, cache.NewNoopStore()
	}
	return cache.NewCachingFetcher(fetcher, store, cfg.Cache.TTL), store
}

// newRunner builds the pipeline from cfg. The returned store must be closed.
func newRunner(cfg *config.Config) (*runner.Runner, cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	start, end, err := cfg.Range()
	if err != nil {
		return nil, nil, err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return nil, nil, err
	}

	fetcher, store := newFetcher(cfg)
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, interval, start, end)

	r := runner.New(col, cfg.Params(), cfg.Output.Dir)
	r.Chart = chart.Options{
		Width:     cfg.Output.Width,
		Height:    cfg.Output.Height,
		PriceFile: cfg.Output.PriceChart,
		RSIFile:   cfg.Output.RSIChart,
	}
	r.CSVFile = cfg.Output.CSV
	if r.CSVFile == "-" {
		r.CSVFile = ""
	}
	return r, store, nil
}
