package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"TechLens/internal/calculator"
	"TechLens/internal/model"
)

// Data providers.
const (
	ProviderYahoo = "yahoo"
	ProviderHTTP  = "http"
	ProviderCSV   = "csv"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider" envconfig:"DATA_PROVIDER"`
		BaseURL  string `yaml:"base_url" envconfig:"DATA_BASE_URL"`
		APIKey   string `yaml:"api_key" envconfig:"DATA_API_KEY"`
		CSVPath  string `yaml:"csv_path" envconfig:"CSV_PATH"`
		Symbol   string `yaml:"symbol" envconfig:"SYMBOL"`
		Interval string `yaml:"interval" envconfig:"INTERVAL"`
		Start    string `yaml:"start" envconfig:"START_DATE"`
		End      string `yaml:"end" envconfig:"END_DATE"`

		// Aliases maps a configured symbol to the provider's ticker.
		Aliases map[string]string `yaml:"aliases" envconfig:"SYMBOL_ALIASES"`
	} `yaml:"data_source"`
	Indicators struct {
		SMAWindow       int     `yaml:"sma_window" envconfig:"SMA_WINDOW"`
		EMAWindow       int     `yaml:"ema_window" envconfig:"EMA_WINDOW"`
		RSIWindow       int     `yaml:"rsi_window" envconfig:"RSI_WINDOW"`
		MACDFast        int     `yaml:"macd_fast" envconfig:"MACD_FAST"`
		MACDSlow        int     `yaml:"macd_slow" envconfig:"MACD_SLOW"`
		MACDSignal      int     `yaml:"macd_signal" envconfig:"MACD_SIGNAL"`
		BollingerWindow int     `yaml:"bollinger_window" envconfig:"BOLLINGER_WINDOW"`
		BollingerK      float64 `yaml:"bollinger_k" envconfig:"BOLLINGER_K"`
	} `yaml:"indicators"`
	Output struct {
		Dir        string `yaml:"dir" envconfig:"OUTPUT_DIR"`
		PriceChart string `yaml:"price_chart" envconfig:"PRICE_CHART"`
		RSIChart   string `yaml:"rsi_chart" envconfig:"RSI_CHART"`
		CSV        string `yaml:"csv" envconfig:"CSV_OUTPUT"`
		Width      int    `yaml:"width" envconfig:"CHART_WIDTH"`
		Height     int    `yaml:"height" envconfig:"CHART_HEIGHT"`
	} `yaml:"output"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
		TTL        time.Duration `yaml:"ttl" envconfig:"CACHE_TTL"`
	} `yaml:"cache"`
	Schedule struct {
		Cron string `yaml:"cron" envconfig:"CRON_SCHEDULE"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
		if c.DataSource.BaseURL != "" {
			c.DataSource.Provider = ProviderHTTP
		}
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "MSFT"
	}
	if c.DataSource.Interval == "" {
		c.DataSource.Interval = string(model.IntervalDaily)
	}
	if c.DataSource.Start == "" {
		c.DataSource.Start = "2020-01-01"
	}
	if c.DataSource.End == "" {
		c.DataSource.End = "2025-01-01"
	}

	def := calculator.DefaultParams()
	setInt(&c.Indicators.SMAWindow, def.SMAWindow)
	setInt(&c.Indicators.EMAWindow, def.EMAWindow)
	setInt(&c.Indicators.RSIWindow, def.RSIWindow)
	setInt(&c.Indicators.MACDFast, def.MACDFast)
	setInt(&c.Indicators.MACDSlow, def.MACDSlow)
	setInt(&c.Indicators.MACDSignal, def.MACDSignal)
	setInt(&c.Indicators.BollingerWindow, def.BollingerWindow)
	if c.Indicators.BollingerK == 0 {
		c.Indicators.BollingerK = def.BollingerK
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.PriceChart == "" {
		c.Output.PriceChart = "price.png"
	}
	if c.Output.RSIChart == "" {
		c.Output.RSIChart = "rsi.png"
	}
	if c.Output.CSV == "" {
		c.Output.CSV = "indicators.csv"
	}
	setInt(&c.Output.Width, 1400)
	setInt(&c.Output.Height, 700)

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 12 * time.Hour
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 22 * * 1-5"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// setInt fills an unset (zero) int. Negative values are kept so Validate can reject them.
func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// Params converts the indicator section for the calculator.
func (c *Config) Params() calculator.Params {
	return calculator.Params{
		SMAWindow:       c.Indicators.SMAWindow,
		EMAWindow:       c.Indicators.EMAWindow,
		RSIWindow:       c.Indicators.RSIWindow,
		MACDFast:        c.Indicators.MACDFast,
		MACDSlow:        c.Indicators.MACDSlow,
		MACDSignal:      c.Indicators.MACDSignal,
		BollingerWindow: c.Indicators.BollingerWindow,
		BollingerK:      c.Indicators.BollingerK,
	}
}

// Range parses the [start, end) date range.
func (c *Config) Range() (start, end time.Time, err error) {
	start, err = time.Parse(time.DateOnly, c.DataSource.Start)
	if err != nil {
		return start, end, fmt.Errorf("data_source.start: %w", err)
	}
	end, err = time.Parse(time.DateOnly, c.DataSource.End)
	if err != nil {
		return start, end, fmt.Errorf("data_source.end: %w", err)
	}
	return start, end, nil
}

// Interval parses data_source.interval.
func (c *Config) Interval() (model.Interval, error) {
	return model.ParseInterval(c.DataSource.Interval)
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo:
	case ProviderHTTP:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the http provider")
		}
	case ProviderCSV:
		if c.DataSource.CSVPath == "" {
			return fmt.Errorf("data_source.csv_path is required for the csv provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, http, csv", c.DataSource.Provider)
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("data_source.interval: %w", err)
	}
	start, end, err := c.Range()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("data_source.start %s must be before end %s", c.DataSource.Start, c.DataSource.End)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output width and height must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}
