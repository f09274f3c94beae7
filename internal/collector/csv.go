package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"TechLens/internal/model"
)

var csvDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02 15:04:05-07:00",
}

// CSVFetcher reads bars from a local file in the yfinance export layout.
// The first column (or the one headed "Date") is the timestamp; "Close"
// is required, the other OHLCV columns are optional. Rows whose timestamp
// does not parse, such as yfinance's ticker sub-headers, are skipped.
type CSVFetcher struct {
	Path string
}

func NewCSVFetcher(path string) *CSVFetcher { return &CSVFetcher{Path: path} }

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchBars(ctx context.Context, _ string, interval model.Interval, _, _ time.Time) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	bars, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	if interval == model.IntervalWeekly {
		return aggregateDailyToWeekly(bars), nil
	}
	return bars, nil
}

// ParseCSV decodes bars from r.
func ParseCSV(r io.Reader) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{"date": 0}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "adj close" {
			continue
		}
		cols[key] = i
	}
	closeIdx, ok := cols["close"]
	if !ok {
		return nil, fmt.Errorf("csv header has no Close column")
	}

	var bars []model.OHLCV
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		ts, ok := parseCSVTime(field(rec, cols["date"]))
		if !ok {
			continue
		}
		c, err := strconv.ParseFloat(field(rec, closeIdx), 64)
		if err != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   optFloat(rec, cols, "open"),
			High:   optFloat(rec, cols, "high"),
			Low:    optFloat(rec, cols, "low"),
			Close:  c,
			Volume: optFloat(rec, cols, "volume"),
		})
	}
	return bars, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func optFloat(rec []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(field(rec, i), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCSVTime(s string) (time.Time, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
