package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"TechLens/internal/calculator"
	"TechLens/internal/model"
)

// ErrTooFewPoints is returned when the table cannot span a time axis.
var ErrTooFewPoints = errors.New("chart needs at least two bars")

var (
	closeColor = drawing.ColorFromHex("1f77b4")
	smaColor   = drawing.ColorFromHex("ff7f0e")
	emaColor   = drawing.ColorFromHex("2ca02c")
	rsiColor   = drawing.ColorFromHex("9467bd")
)

// Options controls image size and output file names.
type Options struct {
	Width     int
	Height    int
	PriceFile string
	RSIFile   string
}

// DefaultOptions returns a 1400x700 canvas writing price.png and rsi.png.
func DefaultOptions() Options {
	return Options{Width: 1400, Height: 700, PriceFile: "price.png", RSIFile: "rsi.png"}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.PriceFile == "" {
		o.PriceFile = def.PriceFile
	}
	if o.RSIFile == "" {
		o.RSIFile = def.RSIFile
	}
	return o
}

// timeSeries converts s into a plottable series, dropping undefined points.
// ok is false when nothing is left to plot.
func timeSeries(s model.Series, style chart.Style) (ts chart.TimeSeries, ok bool) {
	ts = chart.TimeSeries{Name: s.Name, Style: style}
	for i, v := range s.Values {
		if !v.Valid {
			continue
		}
		ts.XValues = append(ts.XValues, s.Times[i])
		ts.YValues = append(ts.YValues, v.Float)
	}
	return ts, len(ts.XValues) > 0
}

// level draws a horizontal line across [from, to].
func level(name string, y float64, from, to time.Time, color drawing.Color) chart.TimeSeries {
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5, 5},
		},
		XValues: []time.Time{from, to},
		YValues: []float64{y, y},
	}
}

func newCanvas(title string, opts Options) chart.Chart {
	return chart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
	}
}

func checkTable(t *model.IndicatorTable) error {
	if t == nil || t.Close.Len() < 2 {
		return ErrTooFewPoints
	}
	return t.Validate()
}

// RenderPrice draws the close price with its SMA and EMA as a PNG.
func RenderPrice(w io.Writer, t *model.IndicatorTable, opts Options) error {
	if err := checkTable(t); err != nil {
		return err
	}
	opts = opts.withDefaults()

	c := newCanvas(fmt.Sprintf("%s Stock Price with Moving Averages", t.Symbol), opts)
	c.YAxis = chart.YAxis{Name: "Price"}

	lines := []struct {
		s     model.Series
		style chart.Style
	}{
		{t.Close, chart.Style{StrokeColor: closeColor, StrokeWidth: 1.5}},
		{t.SMA, chart.Style{StrokeColor: smaColor, StrokeWidth: 1.5}},
		{t.EMA, chart.Style{StrokeColor: emaColor, StrokeWidth: 1.5, StrokeDashArray: []float64{6, 4}}},
	}
	for _, l := range lines {
		ts, ok := timeSeries(l.s, l.style)
		if !ok {
			log.Debugf("chart: %s has no defined values, skipped", l.s.Name)
			continue
		}
		c.Series = append(c.Series, ts)
	}
	if len(c.Series) == 0 {
		return ErrTooFewPoints
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render price chart: %w", err)
	}
	return nil
}

// RenderRSI draws RSI on a fixed 0..100 axis with the overbought and
// oversold reference lines.
func RenderRSI(w io.Writer, t *model.IndicatorTable, opts Options) error {
	if err := checkTable(t); err != nil {
		return err
	}
	opts = opts.withDefaults()

	c := newCanvas("Relative Strength Index (RSI)", opts)
	c.YAxis = chart.YAxis{
		Name:  "RSI",
		Range: &chart.ContinuousRange{Min: 0, Max: 100},
	}

	if ts, ok := timeSeries(t.RSI, chart.Style{StrokeColor: rsiColor, StrokeWidth: 1.5}); ok {
		c.Series = append(c.Series, ts)
	} else {
		log.Debugf("chart: %s has no defined values, skipped", t.RSI.Name)
	}

	from, to := t.Close.Times[0], t.Close.Times[t.Close.Len()-1]
	c.Series = append(c.Series,
		level("Overbought (70)", calculator.OverboughtLevel, from, to, drawing.ColorRed),
		level("Oversold (30)", calculator.OversoldLevel, from, to, drawing.ColorGreen),
	)
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render rsi chart: %w", err)
	}
	return nil
}

// RenderFiles writes both charts into dir and returns their paths.
func RenderFiles(dir string, t *model.IndicatorTable, opts Options) ([]string, error) {
	if err := checkTable(t); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	jobs := []struct {
		name   string
		render func(io.Writer, *model.IndicatorTable, Options) error
	}{
		{opts.PriceFile, RenderPrice},
		{opts.RSIFile, RenderRSI},
	}

	var paths []string
	for _, j := range jobs {
		path := filepath.Join(dir, j.name)
		if err := writeFile(path, t, opts, j.render); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, t *model.IndicatorTable, opts Options, render func(io.Writer, *model.IndicatorTable, Options) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f, t, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
