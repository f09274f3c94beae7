package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"TechLens/internal/calculator"
	"TechLens/internal/chart"
	"TechLens/internal/collector"
	"TechLens/internal/model"
	"TechLens/internal/report"
)

// Result describes one completed pipeline run.
type Result struct {
	Table    *model.IndicatorTable
	Charts   []string
	CSVPath  string
	Summary  string
	Duration time.Duration
}

// Runner performs collect, compute, render and export for one instrument.
type Runner struct {
	Collector *collector.Collector
	Params    calculator.Params
	OutputDir string
	Chart     chart.Options
	// CSVFile is relative to OutputDir. Empty disables the export.
	CSVFile string
}

// New creates a Runner writing into outputDir.
func New(col *collector.Collector, params calculator.Params, outputDir string) *Runner {
	return &Runner{
		Collector: col,
		Params:    params,
		OutputDir: outputDir,
		Chart:     chart.DefaultOptions(),
		CSVFile:   "indicators.csv",
	}
}

// Run executes the pipeline once. Runs are independent and share no state.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	ps, err := r.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	if need := r.Params.MinHistory(); ps.Len() < need {
		log.WithError(calculator.ErrInsufficientData).
			Warnf("%s has %d bars, %d needed for every indicator; short columns stay undefined", ps.Symbol, ps.Len(), need)
	}

	table, err := calculator.Compute(ps, r.Params)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Table: table}

	res.Charts, err = chart.RenderFiles(r.OutputDir, table, r.Chart)
	switch {
	case errors.Is(err, chart.ErrTooFewPoints):
		log.WithError(err).Warnf("%s: %d bars, charts skipped", ps.Symbol, table.Len())
	case err != nil:
		return nil, fmt.Errorf("render charts: %w", err)
	}

	if r.CSVFile != "" {
		res.CSVPath = filepath.Join(r.OutputDir, r.CSVFile)
		if err := report.WriteCSVFile(res.CSVPath, table); err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
	}

	res.Summary = report.FormatSummary(table)
	res.Duration = time.Since(started)

	log.Infof("run finished for %s in %s, wrote %v %s", ps.Symbol, res.Duration.Round(time.Millisecond), res.Charts, res.CSVPath)
	log.Info("\n" + res.Summary)
	return res, nil
}
