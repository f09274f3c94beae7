package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"TechLens/internal/model"
)

// WriteCSV writes the table with a Date column followed by one column per
// series. Undefined values are empty cells.
func WriteCSV(w io.Writer, t *model.IndicatorTable) error {
	if err := t.Validate(); err != nil {
		return err
	}

	cols := t.Columns()
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(cols)+1)
	header = append(header, "Date")
	for _, c := range cols {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(cols)+1)
	for i := 0; i < t.Len(); i++ {
		row[0] = t.Close.Times[i].Format(time.DateOnly)
		for j, c := range cols {
			row[j+1] = cell(c.At(i))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cell(v model.Value) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// WriteCSVFile writes the table to path, creating parent directories.
func WriteCSVFile(path string, t *model.IndicatorTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
