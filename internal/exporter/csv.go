// Package exporter writes derived tables back out as CSV for plotting tools
// and spreadsheet users.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
)

// CSVWriter exports frames to CSV files under a base directory.
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a writer rooted at baseDir. A nil logger falls back to
// slog.Default.
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{baseDir: baseDir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	BOMPrefix bool     // add a UTF-8 BOM for Excel compatibility
	Columns   []string // subset of columns to export; nil means all
}

// WriteFrame writes a frame to the named file. Relative paths resolve under
// the writer's base directory. Numeric cells are written with full float64
// precision; NaN cells are written empty so a reload round-trips them.
func (w *CSVWriter) WriteFrame(filePath string, frame *dataset.Frame, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing csv export",
		slog.String("path", fullPath),
		slog.String("table", frame.Name()),
		slog.Int("rows", frame.NumRows()))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fullPath, err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("writing BOM: %w", err)
		}
	}

	columns := options.Columns
	if columns == nil {
		columns = frame.Columns()
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for row := 0; row < frame.NumRows(); row++ {
		record := make([]string, len(columns))
		for ci, name := range columns {
			cell, err := formatCell(frame, name, row)
			if err != nil {
				return err
			}
			record[ci] = cell
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	return writer.Error()
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}

func formatCell(frame *dataset.Frame, column string, row int) (string, error) {
	if v, err := frame.Column(column); err == nil {
		if math.IsNaN(v[row]) {
			return "", nil
		}
		return strconv.FormatFloat(v[row], 'g', -1, 64), nil
	}
	s, err := frame.StringColumn(column)
	if err != nil {
		return "", err
	}
	return s[row], nil
}
