package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// loadCSV reads a flat comma-separated table into a single frame named after
// the file stem. The first row is the header. Columns whose cells all parse
// as numbers become numeric columns (empty cells become NaN); anything else
// stays text.
func loadCSV(rec *dataset.Record, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.MissingFile(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) == 0 {
		return errors.New(errors.CodeInvalidArgument, "csv file %s is empty", path)
	}

	header := rows[0]
	body := rows[1:]

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	frame := dataset.NewFrame(stem)

	for ci, name := range header {
		cells := make([]string, len(body))
		for ri, row := range body {
			if ci < len(row) {
				cells[ri] = strings.TrimSpace(row[ci])
			}
		}
		if floats, ok := parseFloatColumn(cells); ok {
			if err := frame.AddColumn(name, floats); err != nil {
				return err
			}
		} else {
			if err := frame.AddStringColumn(name, cells); err != nil {
				return err
			}
		}
	}

	rec.AddTable(frame)
	return nil
}

// parseFloatColumn attempts to interpret every cell as a float. Empty cells
// become NaN. A single non-numeric cell makes the whole column text.
func parseFloatColumn(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
