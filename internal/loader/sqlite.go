package loader

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"strings"

	_ "modernc.org/sqlite" // register the pure-Go sqlite driver

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// loadDB reads a sweep-database snapshot. The fixed experiments and runs
// tables are loaded as-is; every row of runs names a result table, which is
// read, grouped by the first of the row's comma-separated sweep parameters,
// and averaged within each group. Repeated measurements at the same sweep
// value collapse to one row, with NaN samples dropped before averaging.
func loadDB(rec *dataset.Record, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.MissingFile(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	experiments, err := readTable(db, "experiments")
	if err != nil {
		return err
	}
	runs, err := readTable(db, "runs")
	if err != nil {
		return err
	}
	rec.AddTable(experiments)
	rec.AddTable(runs)

	tableNames, err := runs.StringColumn("result_table_name")
	if err != nil {
		return err
	}
	paramLists, err := runs.StringColumn("parameters")
	if err != nil {
		return err
	}

	for i, name := range tableNames {
		raw, err := readTable(db, name)
		if err != nil {
			return err
		}
		params := strings.Split(paramLists[i], ",")
		sweepParam := strings.TrimSpace(params[0])
		grouped, err := raw.GroupByMean(sweepParam)
		if err != nil {
			return fmt.Errorf("grouping %s by %q: %w", name, sweepParam, err)
		}
		rec.AddTable(grouped)
	}
	return nil
}

// readTable reads an entire sqlite table into a frame. Column kinds follow
// the stored values: columns holding only numbers (or NULL, which becomes
// NaN) are numeric, everything else is text.
func readTable(db *sql.DB, name string) (*dataset.Frame, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %q`, name))
	if err != nil {
		return nil, errors.Wrap(errors.CodeMissingExperiment, err, "reading table %q", name)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %q: %w", name, err)
	}

	cells := make([][]any, len(colNames))
	for rows.Next() {
		values := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %q: %w", name, err)
		}
		for i, v := range values {
			cells[i] = append(cells[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %q: %w", name, err)
	}

	frame := dataset.NewFrame(name)
	for i, colName := range colNames {
		if floats, ok := coerceFloats(cells[i]); ok {
			if err := frame.AddColumn(colName, floats); err != nil {
				return nil, err
			}
			continue
		}
		if err := frame.AddStringColumn(colName, coerceStrings(cells[i])); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func coerceFloats(values []any) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case nil:
			out[i] = math.NaN()
		case int64:
			out[i] = float64(n)
		case float64:
			out[i] = n
		default:
			return nil, false
		}
	}
	return out, true
}

func coerceStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		switch s := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = s
		case []byte:
			out[i] = string(s)
		default:
			out[i] = fmt.Sprint(s)
		}
	}
	return out
}
