package dataset

import (
	"encoding/json"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// Record is a loaded measurement file: an ordered collection of named tables,
// the metadata mapping read alongside the data, and references to the source
// files. A Record is created once by the loader; signal processors mutate its
// tables in place by adding derived columns and never touch Metadata.
type Record struct {
	tables map[string]*Frame
	order  []string

	// Metadata holds instrument settings, gains, sensitivities, frame counts.
	// Never nil; empty when no metadata file was found.
	Metadata map[string]any

	SourcePath   string
	MetadataPath string
}

// NewRecord creates an empty record for the given source file.
func NewRecord(sourcePath string) *Record {
	return &Record{
		tables:     make(map[string]*Frame),
		Metadata:   map[string]any{},
		SourcePath: sourcePath,
	}
}

// AddTable stores a frame under its table name, replacing any previous frame
// with the same name.
func (r *Record) AddTable(f *Frame) {
	if _, ok := r.tables[f.Name()]; !ok {
		r.order = append(r.order, f.Name())
	}
	r.tables[f.Name()] = f
}

// Table returns the frame stored under the given experiment/table name.
func (r *Record) Table(name string) (*Frame, error) {
	f, ok := r.tables[name]
	if !ok {
		return nil, errors.MissingExperiment(name)
	}
	return f, nil
}

// TableNames returns the table names in load order.
func (r *Record) TableNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Only returns the record's single table. Optical records hold exactly one
// table; calling Only on a multi-table record is a caller bug.
func (r *Record) Only() (*Frame, error) {
	if len(r.order) != 1 {
		return nil, errors.New(errors.CodeInvalidArgument,
			"record for %s holds %d tables, expected exactly one", r.SourcePath, len(r.order))
	}
	return r.tables[r.order[0]], nil
}

// MetadataFloat looks up a scalar metadata value and coerces it to float64.
// JSON numbers decode as float64 already; int and json.Number are accepted
// for metadata maps built in code.
func (r *Record) MetadataFloat(key string) (float64, bool) {
	v, ok := r.Metadata[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
