package dataset

import (
	"math"
	"sort"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// columnKind distinguishes numeric signal columns from text bookkeeping
// columns (experiment names, parameter lists).
type columnKind int

const (
	kindFloat columnKind = iota
	kindString
)

type column struct {
	kind    columnKind
	floats  []float64
	strings []string
}

func (c *column) length() int {
	if c.kind == kindFloat {
		return len(c.floats)
	}
	return len(c.strings)
}

// Frame is a 2-D labeled table: ordered named columns over a shared row axis,
// with an optional index column naming the sweep or time parameter.
type Frame struct {
	name  string
	order []string
	cols  map[string]*column
	index string
}

// NewFrame creates an empty frame with the given table name.
func NewFrame(name string) *Frame {
	return &Frame{name: name, cols: make(map[string]*column)}
}

// Name returns the table name the frame is stored under.
func (f *Frame) Name() string {
	return f.name
}

// NumRows returns the shared row count of all columns.
func (f *Frame) NumRows() int {
	if len(f.order) == 0 {
		return 0
	}
	return f.cols[f.order[0]].length()
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// AddColumn appends a numeric column. The values slice is copied. Adding a
// duplicate name or a column of mismatched length is an argument error:
// processors only ever add fresh derived names.
func (f *Frame) AddColumn(name string, values []float64) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	v := make([]float64, len(values))
	copy(v, values)
	f.cols[name] = &column{kind: kindFloat, floats: v}
	f.order = append(f.order, name)
	return nil
}

// AddStringColumn appends a text column. The values slice is copied.
func (f *Frame) AddStringColumn(name string, values []string) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	v := make([]string, len(values))
	copy(v, values)
	f.cols[name] = &column{kind: kindString, strings: v}
	f.order = append(f.order, name)
	return nil
}

func (f *Frame) checkAdd(name string, n int) error {
	if _, ok := f.cols[name]; ok {
		return errors.New(errors.CodeInvalidArgument, "table %q already has a column %q", f.name, name)
	}
	if len(f.order) > 0 && n != f.NumRows() {
		return errors.New(errors.CodeInvalidArgument,
			"column %q has %d rows, table %q has %d", name, n, f.name, f.NumRows())
	}
	return nil
}

// Column returns the values of a numeric column. The returned slice is the
// frame's backing storage and must not be mutated by the caller.
func (f *Frame) Column(name string) ([]float64, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, errors.MissingColumn(f.name, name)
	}
	if c.kind != kindFloat {
		return nil, errors.New(errors.CodeInvalidArgument, "column %q of table %q is not numeric", name, f.name)
	}
	return c.floats, nil
}

// StringColumn returns the values of a text column.
func (f *Frame) StringColumn(name string) ([]string, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, errors.MissingColumn(f.name, name)
	}
	if c.kind != kindString {
		return nil, errors.New(errors.CodeInvalidArgument, "column %q of table %q is not text", name, f.name)
	}
	return c.strings, nil
}

// SetIndex marks an existing numeric column as the frame's index axis.
func (f *Frame) SetIndex(name string) error {
	if _, err := f.Column(name); err != nil {
		return err
	}
	f.index = name
	return nil
}

// IndexName returns the name of the index column, or "" when positional.
func (f *Frame) IndexName() string {
	return f.index
}

// Index returns the index axis values. When no index column is set, row
// positions are returned.
func (f *Frame) Index() []float64 {
	if f.index != "" {
		v, _ := f.Column(f.index)
		return v
	}
	out := make([]float64, f.NumRows())
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// GroupByMean groups rows by the value of the key column and averages every
// other numeric column within each group, ignoring NaN samples. Text columns
// are dropped from the result. Rows with a NaN key are discarded. The result
// is ordered by ascending key and indexed by the key column.
func (f *Frame) GroupByMean(key string) (*Frame, error) {
	keys, err := f.Column(key)
	if err != nil {
		return nil, err
	}

	groups := make(map[float64][]int)
	var uniq []float64
	for i, k := range keys {
		if math.IsNaN(k) {
			continue
		}
		if _, seen := groups[k]; !seen {
			uniq = append(uniq, k)
		}
		groups[k] = append(groups[k], i)
	}
	sort.Float64s(uniq)

	out := NewFrame(f.name)
	if err := out.AddColumn(key, uniq); err != nil {
		return nil, err
	}
	for _, name := range f.order {
		if name == key || f.cols[name].kind != kindFloat {
			continue
		}
		src := f.cols[name].floats
		agg := make([]float64, len(uniq))
		for gi, k := range uniq {
			agg[gi] = nanMean(src, groups[k])
		}
		if err := out.AddColumn(name, agg); err != nil {
			return nil, err
		}
	}
	if err := out.SetIndex(key); err != nil {
		return nil, err
	}
	return out, nil
}

// nanMean averages src at the given row positions, skipping NaN samples.
// All-NaN groups yield NaN.
func nanMean(src []float64, rows []int) float64 {
	var sum float64
	var n int
	for _, i := range rows {
		if math.IsNaN(src[i]) {
			continue
		}
		sum += src[i]
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
