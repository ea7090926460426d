package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

func TestFrame_AddAndLookup(t *testing.T) {
	f := NewFrame("results-1-1")
	require.NoError(t, f.AddColumn("time", []float64{0, 1, 2}))
	require.NoError(t, f.AddColumn("voltage", []float64{0.1, 0.2, 0.3}))
	require.NoError(t, f.AddStringColumn("note", []string{"a", "b", "c"}))

	assert.Equal(t, 3, f.NumRows())
	assert.Equal(t, []string{"time", "voltage", "note"}, f.Columns())

	v, err := f.Column("voltage")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, v)

	s, err := f.StringColumn("note")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, s)
}

func TestFrame_MissingColumn(t *testing.T) {
	f := NewFrame("t")
	require.NoError(t, f.AddColumn("x", []float64{1}))

	_, err := f.Column("y")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMissingColumn))
}

func TestFrame_AddColumnRejectsDuplicateAndMismatch(t *testing.T) {
	f := NewFrame("t")
	require.NoError(t, f.AddColumn("x", []float64{1, 2}))

	err := f.AddColumn("x", []float64{3, 4})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))

	err = f.AddColumn("y", []float64{1, 2, 3})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestFrame_ColumnKindMismatch(t *testing.T) {
	f := NewFrame("t")
	require.NoError(t, f.AddStringColumn("name", []string{"rt_sweep"}))

	_, err := f.Column("name")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))

	require.NoError(t, f.AddColumn("x", []float64{1}))
	_, err = f.StringColumn("x")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestFrame_Index(t *testing.T) {
	f := NewFrame("t")
	require.NoError(t, f.AddColumn("time", []float64{5, 6, 7}))
	require.NoError(t, f.AddColumn("x", []float64{1, 2, 3}))

	// Positional until an index column is set.
	assert.Equal(t, []float64{0, 1, 2}, f.Index())

	require.NoError(t, f.SetIndex("time"))
	assert.Equal(t, "time", f.IndexName())
	assert.Equal(t, []float64{5, 6, 7}, f.Index())
}

func TestFrame_GroupByMean(t *testing.T) {
	f := NewFrame("results-2-1")
	require.NoError(t, f.AddColumn("gate", []float64{1, 0, 1, 0, 2}))
	require.NoError(t, f.AddColumn("current", []float64{10, 2, 20, 4, 7}))
	require.NoError(t, f.AddStringColumn("note", []string{"", "", "", "", ""}))

	g, err := f.GroupByMean("gate")
	require.NoError(t, err)

	// Sorted by key, text columns dropped, key becomes the index.
	assert.Equal(t, []string{"gate", "current"}, g.Columns())
	assert.Equal(t, "gate", g.IndexName())

	keys, err := g.Column("gate")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, keys)

	cur, err := g.Column("current")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 15, 7}, cur)

	// Grouping only ever reduces rows.
	assert.LessOrEqual(t, g.NumRows(), f.NumRows())
}

func TestFrame_GroupByMeanSkipsNaN(t *testing.T) {
	nan := math.NaN()
	f := NewFrame("t")
	require.NoError(t, f.AddColumn("k", []float64{0, 0, nan, 1}))
	require.NoError(t, f.AddColumn("v", []float64{2, nan, 99, nan}))

	g, err := f.GroupByMean("k")
	require.NoError(t, err)

	keys, _ := g.Column("k")
	assert.Equal(t, []float64{0, 1}, keys)

	v, _ := g.Column("v")
	assert.Equal(t, 2.0, v[0])       // NaN sample ignored in the mean
	assert.True(t, math.IsNaN(v[1])) // all-NaN group stays NaN
}

func TestRecord_Tables(t *testing.T) {
	r := NewRecord("/data/run.db")
	a := NewFrame("experiments")
	require.NoError(t, a.AddStringColumn("name", []string{"rt_sweep"}))
	b := NewFrame("results-1-1")
	require.NoError(t, b.AddColumn("x", []float64{1}))
	r.AddTable(a)
	r.AddTable(b)

	assert.Equal(t, []string{"experiments", "results-1-1"}, r.TableNames())

	got, err := r.Table("results-1-1")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = r.Table("results-9-1")
	assert.True(t, errors.IsCode(err, errors.CodeMissingExperiment))

	_, err = r.Only()
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestRecord_MetadataFloat(t *testing.T) {
	r := NewRecord("spec.csv")
	r.Metadata = map[string]any{
		"num_frames": 5.0,
		"gain":       100,
		"label":      "sample A",
	}

	v, ok := r.MetadataFloat("num_frames")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = r.MetadataFloat("gain")
	require.True(t, ok)
	assert.Equal(t, 100.0, v)

	_, ok = r.MetadataFloat("label")
	assert.False(t, ok)

	_, ok = r.MetadataFloat("absent")
	assert.False(t, ok)
}
