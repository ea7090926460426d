package exporter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/loader"
)

func testFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	frame := dataset.NewFrame("iv")
	require.NoError(t, frame.AddColumn("gate", []float64{0, 0.5, 1}))
	require.NoError(t, frame.AddColumn("R", []float64{10, math.NaN(), 30}))
	require.NoError(t, frame.AddStringColumn("note", []string{"a", "b", "c"}))
	return frame
}

func TestWriteFrame_RoundTripsThroughLoader(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteFrame("iv.csv", testFrame(t), WriteOptions{}))

	rec, err := loader.Load(filepath.Join(dir, "iv.csv"))
	require.NoError(t, err)
	frame, err := rec.Table("iv")
	require.NoError(t, err)

	assert.Equal(t, []string{"gate", "R", "note"}, frame.Columns())
	gate, err := frame.Column("gate")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, gate)

	r, err := frame.Column("R")
	require.NoError(t, err)
	assert.Equal(t, 10.0, r[0])
	assert.True(t, math.IsNaN(r[1])) // empty cell reloads as NaN
	assert.Equal(t, 30.0, r[2])
}

func TestWriteFrame_ColumnSubset(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteFrame("iv.csv", testFrame(t), WriteOptions{
		Columns: []string{"gate", "R"},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "iv.csv"))
	require.NoError(t, err)
	assert.Equal(t, "gate,R\n0,10\n0.5,\n1,30\n", string(raw))
}

func TestWriteFrame_BOMPrefix(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteFrame("iv.csv", testFrame(t), WriteOptions{BOMPrefix: true}))

	raw, err := os.ReadFile(filepath.Join(dir, "iv.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
}

func TestWriteFrame_AbsolutePathBypassesBase(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	w := NewCSVWriter(base, nil)

	target := filepath.Join(other, "out.csv")
	require.NoError(t, w.WriteFrame(target, testFrame(t), WriteOptions{}))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}
