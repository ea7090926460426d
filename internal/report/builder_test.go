package report

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// writeFigure renders a small png to embed.
func writeFigure(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 4; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(dir, "figure.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestBuilder_TwoPageWorkbook(t *testing.T) {
	dir := t.TempDir()
	fig := writeFigure(t, dir)

	b := NewBuilder(nil)
	require.NoError(t, b.AddSummary(fig, SummaryOptions{RunTitle: "rt_sweep", Comment: "cooldown #3"}))
	require.NoError(t, b.AddSummary(fig, SummaryOptions{RunTitle: "rt_sweep", CustomTitle: "Field symmetrized"}))
	assert.Equal(t, 2, b.Pages())

	out := filepath.Join(dir, "summary.xlsx")
	saved, err := b.Save(out)
	require.NoError(t, err)
	assert.Equal(t, out, saved)

	wb, err := excelize.OpenFile(saved)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary 1", "Summary 2"}, wb.GetSheetList())

	// Run title on page one, custom title winning on page two.
	title, err := wb.GetCellValue("Summary 1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "rt_sweep", title)

	title, err = wb.GetCellValue("Summary 2", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Field symmetrized", title)

	comment, err := wb.GetCellValue("Summary 1", commentAnchor)
	require.NoError(t, err)
	assert.Equal(t, "cooldown #3", comment)

	pics, err := wb.GetPictures("Summary 1", figureAnchor)
	require.NoError(t, err)
	assert.Len(t, pics, 1)
}

func TestBuilder_PlaceholderTitle(t *testing.T) {
	dir := t.TempDir()
	fig := writeFigure(t, dir)

	b := NewBuilder(nil)
	require.NoError(t, b.AddSummary(fig, SummaryOptions{}))

	saved, err := b.Save(filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)

	wb, err := excelize.OpenFile(saved)
	require.NoError(t, err)
	defer wb.Close()

	title, err := wb.GetCellValue("Summary 1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Add title", title)
}

func TestBuilder_MissingFigure(t *testing.T) {
	b := NewBuilder(nil)
	err := b.AddSummary(filepath.Join(t.TempDir(), "absent.png"), SummaryOptions{})
	assert.True(t, errors.IsCode(err, errors.CodeMissingFile))
}

func TestBuilder_SaveRequiresPages(t *testing.T) {
	_, err := NewBuilder(nil).Save("")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestBuilder_GeneratedName(t *testing.T) {
	dir := t.TempDir()
	fig := writeFigure(t, dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	b := NewBuilder(nil)
	require.NoError(t, b.AddSummary(fig, SummaryOptions{}))
	saved, err := b.Save("")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(saved), "summary-"))
	assert.True(t, strings.HasSuffix(saved, ".xlsx"))
	_, err = os.Stat(saved)
	assert.NoError(t, err)
}
