// Package report assembles summary workbooks: one sheet per measurement
// summary, each holding a title, a rendered figure, and an optional comment.
// It replaces slide-deck summaries with a spreadsheet the whole lab already
// has tooling for.
package report

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/barlowmj/OptoTransportAnalysis/internal/errors"
)

// figureAnchor is the cell the embedded figure hangs from, leaving room for
// the title row.
const figureAnchor = "A3"

// commentAnchor sits below a typical figure height.
const commentAnchor = "A28"

// Builder accumulates summary pages into a single workbook.
type Builder struct {
	wb     *excelize.File
	logger *slog.Logger
	pages  int
}

// NewBuilder creates an empty workbook builder. A nil logger falls back to
// slog.Default.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{wb: excelize.NewFile(), logger: logger}
}

// SummaryOptions configures one summary page. CustomTitle wins over RunTitle;
// with neither, a placeholder title is written for later editing.
type SummaryOptions struct {
	RunTitle    string
	CustomTitle string
	Comment     string
}

// AddSummary appends a sheet containing the figure at figurePath plus title
// and comment text.
func (b *Builder) AddSummary(figurePath string, opts SummaryOptions) error {
	if _, err := os.Stat(figurePath); err != nil {
		return errors.MissingFile(figurePath, err)
	}

	b.pages++
	sheet := fmt.Sprintf("Summary %d", b.pages)
	if b.pages == 1 {
		// Reuse the workbook's default sheet for the first page.
		if err := b.wb.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("renaming default sheet: %w", err)
		}
	} else {
		if _, err := b.wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("adding sheet %q: %w", sheet, err)
		}
	}

	title := opts.CustomTitle
	if title == "" {
		title = opts.RunTitle
	}
	if title == "" {
		title = "Add title"
	}
	if err := b.wb.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	if err := b.wb.AddPicture(sheet, figureAnchor, figurePath, nil); err != nil {
		return fmt.Errorf("embedding figure %s: %w", figurePath, err)
	}

	if opts.Comment != "" {
		if err := b.wb.SetCellValue(sheet, commentAnchor, opts.Comment); err != nil {
			return fmt.Errorf("writing comment: %w", err)
		}
	}

	b.logger.Debug("added summary page",
		slog.String("sheet", sheet),
		slog.String("figure", figurePath))
	return nil
}

// Pages returns the number of summary pages added so far.
func (b *Builder) Pages() int {
	return b.pages
}

// Save writes the workbook. An empty path gets a generated summary-<id>.xlsx
// name in the working directory. Returns the path written.
func (b *Builder) Save(path string) (string, error) {
	if b.pages == 0 {
		return "", errors.New(errors.CodeInvalidArgument, "workbook has no summary pages")
	}
	if path == "" {
		path = fmt.Sprintf("summary-%s.xlsx", uuid.NewString())
	}
	if err := b.wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook %s: %w", path, err)
	}
	b.logger.Info("saved summary workbook",
		slog.String("path", path),
		slog.Int("pages", b.pages))
	return path, nil
}
