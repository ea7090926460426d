package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barlowmj/OptoTransportAnalysis/internal/files"
	"github.com/barlowmj/OptoTransportAnalysis/internal/report"
)

func newReportCmd(app *appContext) *cobra.Command {
	var (
		title, comment, out string
	)

	cmd := &cobra.Command{
		Use:   "report <figure.png> [figure.png ...]",
		Short: "Build a summary workbook from rendered figures",
		Long: `Build an .xlsx summary workbook with one sheet per figure. With a
directory argument, every .png inside it becomes a page, oldest first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			figures, err := collectFigures(args)
			if err != nil {
				return err
			}

			b := report.NewBuilder(app.logger)
			for _, fig := range figures {
				opts := report.SummaryOptions{
					RunTitle:    stemOf(fig),
					CustomTitle: title,
					Comment:     comment,
				}
				if err := b.AddSummary(fig, opts); err != nil {
					return err
				}
			}

			if out != "" && !filepath.IsAbs(out) && app.cfg.Paths.ReportsDir != "" {
				out = filepath.Join(app.cfg.Paths.ReportsDir, out)
			}
			saved, err := b.Save(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", saved, b.Pages())
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "custom title applied to every page")
	cmd.Flags().StringVar(&comment, "comment", "", "comment text applied to every page")
	cmd.Flags().StringVar(&out, "out", "", "output workbook path (default generated name)")
	return cmd
}

// collectFigures expands directory arguments into their .png contents.
func collectFigures(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if isDir(arg) {
			found, err := files.NewDiscovery(".").FindFigureFiles(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				out = append(out, f.Path)
			}
			continue
		}
		out = append(out, arg)
	}
	return out, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
