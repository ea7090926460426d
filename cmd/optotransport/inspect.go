package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/files"
	"github.com/barlowmj/OptoTransportAnalysis/internal/loader"
)

func newInspectCmd(app *appContext) *cobra.Command {
	var metadataPath string

	cmd := &cobra.Command{
		Use:   "inspect <datafile>",
		Short: "Load a measurement file and print its tables and metadata keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s\n", rec.SourcePath)
			if rec.MetadataPath != "" {
				fmt.Fprintf(out, "Metadata: %s\n", rec.MetadataPath)
			}
			fmt.Fprintf(out, "Tables (%d):\n", len(rec.TableNames()))
			for _, name := range rec.TableNames() {
				frame, err := rec.Table(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-24s %5d rows, %d columns\n",
					name, frame.NumRows(), len(frame.Columns()))
			}
			if len(rec.Metadata) > 0 {
				keys := make([]string, 0, len(rec.Metadata))
				for k := range rec.Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintf(out, "Metadata keys: %v\n", keys)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	return cmd
}

// load applies the CLI's metadata resolution: explicit flag first, sibling
// convention otherwise.
func load(app *appContext, dataPath, metadataPath string) (*dataset.Record, error) {
	opts := []loader.Option{loader.WithLogger(app.logger)}
	if metadataPath != "" {
		opts = append(opts, loader.WithMetadataPath(metadataPath))
	} else {
		opts = append(opts, loader.WithMetadataResolver(files.SiblingResolver{}))
	}
	return loader.Load(dataPath, opts...)
}
