package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barlowmj/OptoTransportAnalysis/internal/loader"
)

func newMetadataCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Manage companion metadata files",
	}
	cmd.AddCommand(newMetadataWriteCmd(app))
	return cmd
}

func newMetadataWriteCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <datafile> key=value [key=value ...]",
		Short: "Write a same-stem .json metadata file next to a data file",
		Long: `Create the companion metadata file for data that arrived without one.
Values parse as numbers when possible, booleans for true/false, strings
otherwise.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := map[string]any{}
			for _, pair := range args[1:] {
				key, raw, ok := strings.Cut(pair, "=")
				if !ok || key == "" {
					return fmt.Errorf("argument %q is not key=value", pair)
				}
				md[key] = parseValue(raw)
			}

			path, err := loader.WriteMetadata(args[0], md)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	return cmd
}

func parseValue(raw string) any {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
