package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barlowmj/OptoTransportAnalysis/internal/dataset"
	"github.com/barlowmj/OptoTransportAnalysis/internal/exporter"
	"github.com/barlowmj/OptoTransportAnalysis/internal/optics"
	"github.com/barlowmj/OptoTransportAnalysis/internal/transport"
)

func newDeriveCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Apply a signal derivation and export the touched table to CSV",
	}
	cmd.AddCommand(
		newDeriveResistanceCmd(app),
		newDeriveMCACmd(app),
		newDeriveSymmetrizeCmd(app),
		newDeriveAverageCmd(app),
		newDeriveEnergyCmd(app),
	)
	return cmd
}

// export writes a derived table under the configured exports directory.
func export(app *appContext, frame *dataset.Frame, out string) error {
	if out == "" {
		out = frame.Name() + ".csv"
	}
	w := exporter.NewCSVWriter(app.cfg.Paths.ExportsDir, app.logger)
	return w.WriteFrame(out, frame, exporter.WriteOptions{})
}

func newDeriveResistanceCmd(app *appContext) *cobra.Command {
	var (
		metadataPath, expName, resultName string
		voltageCol, currentCol            string
		gain, sensitivity                 float64
		gainKey, sensitivityKey, out      string
	)

	cmd := &cobra.Command{
		Use:   "resistance <datafile>",
		Short: "Append V/I resistance to a sweep table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}
			p := transport.New(rec, app.logger)
			err = p.AppendResistance(expName, resultName, voltageCol, currentCol,
				factorFlags(gain, gainKey), factorFlags(sensitivity, sensitivityKey))
			if err != nil {
				return err
			}
			frame, err := rec.Table(expName)
			if err != nil {
				return err
			}
			return export(app, frame, out)
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	cmd.Flags().StringVar(&expName, "experiment", "", "experiment table name")
	cmd.Flags().StringVar(&resultName, "result", "R", "name for the derived column")
	cmd.Flags().StringVar(&voltageCol, "voltage", "", "voltage column")
	cmd.Flags().StringVar(&currentCol, "current", "", "current column")
	cmd.Flags().Float64Var(&gain, "gain", 0, "pre-amplifier gain divisor")
	cmd.Flags().StringVar(&gainKey, "gain-key", "", "metadata key holding the gain")
	cmd.Flags().Float64Var(&sensitivity, "sensitivity", 0, "current-amplifier sensitivity divisor")
	cmd.Flags().StringVar(&sensitivityKey, "sensitivity-key", "", "metadata key holding the sensitivity")
	cmd.Flags().StringVar(&out, "out", "", "output csv name (default <table>.csv)")
	mustMark(cmd, "experiment", "voltage", "current")
	return cmd
}

func newDeriveMCACmd(app *appContext) *cobra.Command {
	var (
		metadataPath, expName, resultName string
		r2fCol, rfCol, currentCol         string
		fieldValue                        float64
		fieldCol, out                     string
	)

	cmd := &cobra.Command{
		Use:   "mca <datafile>",
		Short: "Append the magnetochiral-anisotropy coefficient γ = R_2f/(R_f·B·I)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}
			b := transport.FixedField(fieldValue)
			if fieldCol != "" {
				b = transport.SweptField(fieldCol)
			}
			p := transport.New(rec, app.logger)
			err = p.AppendMCACoefficient(expName, resultName, r2fCol, rfCol, b, currentCol,
				transport.Factor{}, transport.Factor{})
			if err != nil {
				return err
			}
			frame, err := rec.Table(expName)
			if err != nil {
				return err
			}
			return export(app, frame, out)
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	cmd.Flags().StringVar(&expName, "experiment", "", "experiment table name")
	cmd.Flags().StringVar(&resultName, "result", "gamma", "name for the derived column")
	cmd.Flags().StringVar(&r2fCol, "r2f", "", "2f resistance column")
	cmd.Flags().StringVar(&rfCol, "rf", "", "1f resistance column")
	cmd.Flags().StringVar(&currentCol, "current", "", "source-drain current column")
	cmd.Flags().Float64Var(&fieldValue, "field", 0, "fixed magnetic field in Tesla")
	cmd.Flags().StringVar(&fieldCol, "field-column", "", "swept-field column (overrides --field)")
	cmd.Flags().StringVar(&out, "out", "", "output csv name (default <table>.csv)")
	mustMark(cmd, "experiment", "r2f", "rf", "current")
	return cmd
}

func newDeriveSymmetrizeCmd(app *appContext) *cobra.Command {
	var metadataPath, expName, column, out string

	cmd := &cobra.Command{
		Use:   "symmetrize <datafile>",
		Short: "Append field-symmetrized and antisymmetrized parts of a signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}
			if err := transport.New(rec, app.logger).AppendSymmetrized(expName, column); err != nil {
				return err
			}
			frame, err := rec.Table(expName)
			if err != nil {
				return err
			}
			return export(app, frame, out)
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	cmd.Flags().StringVar(&expName, "experiment", "", "experiment table name")
	cmd.Flags().StringVar(&column, "column", "", "resistance column to symmetrize")
	cmd.Flags().StringVar(&out, "out", "", "output csv name (default <table>.csv)")
	mustMark(cmd, "experiment", "column")
	return cmd
}

func newDeriveAverageCmd(app *appContext) *cobra.Command {
	var (
		metadataPath, out string
		frames            float64
	)

	cmd := &cobra.Command{
		Use:   "average <datafile>",
		Short: "Append the frame-averaged intensity of a spectral table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}
			if err := optics.New(rec, app.logger).AverageSignal(frames); err != nil {
				return err
			}
			frame, err := rec.Only()
			if err != nil {
				return err
			}
			return export(app, frame, out)
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	cmd.Flags().Float64Var(&frames, "frames", 0, "frame count divisor (default: metadata num_frames, else matched columns)")
	cmd.Flags().StringVar(&out, "out", "", "output csv name (default <table>.csv)")
	return cmd
}

func newDeriveEnergyCmd(app *appContext) *cobra.Command {
	var metadataPath, out string

	cmd := &cobra.Command{
		Use:   "energy <datafile>",
		Short: "Convert the Wavelength column (nm) to photon energy (eV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := load(app, args[0], metadataPath)
			if err != nil {
				return err
			}
			if err := optics.New(rec, app.logger).EnergyFromWavelength(); err != nil {
				return err
			}
			frame, err := rec.Only()
			if err != nil {
				return err
			}
			return export(app, frame, out)
		},
	}
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "explicit metadata file path")
	cmd.Flags().StringVar(&out, "out", "", "output csv name (default <table>.csv)")
	return cmd
}

// factorFlags converts the value/key flag pair into a transport.Factor.
func factorFlags(value float64, key string) transport.Factor {
	switch {
	case key != "":
		return transport.FromMetadata(key)
	case value != 0:
		return transport.Fixed(value)
	}
	return transport.Factor{}
}

func mustMark(cmd *cobra.Command, flags ...string) {
	for _, f := range flags {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("marking flag %s required: %v", f, err))
		}
	}
}
