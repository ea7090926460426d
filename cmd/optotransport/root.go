package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/barlowmj/OptoTransportAnalysis/internal/config"
	"github.com/barlowmj/OptoTransportAnalysis/internal/infrastructure"
)

// appContext carries the loaded configuration and logger to subcommands.
type appContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	app := &appContext{}
	var configFile string

	root := &cobra.Command{
		Use:   "optotransport",
		Short: "Load, clean, and derive physical quantities from lab measurement files",
		Long: `optotransport is a batch analysis toolkit for electrical-transport sweep
databases (.db) and optical-spectroscopy tables (.csv) with companion .json
metadata. It derives textbook quantities (resistance, MCA coefficient,
symmetrized signals, photon energy, smoothed spectra), exports tables to CSV,
and assembles summary workbooks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			app.cfg = cfg
			app.logger = infrastructure.NewLogger(cfg.Logging, os.Stderr)
			slog.SetDefault(app.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")

	root.AddCommand(
		newInspectCmd(app),
		newDeriveCmd(app),
		newReportCmd(app),
		newMetadataCmd(app),
	)
	return root
}
