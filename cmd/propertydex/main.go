package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/config"
)

var (
	// Global flags
	configPath string

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "propertydex",
	Short: "PropertyDEX cash-flow return engine",
	Long: `propertydex projects the equity cash flows of a simulated real-estate asset
and derives its return metrics (IRR, equity multiple, LTV, WACC).

It runs either as one-shot calculations on the command line or as a gRPC
service backed by a scenario store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = config.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config (default: $"+config.EnvConfigPath+")")

	scenarioCmd.AddCommand(scenarioSeedCmd)
	scenarioCmd.AddCommand(scenarioListCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(irrCmd)
	rootCmd.AddCommand(ltvCmd)
	rootCmd.AddCommand(waccCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
