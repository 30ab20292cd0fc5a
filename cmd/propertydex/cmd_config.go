package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/config"
)

const defaultConfigFile = "propertydex.yaml"

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the YAML configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration, including the input preset",
	Long: `Writes the built-in defaults as YAML so the preset and store settings can be
edited. The path defaults to --config, then ` + defaultConfigFile + `.
Environment overrides are not written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = defaultConfigFile
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	logger.Info("config written", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
