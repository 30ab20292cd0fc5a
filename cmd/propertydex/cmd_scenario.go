package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/patpet21/prdxprew-sub000/internal/usecase/scenario"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/seeder"
)

var scenarioListLimit int

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage stored scenarios",
}

var scenarioSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the reference scenarios if they are missing",
	RunE:  runScenarioSeed,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scenarios, newest first",
	RunE:  runScenarioList,
}

func init() {
	scenarioListCmd.Flags().IntVar(&scenarioListLimit, "limit", 20, "Maximum number of scenarios (0 = all)")
}

func runScenarioSeed(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	created, err := seeder.NewSystemSeeder(repo, logger).Seed(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d reference scenario(s) created\n", created)
	return nil
}

func runScenarioList(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	scenarios, err := scenario.NewScenarioService(repo, logger).List(ctx, scenarioListLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tYEARS\tLEVERAGE\tCREATED")
	for _, s := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f%%\t%s\n",
			s.ID, s.Name, s.Inputs.HoldingPeriodYears, s.Inputs.LeverageRatio, humanize.Time(s.CreatedAt))
	}
	return w.Flush()
}
