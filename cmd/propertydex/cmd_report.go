package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/report"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/scenario"
)

var (
	reportScenarioID string
	reportName       string
	reportHTMLPath   string
	reportChartPath  string
	reportRaw        bool
	reportStyle      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a return report for a stored scenario or ad-hoc inputs",
	Long: `Renders the assumptions, cash flows and return metrics as Markdown in the
terminal. Optionally writes an HTML export and a PNG cash-flow chart.

Examples:
  propertydex report --leverage-ratio 75 --chart flows.png
  propertydex report --scenario 00000000-0000-0000-0000-000000000002 --html report.html`,
	RunE: runReport,
}

func init() {
	bindInputFlags(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportScenarioID, "scenario", "", "Stored scenario ID (input flags are ignored)")
	reportCmd.Flags().StringVar(&reportName, "name", "Ad-hoc projection", "Report title for ad-hoc inputs")
	reportCmd.Flags().StringVar(&reportHTMLPath, "html", "", "Write the HTML export to this path")
	reportCmd.Flags().StringVar(&reportChartPath, "chart", "", "Write the PNG cash-flow chart to this path")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print plain Markdown instead of styled terminal output")
	reportCmd.Flags().StringVar(&reportStyle, "style", "dark", "Terminal style (dark, light, notty)")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	var (
		name    = reportName
		inputs  domain.ProjectionInputs
		metrics domain.ReturnMetrics
	)

	if reportScenarioID != "" {
		id, err := uuid.Parse(reportScenarioID)
		if err != nil {
			return fmt.Errorf("invalid scenario ID %q: %w", reportScenarioID, err)
		}

		repo, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		result, err := scenario.NewScenarioService(repo, logger).Simulate(ctx, id)
		if err != nil {
			return err
		}
		name, inputs, metrics = result.Scenario.Name, result.Scenario.Inputs, result.Metrics
	} else {
		var err error
		if inputs, err = inputsFromFlags(cmd.Flags(), cfg.Preset); err != nil {
			return err
		}
		if metrics, err = returns.Evaluate(inputs); err != nil {
			return err
		}
	}

	chartCache, closeCache := openChartCache(ctx, cfg, logger)
	defer closeCache()

	rendered, err := report.NewReportService(chartCache, cfg.CacheTTL(), logger).Render(ctx, name, inputs, metrics)
	if err != nil {
		return err
	}

	if reportHTMLPath != "" {
		if err := os.WriteFile(reportHTMLPath, []byte(rendered.HTML), 0644); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		logger.Info("HTML report written", zap.String("path", reportHTMLPath))
	}
	if reportChartPath != "" {
		if err := os.WriteFile(reportChartPath, rendered.Chart, 0644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		logger.Info("chart written", zap.String("path", reportChartPath))
	}

	out := rendered.Markdown
	if !reportRaw {
		styled, err := glamour.Render(rendered.Markdown, reportStyle)
		if err != nil {
			// fall back to plain Markdown
			logger.Warn("failed to style report", zap.Error(err))
		} else {
			out = styled
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
