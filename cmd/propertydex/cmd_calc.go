package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/irr"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/leverage"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
)

var irrGuess float64

var irrCmd = &cobra.Command{
	Use:   "irr [cash-flow...]",
	Short: "Solve the IRR of a cash-flow series (period 0 first)",
	Long: `Solves the internal rate of return of a periodic cash-flow series with
Newton-Raphson. Negative values are outflows.

Example:
  propertydex irr -- -1000000 60000 1060000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIRR,
}

var (
	ltvDebt      float64
	ltvValuation float64
)

var ltvCmd = &cobra.Command{
	Use:   "ltv",
	Short: "Compute the loan-to-value ratio and its risk level",
	RunE:  runLTV,
}

var (
	waccEquity     float64
	waccEquityCost float64
	waccDebt       float64
	waccDebtCost   float64
)

var waccCmd = &cobra.Command{
	Use:   "wacc",
	Short: "Compute the weighted average cost of capital",
	RunE:  runWACC,
}

var projectJSON bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the equity cash flows and return metrics of an asset",
	Long: `Projects the asset from the configured preset, overridden by any input flag.

Example:
  propertydex project --holding-period-years 7 --leverage-ratio 70`,
	RunE: runProject,
}

func init() {
	irrCmd.Flags().Float64Var(&irrGuess, "guess", irr.DefaultGuess, "Starting rate as a fraction (0.1 = 10%)")

	ltvCmd.Flags().Float64Var(&ltvDebt, "debt", 0, "Total debt")
	ltvCmd.Flags().Float64Var(&ltvValuation, "valuation", 0, "Asset valuation")
	_ = ltvCmd.MarkFlagRequired("debt")
	_ = ltvCmd.MarkFlagRequired("valuation")

	waccCmd.Flags().Float64Var(&waccEquity, "equity", 0, "Equity amount")
	waccCmd.Flags().Float64Var(&waccEquityCost, "equity-cost", 0, "Cost of equity (%)")
	waccCmd.Flags().Float64Var(&waccDebt, "debt", 0, "Debt amount")
	waccCmd.Flags().Float64Var(&waccDebtCost, "debt-cost", 0, "Cost of debt (%)")

	bindInputFlags(projectCmd.Flags())
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "Print the metrics as JSON")
}

func runIRR(cmd *cobra.Command, args []string) error {
	flows := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid cash flow %q: %w", a, err)
		}
		flows[i] = v
	}

	result := irr.CalculateIRR(flows, irrGuess)

	out := cmd.OutOrStdout()
	switch result.Status {
	case domain.IRRStatusConverged:
		fmt.Fprintf(out, "IRR: %.4f%% (%d iterations)\n", result.Rate, result.Iterations)
	case domain.IRRStatusNotConverged:
		fmt.Fprintf(out, "IRR: %.4f%% (did not converge after %d iterations)\n", result.Rate, result.Iterations)
	default:
		fmt.Fprintln(out, "IRR: indeterminate")
	}
	return nil
}

func runLTV(cmd *cobra.Command, args []string) error {
	result := leverage.CalculateLTV(ltvDebt, ltvValuation)
	fmt.Fprintf(cmd.OutOrStdout(), "LTV: %.2f%% (%s)\n", result.LTV, result.RiskLevel)
	return nil
}

func runWACC(cmd *cobra.Command, args []string) error {
	wacc := leverage.CalculateWACC(waccEquity, waccEquityCost, waccDebt, waccDebtCost)
	fmt.Fprintf(cmd.OutOrStdout(), "WACC: %.4f%%\n", wacc)
	return nil
}

func runProject(cmd *cobra.Command, args []string) error {
	inputs, err := inputsFromFlags(cmd.Flags(), cfg.Preset)
	if err != nil {
		return err
	}

	metrics, err := returns.Evaluate(inputs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if projectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Inputs     domain.ProjectionInputs  `json:"inputs"`
			CashFlows  []float64                `json:"cashFlows"`
			Commentary domain.CommentaryContext `json:"commentary"`
			IRRStatus  domain.IRRStatus         `json:"irrStatus"`
		}{inputs, metrics.CashFlows, returns.Commentary(metrics), metrics.IRR.Status})
	}

	d := metrics.Display()
	for i, cf := range metrics.CashFlows {
		fmt.Fprintf(out, "Year %2d  %s\n", i, humanize.Comma(decimal.NewFromFloat(cf).Round(0).IntPart()))
	}
	fmt.Fprintf(out, "NOI (year 1):     %s\n", humanize.Comma(d.NOIYear1.IntPart()))
	fmt.Fprintf(out, "Exit valuation:   %s\n", humanize.Comma(d.ExitValuation.IntPart()))
	fmt.Fprintf(out, "Equity multiple:  %sx\n", d.EquityMultiple.StringFixed(2))
	if d.IRRStatus == domain.IRRStatusIndeterminate {
		fmt.Fprintln(out, "IRR:              indeterminate")
	} else {
		fmt.Fprintf(out, "IRR:              %s%%\n", d.IRR.StringFixed(2))
	}
	return nil
}

// Input flags shared by project and report. Unset flags keep the base value.
// presetNote marks input flags whose unset value comes from the config preset,
// not from a compiled-in default
const presetNote = " (unset: config preset)"

func bindInputFlags(fs *pflag.FlagSet) {
	fs.Float64("income-growth-rate", 0, "Annual income growth (%)"+presetNote)
	fs.Float64("vacancy-rate", 0, "Vacancy (%)"+presetNote)
	fs.Float64("opex-percent", 0, "Operating expenses (% of effective gross income)"+presetNote)
	fs.Float64("exit-cap-rate", 0, "Exit cap rate (%)"+presetNote)
	fs.Int("holding-period-years", 0, "Holding period in years (1-15)"+presetNote)
	fs.Float64("gross-revenue-base", 0, "Year-1 gross revenue"+presetNote)
	fs.Float64("sponsor-promote", 0, "Sponsor promote (% of profit)"+presetNote)
	fs.Float64("leverage-ratio", 0, "Debt share of entry valuation (%)"+presetNote)
	fs.Float64("debt-interest-rate", 0, "Interest-only debt rate (%)"+presetNote)
	fs.Float64("cap-rate-spread", 0, "Entry cap rate spread over exit cap (points)"+presetNote)
}

func inputsFromFlags(fs *pflag.FlagSet, base domain.ProjectionInputs) (domain.ProjectionInputs, error) {
	inputs := base
	floats := map[string]*float64{
		"income-growth-rate": &inputs.IncomeGrowthRate,
		"vacancy-rate":       &inputs.VacancyRate,
		"opex-percent":       &inputs.OpexPercent,
		"exit-cap-rate":      &inputs.ExitCapRate,
		"gross-revenue-base": &inputs.GrossRevenueBase,
		"sponsor-promote":    &inputs.SponsorPromote,
		"leverage-ratio":     &inputs.LeverageRatio,
		"debt-interest-rate": &inputs.DebtInterestRate,
		"cap-rate-spread":    &inputs.CapRateSpread,
	}
	for name, target := range floats {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetFloat64(name)
		if err != nil {
			return domain.ProjectionInputs{}, err
		}
		*target = v
	}

	if fs.Changed("holding-period-years") {
		v, err := fs.GetInt("holding-period-years")
		if err != nil {
			return domain.ProjectionInputs{}, err
		}
		inputs.HoldingPeriodYears = v
	}

	return inputs, nil
}
