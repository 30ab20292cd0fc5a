package report

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/vicanso/go-charts/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/leverage"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// Report bundles the rendered forms of a scenario evaluation
type Report struct {
	Markdown string
	HTML     string
	Chart    []byte // PNG
}

// ReportService renders evaluated scenarios for humans
type ReportService struct {
	cache  domain.ChartCache
	ttl    time.Duration
	logger *zap.Logger
	md     goldmark.Markdown
}

// NewReportService creates a new ReportService instance.
// A nil cache disables chart caching.
func NewReportService(cache domain.ChartCache, ttl time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		md:     goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Render produces the Markdown, HTML and chart forms in one pass
func (s *ReportService) Render(ctx context.Context, name string, inputs domain.ProjectionInputs, metrics domain.ReturnMetrics) (*Report, error) {
	md := s.Markdown(name, inputs, metrics)

	html, err := s.HTML(md)
	if err != nil {
		return nil, err
	}

	chart, err := s.CashFlowChart(ctx, metrics.CashFlows)
	if err != nil {
		return nil, err
	}

	return &Report{Markdown: md, HTML: html, Chart: chart}, nil
}

// Markdown renders the assumptions, cash flows and derived metrics as a Markdown document
func (s *ReportService) Markdown(name string, inputs domain.ProjectionInputs, metrics domain.ReturnMetrics) string {
	d := metrics.Display()
	ltv := leverage.CalculateLTV(metrics.InitialDebt, metrics.EntryValuation)

	var b strings.Builder

	if name == "" {
		name = "Untitled scenario"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	b.WriteString("## Assumptions\n\n")
	b.WriteString("| Input | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Gross revenue (year 1) | %s |\n", money(inputs.GrossRevenueBase))
	fmt.Fprintf(&b, "| Income growth | %s |\n", percent(inputs.IncomeGrowthRate))
	fmt.Fprintf(&b, "| Vacancy | %s |\n", percent(inputs.VacancyRate))
	fmt.Fprintf(&b, "| Operating expenses | %s |\n", percent(inputs.OpexPercent))
	fmt.Fprintf(&b, "| Exit cap rate | %s |\n", percent(inputs.ExitCapRate))
	fmt.Fprintf(&b, "| Entry cap spread | %s |\n", percent(inputs.CapRateSpread))
	fmt.Fprintf(&b, "| Holding period | %d years |\n", inputs.HoldingPeriodYears)
	fmt.Fprintf(&b, "| Leverage | %s |\n", percent(inputs.LeverageRatio))
	fmt.Fprintf(&b, "| Debt interest | %s |\n", percent(inputs.DebtInterestRate))
	fmt.Fprintf(&b, "| Sponsor promote | %s |\n", percent(inputs.SponsorPromote))

	b.WriteString("\n## Cash Flows\n\n")
	b.WriteString("| Year | Equity cash flow |\n|---|---|\n")
	for i, cf := range metrics.CashFlows {
		fmt.Fprintf(&b, "| %d | %s |\n", i, money(cf))
	}

	b.WriteString("\n## Returns\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| NOI (year 1) | %s |\n", moneyDecimal(d.NOIYear1))
	fmt.Fprintf(&b, "| Entry valuation | %s |\n", moneyDecimal(d.EntryValuation))
	fmt.Fprintf(&b, "| Exit valuation | %s |\n", moneyDecimal(d.ExitValuation))
	fmt.Fprintf(&b, "| Initial equity | %s |\n", moneyDecimal(d.InitialEquity))
	fmt.Fprintf(&b, "| Total profit | %s |\n", moneyDecimal(d.TotalProfit))
	fmt.Fprintf(&b, "| Sponsor promote | %s |\n", moneyDecimal(d.PromoteAmount))
	fmt.Fprintf(&b, "| Equity multiple | %sx |\n", d.EquityMultiple.StringFixed(2))
	fmt.Fprintf(&b, "| IRR | %s |\n", irrText(d))
	fmt.Fprintf(&b, "| LTV | %s (%s) |\n", percent(ltv.LTV), ltv.RiskLevel)

	c := returns.Commentary(metrics)
	b.WriteString("\n## Commentary Context\n\n")
	fmt.Fprintf(&b, "- irr: %s\n", strconv.FormatFloat(c.IRR, 'f', 4, 64))
	fmt.Fprintf(&b, "- irrStatus: %s\n", c.IRRStatus)
	fmt.Fprintf(&b, "- equityMultiple: %s\n", strconv.FormatFloat(c.EquityMultiple, 'f', 4, 64))
	fmt.Fprintf(&b, "- noiYear1: %s\n", strconv.FormatFloat(c.NOIYear1, 'f', 2, 64))
	fmt.Fprintf(&b, "- exitValuation: %s\n", strconv.FormatFloat(c.ExitValuation, 'f', 2, 64))

	b.WriteString("\n## Glossary\n\n")
	writeGlossary(&b, returns.MetricEducation())
	writeGlossary(&b, returns.InputEducation())

	return b.String()
}

// HTML converts a Markdown report to an HTML fragment
func (s *ReportService) HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report to HTML: %w", err)
	}
	return buf.String(), nil
}

// CashFlowChart renders the vector as a PNG bar chart, one bar per year.
// Identical vectors share a cache entry.
func (s *ReportService) CashFlowChart(ctx context.Context, flows domain.CashFlowVector) ([]byte, error) {
	if len(flows) == 0 {
		return nil, &domain.InvalidInputError{Field: "cashFlows", Reason: "must not be empty"}
	}
	for _, v := range flows {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &domain.InvalidInputError{Field: "cashFlows", Reason: "must be finite"}
		}
	}

	key := chartKey(flows)
	if s.cache != nil {
		if img, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug("chart cache hit", zap.String("key", key))
			return img, nil
		}
	}

	labels := make([]string, len(flows))
	for i := range flows {
		labels[i] = "Y" + strconv.Itoa(i)
	}

	painter, err := charts.BarRender([][]float64{flows},
		charts.TitleTextOptionFunc("Equity Cash Flows"),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
		charts.PNGTypeOption(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render cash flow chart: %w", err)
	}

	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode cash flow chart: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, img, s.ttl); err != nil {
			// A failed cache write must not fail the render
			s.logger.Warn("failed to cache chart", zap.String("key", key), zap.Error(err))
		}
	}

	return img, nil
}

func writeGlossary(b *strings.Builder, e domain.Education) {
	for _, key := range slices.Sorted(maps.Keys(e)) {
		fmt.Fprintf(b, "- **%s**: %s\n", key, e[key])
	}
}

func chartKey(flows domain.CashFlowVector) string {
	h := sha256.New()
	for _, v := range flows {
		h.Write([]byte(strconv.FormatFloat(v, 'g', -1, 64)))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func money(v float64) string {
	return moneyDecimal(decimal.NewFromFloat(v).Round(0))
}

func moneyDecimal(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func irrText(d domain.DisplayMetrics) string {
	switch d.IRRStatus {
	case domain.IRRStatusConverged:
		return d.IRR.StringFixed(2) + "%"
	case domain.IRRStatusNotConverged:
		return d.IRR.StringFixed(2) + "% (not converged)"
	default:
		return "n/a (indeterminate)"
	}
}
