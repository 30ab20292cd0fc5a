package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// MockChartCache is a mock implementation of ChartCache
type MockChartCache struct {
	mock.Mock
}

func (m *MockChartCache) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockChartCache) Set(ctx context.Context, key string, image []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, image, ttl)
	return args.Error(0)
}

func evaluatePreset(t *testing.T) (domain.ProjectionInputs, domain.ReturnMetrics) {
	t.Helper()
	inputs := domain.DefaultProjectionInputs()
	m, err := returns.Evaluate(inputs)
	require.NoError(t, err)
	return inputs, m
}

func TestReportService_Markdown(t *testing.T) {
	svc := NewReportService(nil, 0, zap.NewNop())
	inputs, m := evaluatePreset(t)

	md := svc.Markdown("Harbor View", inputs, m)

	assert.Contains(t, md, "# Harbor View")
	assert.Contains(t, md, "## Assumptions")
	assert.Contains(t, md, "| Gross revenue (year 1) | 500,000 |")
	assert.Contains(t, md, "| Holding period | 5 years |")
	assert.Contains(t, md, "| Leverage | 60.00% |")
	assert.Contains(t, md, "## Cash Flows")
	assert.Contains(t, md, "| 5 |")
	assert.Contains(t, md, "| IRR | "+m.Display().IRR.StringFixed(2)+"% |")
	assert.Contains(t, md, "| LTV | 60.00% (")
	assert.Contains(t, md, "- equityMultiple:")
	assert.Contains(t, md, "## Glossary")
	assert.Contains(t, md, "- **exitCapRate**: ")
	assert.Contains(t, md, "- **irr**: ")
}

func TestReportService_Markdown_DefaultName(t *testing.T) {
	svc := NewReportService(nil, 0, nil)
	inputs, m := evaluatePreset(t)

	assert.Contains(t, svc.Markdown("", inputs, m), "# Untitled scenario")
}

func TestReportService_Markdown_IndeterminateIRR(t *testing.T) {
	svc := NewReportService(nil, 0, nil)
	m := domain.ReturnMetrics{
		Projection: domain.Projection{CashFlows: domain.CashFlowVector{-100, 0}},
		IRR:        domain.IRRResult{Status: domain.IRRStatusIndeterminate},
	}

	md := svc.Markdown("flat", domain.DefaultProjectionInputs(), m)

	assert.Contains(t, md, "| IRR | n/a (indeterminate) |")
	assert.Contains(t, md, "- irrStatus: INDETERMINATE")
}

func TestReportService_HTML(t *testing.T) {
	svc := NewReportService(nil, 0, nil)
	inputs, m := evaluatePreset(t)

	html, err := svc.HTML(svc.Markdown("Harbor View", inputs, m))

	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Harbor View</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>500,000</td>")
}

func TestReportService_CashFlowChart_RendersPNG(t *testing.T) {
	svc := NewReportService(nil, 0, nil)
	_, m := evaluatePreset(t)

	img, err := svc.CashFlowChart(context.Background(), m.CashFlows)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestReportService_CashFlowChart_CacheHit(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockChartCache)
	svc := NewReportService(mockCache, time.Hour, zap.NewNop())

	cached := []byte("cached-image")
	flows := domain.CashFlowVector{-100, 10, 110}
	mockCache.On("Get", ctx, chartKey(flows)).Return(cached, true)

	img, err := svc.CashFlowChart(ctx, flows)

	require.NoError(t, err)
	assert.Equal(t, cached, img)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_CashFlowChart_CacheMissStores(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockChartCache)
	svc := NewReportService(mockCache, time.Hour, zap.NewNop())

	flows := domain.CashFlowVector{-100, 10, 110}
	key := chartKey(flows)
	mockCache.On("Get", ctx, key).Return(nil, false)
	mockCache.On("Set", ctx, key, mock.MatchedBy(func(img []byte) bool {
		return bytes.HasPrefix(img, pngMagic)
	}), time.Hour).Return(nil)

	img, err := svc.CashFlowChart(ctx, flows)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
	mockCache.AssertExpectations(t)
}

func TestReportService_CashFlowChart_CacheWriteFailureIgnored(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockChartCache)
	svc := NewReportService(mockCache, time.Minute, zap.NewNop())

	flows := domain.CashFlowVector{-50, 60}
	mockCache.On("Get", ctx, mock.Anything).Return(nil, false)
	mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(errors.New("redis down"))

	img, err := svc.CashFlowChart(ctx, flows)

	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestReportService_CashFlowChart_Empty(t *testing.T) {
	svc := NewReportService(nil, 0, nil)

	_, err := svc.CashFlowChart(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChartKey(t *testing.T) {
	a := chartKey(domain.CashFlowVector{-100, 10, 110})
	b := chartKey(domain.CashFlowVector{-100, 10, 110})
	c := chartKey(domain.CashFlowVector{-100, 110, 10})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestReportService_Render(t *testing.T) {
	svc := NewReportService(nil, 0, nil)
	inputs, m := evaluatePreset(t)

	r, err := svc.Render(context.Background(), "Harbor View", inputs, m)

	require.NoError(t, err)
	assert.Contains(t, r.Markdown, "# Harbor View")
	assert.Contains(t, r.HTML, "<table>")
	assert.True(t, bytes.HasPrefix(r.Chart, pngMagic))
}
