package report

import (
	"context"
	"testing"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct{ mock.Mock }

func (m *mockSource) FeatureVisitors(
	ctx context.Context,
	pagePath, featureCode string,
	rng domain.DateRange,
) (float64, error) {
	args := m.Called(ctx, pagePath, featureCode, rng)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockSource) FeatureTotals(
	ctx context.Context,
	rng domain.DateRange,
) (map[string]metrics.FeatureTotals, error) {
	args := m.Called(ctx, rng)
	return args.Get(0).(map[string]metrics.FeatureTotals), args.Error(1)
}

func (m *mockSource) PageFeatureTotals(
	ctx context.Context,
	pagePath string,
	rng domain.DateRange,
) (map[string]metrics.FeatureTotals, error) {
	args := m.Called(ctx, pagePath, rng)
	return args.Get(0).(map[string]metrics.FeatureTotals), args.Error(1)
}

func (m *mockSource) SiteVisitors(ctx context.Context, rng domain.DateRange) (float64, error) {
	args := m.Called(ctx, rng)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockSource) PageVisitors(ctx context.Context, pagePath string, rng domain.DateRange) (float64, error) {
	args := m.Called(ctx, pagePath, rng)
	return args.Get(0).(float64), args.Error(1)
}

func TestDashboardBuilder_Build(t *testing.T) {
	ctx := context.Background()
	source := new(mockSource)

	// One weekly bucket spanning the whole requested range.
	rng := domain.DateRange{Start: date(2025, 3, 30), End: date(2025, 4, 5)}

	source.On("FeatureVisitors", mock.Anything, "/", "trial", rng).Return(float64(10), nil)
	source.On("FeatureVisitors", mock.Anything, "/", "signup", rng).Return(float64(20), nil)

	source.On("FeatureTotals", mock.Anything, rng).Return(map[string]metrics.FeatureTotals{
		"trial":     {Visitors: 60, Events: 100},
		"signup":    {Visitors: 50, Events: 80},
		"unrelated": {Visitors: 999, Events: 999},
	}, nil)
	source.On("SiteVisitors", mock.Anything, rng).Return(float64(100), nil)
	source.On("PageVisitors", mock.Anything, "/", rng).Return(float64(40), nil)
	source.On("PageFeatureTotals", mock.Anything, "/", rng).Return(map[string]metrics.FeatureTotals{
		"trial":  {Visitors: 25},
		"signup": {Visitors: 10},
	}, nil)

	dashboard, err := NewDashboardBuilder(source).
		Build(ctx, domain.UnitWeek, "2025-03-30", "2025-04-05", "/", "trial", []string{"signup"})
	require.NoError(t, err)

	assert.Equal(t, []string{"trial", "signup"}, dashboard.Features)

	// 60 + 50 exceeds the site-wide count, so the aggregate is capped.
	assert.Equal(t, float64(100), dashboard.UniqueVisitors)
	assert.Equal(t, float64(180), dashboard.TotalEvents)

	require.Len(t, dashboard.Shares, 2)
	assert.Equal(t, "trial", dashboard.Shares[0].FeatureCode)
	assert.Equal(t, float64(60), dashboard.Shares[0].Visitors)
	assert.InDelta(t, 60.0, dashboard.Shares[0].Percent, 1e-9)
	assert.Equal(t, "signup", dashboard.Shares[1].FeatureCode)
	assert.InDelta(t, 50.0, dashboard.Shares[1].Percent, 1e-9)

	// 10 + 20 converted out of 40 page visitors.
	assert.InDelta(t, 75.0, dashboard.ConversionRate, 1e-9)

	require.Len(t, dashboard.Intervals, 1)
	stat := dashboard.Intervals[0]
	assert.Equal(t, float64(180), stat.Events)
	assert.Equal(t, float64(100), stat.Visitors)
	assert.InDelta(t, 87.5, stat.ConversionRate, 1e-9)

	require.NotNil(t, dashboard.Usage)
	assert.Equal(t, []float64{10}, dashboard.Usage.Primary.Values)
	require.Len(t, dashboard.Usage.Comparisons, 1)
	assert.Equal(t, []float64{20}, dashboard.Usage.Comparisons[0].Values)
}

func TestDashboardBuilder_Build_SharesSortedByVisitors(t *testing.T) {
	ctx := context.Background()
	source := new(mockSource)
	rng := domain.DateRange{Start: date(2025, 6, 1), End: date(2025, 6, 7)}

	source.On("FeatureVisitors", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(float64(0), nil)
	source.On("FeatureTotals", mock.Anything, rng).Return(map[string]metrics.FeatureTotals{
		"a": {Visitors: 5},
		"b": {Visitors: 50},
		"c": {Visitors: 20},
	}, nil)
	source.On("SiteVisitors", mock.Anything, rng).Return(float64(200), nil)
	source.On("PageVisitors", mock.Anything, mock.Anything, mock.Anything).Return(float64(0), nil)
	source.On("PageFeatureTotals", mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]metrics.FeatureTotals{}, nil)

	dashboard, err := NewDashboardBuilder(source).
		Build(ctx, domain.UnitWeek, "2025-06-01", "2025-06-07", "/", "a", []string{"b", "c"})
	require.NoError(t, err)

	require.Len(t, dashboard.Shares, 3)
	assert.Equal(t, "b", dashboard.Shares[0].FeatureCode)
	assert.Equal(t, "c", dashboard.Shares[1].FeatureCode)
	assert.Equal(t, "a", dashboard.Shares[2].FeatureCode)
}

func TestDashboardBuilder_Build_ZeroDenominators(t *testing.T) {
	ctx := context.Background()
	source := new(mockSource)
	rng := domain.DateRange{Start: date(2025, 6, 1), End: date(2025, 6, 7)}

	source.On("FeatureVisitors", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(float64(0), nil)
	source.On("FeatureTotals", mock.Anything, rng).
		Return(map[string]metrics.FeatureTotals{}, nil)
	source.On("SiteVisitors", mock.Anything, rng).Return(float64(0), nil)
	source.On("PageVisitors", mock.Anything, mock.Anything, mock.Anything).Return(float64(0), nil)
	source.On("PageFeatureTotals", mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]metrics.FeatureTotals{}, nil)

	dashboard, err := NewDashboardBuilder(source).
		Build(ctx, domain.UnitWeek, "2025-06-01", "2025-06-07", "/", "a", nil)
	require.NoError(t, err)

	assert.Zero(t, dashboard.UniqueVisitors)
	assert.Zero(t, dashboard.ConversionRate)
	for _, share := range dashboard.Shares {
		assert.Zero(t, share.Percent)
	}
	for _, stat := range dashboard.Intervals {
		assert.Zero(t, stat.ConversionRate)
	}
}
