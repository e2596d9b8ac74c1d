package report

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFeatureMetrics struct{ mock.Mock }

func (m *mockFeatureMetrics) FeatureVisitors(
	ctx context.Context,
	pagePath, featureCode string,
	rng domain.DateRange,
) (float64, error) {
	args := m.Called(ctx, pagePath, featureCode, rng)
	return args.Get(0).(float64), args.Error(1)
}

func TestBuilder_Build_WeeklyComparison(t *testing.T) {
	ctx := context.Background()
	source := new(mockFeatureMetrics)

	values := map[string][]float64{
		"Feature+1":            {10, 20, 30},
		"Comparison+Feature+2": {1, 2, 3},
	}
	for code, series := range values {
		for i, v := range series {
			rng := domain.DateRange{
				Start: date(2025, 3, 30).AddDate(0, 0, 7*i),
				End:   date(2025, 4, 5).AddDate(0, 0, 7*i),
			}
			source.On("FeatureVisitors", mock.Anything, "/", code, rng).Return(v, nil).Once()
		}
	}

	builder := NewBuilder(source)
	report, err := builder.Build(ctx, domain.UnitWeek, "2025-03-30", "2025-04-19", "/",
		"Feature+1", []string{"Comparison+Feature+2"})
	require.NoError(t, err)

	require.Len(t, report.Buckets, 3)
	assert.Equal(t, "Feature+1", report.Primary.FeatureCode)
	assert.Equal(t, []float64{10, 20, 30}, report.Primary.Values)

	require.Len(t, report.Comparisons, 1)
	assert.Equal(t, "Comparison+Feature+2", report.Comparisons[0].FeatureCode)
	assert.Equal(t, []float64{1, 2, 3}, report.Comparisons[0].Values)

	series := report.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "Feature+1", series[0].FeatureCode)
	for _, s := range series {
		assert.Len(t, s.Values, len(report.Buckets))
	}

	source.AssertExpectations(t)
}

func TestBuilder_Build_ComparisonOrderPreserved(t *testing.T) {
	ctx := context.Background()
	source := new(mockFeatureMetrics)
	source.On("FeatureVisitors", mock.Anything, "/pricing", mock.Anything, mock.Anything).
		Return(float64(5), nil)

	builder := NewBuilder(source)
	comparisons := []string{"signup", "checkout", "invite"}
	report, err := builder.Build(ctx, domain.UnitMonth, "2025-01-01", "2025-01-31", "/pricing",
		"trial", comparisons)
	require.NoError(t, err)

	require.Len(t, report.Comparisons, 3)
	for i, code := range comparisons {
		assert.Equal(t, code, report.Comparisons[i].FeatureCode)
	}
}

func TestBuilder_Build_InvalidUnit(t *testing.T) {
	builder := NewBuilder(new(mockFeatureMetrics))

	_, err := builder.Build(context.Background(), domain.IntervalUnit("day"),
		"2025-01-01", "2025-01-31", "/", "trial", nil)

	var unitErr *domain.InvalidUnitError
	require.ErrorAs(t, err, &unitErr)
}

func TestBuilder_Build_InvalidRange(t *testing.T) {
	builder := NewBuilder(new(mockFeatureMetrics))

	cases := []struct {
		name       string
		start, end string
	}{
		{"start after end", "2025-04-19", "2025-03-30"},
		{"malformed start", "19-04-2025", "2025-04-30"},
		{"malformed end", "2025-04-01", "not-a-date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.Build(context.Background(), domain.UnitWeek,
				tc.start, tc.end, "/", "trial", nil)

			var rangeErr *domain.InvalidRangeError
			require.ErrorAs(t, err, &rangeErr)
		})
	}
}

func TestBuilder_Build_EmptyPrimary(t *testing.T) {
	builder := NewBuilder(new(mockFeatureMetrics))

	_, err := builder.Build(context.Background(), domain.UnitWeek,
		"2025-03-30", "2025-04-19", "/", "", nil)
	require.Error(t, err)
}

func TestBuilder_Build_FetchErrorFailsFast(t *testing.T) {
	ctx := context.Background()
	source := new(mockFeatureMetrics)

	firstBucket := domain.DateRange{Start: date(2025, 3, 30), End: date(2025, 4, 5)}
	secondBucket := domain.DateRange{Start: date(2025, 4, 6), End: date(2025, 4, 12)}

	upstream := errors.New("upstream unavailable")
	source.On("FeatureVisitors", mock.Anything, "/", "trial", firstBucket).
		Return(float64(7), nil).Once()
	source.On("FeatureVisitors", mock.Anything, "/", "trial", secondBucket).
		Return(float64(0), upstream).Once()

	builder := NewBuilder(source)
	_, err := builder.Build(ctx, domain.UnitWeek, "2025-03-30", "2025-04-19", "/", "trial", nil)
	require.Error(t, err)

	var fetchErr *MetricFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "trial", fetchErr.FeatureCode)
	assert.Equal(t, secondBucket, fetchErr.Bucket.Range)
	assert.ErrorIs(t, err, upstream)

	// No query is issued past the failing bucket.
	source.AssertNumberOfCalls(t, "FeatureVisitors", 2)
}
