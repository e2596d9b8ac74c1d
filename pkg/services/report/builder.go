package report

import (
	"context"
	"fmt"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

// FeatureMetrics is the single query the builder needs from a metrics
// source.
type FeatureMetrics interface {
	FeatureVisitors(ctx context.Context, pagePath, featureCode string, rng domain.DateRange) (float64, error)
}

// Builder assembles bucketed feature usage reports.
type Builder struct {
	source FeatureMetrics
}

func NewBuilder(source FeatureMetrics) *Builder {
	return &Builder{source: source}
}

// Build partitions [start, end] into unit-aligned buckets and fetches one
// metric value per (feature, bucket) pair, primary feature first. Queries
// run sequentially; the first failing query aborts the report.
func (b *Builder) Build(
	ctx context.Context,
	unit domain.IntervalUnit,
	start, end string,
	pagePath string,
	primaryFeatureCode string,
	comparisonFeatureCodes []string,
) (*domain.Report, error) {
	if primaryFeatureCode == "" {
		return nil, fmt.Errorf("primary feature code is required")
	}

	rng, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	buckets, err := Partition(rng, unit)
	if err != nil {
		return nil, err
	}

	primary, err := b.buildSeries(ctx, pagePath, primaryFeatureCode, buckets)
	if err != nil {
		return nil, err
	}

	comparisons := make([]domain.FeatureSeries, 0, len(comparisonFeatureCodes))
	for _, code := range comparisonFeatureCodes {
		series, err := b.buildSeries(ctx, pagePath, code, buckets)
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, series)
	}

	return &domain.Report{
		Page:        pagePath,
		Unit:        unit,
		Period:      rng,
		Buckets:     buckets,
		Primary:     primary,
		Comparisons: comparisons,
	}, nil
}

func (b *Builder) buildSeries(
	ctx context.Context,
	pagePath, featureCode string,
	buckets []domain.Bucket,
) (domain.FeatureSeries, error) {
	series := domain.FeatureSeries{
		FeatureCode: featureCode,
		Values:      make([]float64, 0, len(buckets)),
	}

	for _, bucket := range buckets {
		value, err := b.source.FeatureVisitors(ctx, pagePath, featureCode, bucket.Range)
		if err != nil {
			return domain.FeatureSeries{}, &MetricFetchError{FeatureCode: featureCode, Bucket: bucket, Err: err}
		}
		series.Values = append(series.Values, value)
	}

	return series, nil
}
