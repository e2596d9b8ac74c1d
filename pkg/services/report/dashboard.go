package report

import (
	"context"
	"sort"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
)

// DashboardBuilder assembles the full activity view for a set of features:
// aggregate visitor and event totals, per-feature shares, page conversion
// rates and the bucketed usage report.
type DashboardBuilder struct {
	source  metrics.Source
	builder *Builder
}

func NewDashboardBuilder(source metrics.Source) *DashboardBuilder {
	return &DashboardBuilder{
		source:  source,
		builder: NewBuilder(source),
	}
}

func (d *DashboardBuilder) Build(
	ctx context.Context,
	unit domain.IntervalUnit,
	start, end string,
	pagePath string,
	primaryFeatureCode string,
	comparisonFeatureCodes []string,
) (*domain.Dashboard, error) {
	usage, err := d.builder.Build(ctx, unit, start, end, pagePath, primaryFeatureCode, comparisonFeatureCodes)
	if err != nil {
		return nil, err
	}

	features := append([]string{primaryFeatureCode}, comparisonFeatureCodes...)
	rng := usage.Period

	totals, err := d.source.FeatureTotals(ctx, rng)
	if err != nil {
		return nil, err
	}

	siteVisitors, err := d.source.SiteVisitors(ctx, rng)
	if err != nil {
		return nil, err
	}

	var sumVisitors, sumEvents float64
	for _, f := range features {
		sumVisitors += totals[f].Visitors
		sumEvents += totals[f].Events
	}
	// A visitor triggering several features is counted once per feature, so
	// the sum can exceed the site-wide unique count. Cap it.
	uniqueVisitors := min(sumVisitors, siteVisitors)

	shares := featureShares(features, totals, uniqueVisitors)

	conversionRate, err := d.conversionRate(ctx, pagePath, features, rng)
	if err != nil {
		return nil, err
	}

	intervals, err := d.intervalStats(ctx, pagePath, features, usage.Buckets, uniqueVisitors)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Period:         rng,
		Page:           pagePath,
		Features:       features,
		UniqueVisitors: uniqueVisitors,
		TotalEvents:    sumEvents,
		Shares:         shares,
		ConversionRate: conversionRate,
		Intervals:      intervals,
		Usage:          usage,
	}, nil
}

func featureShares(
	features []string,
	totals map[string]metrics.FeatureTotals,
	uniqueVisitors float64,
) []domain.FeatureShare {
	shares := make([]domain.FeatureShare, 0, len(features))
	for _, f := range features {
		visitors := totals[f].Visitors
		var percent float64
		if uniqueVisitors > 0 {
			percent = visitors / uniqueVisitors * 100
		}
		shares = append(shares, domain.FeatureShare{FeatureCode: f, Visitors: visitors, Percent: percent})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Visitors > shares[j].Visitors
	})
	return shares
}

// conversionRate measures what share of the page's visitors triggered any
// of the features on that page. Each feature is queried separately to avoid
// undercounting.
func (d *DashboardBuilder) conversionRate(
	ctx context.Context,
	pagePath string,
	features []string,
	rng domain.DateRange,
) (float64, error) {
	pageVisitors, err := d.source.PageVisitors(ctx, pagePath, rng)
	if err != nil {
		return 0, err
	}

	var converted float64
	for _, f := range features {
		visitors, err := d.source.FeatureVisitors(ctx, pagePath, f, rng)
		if err != nil {
			return 0, err
		}
		converted += visitors
	}

	return rate(min(converted, pageVisitors), pageVisitors), nil
}

func (d *DashboardBuilder) intervalStats(
	ctx context.Context,
	pagePath string,
	features []string,
	buckets []domain.Bucket,
	uniqueVisitors float64,
) ([]domain.IntervalStat, error) {
	stats := make([]domain.IntervalStat, 0, len(buckets))
	for _, bucket := range buckets {
		totals, err := d.source.FeatureTotals(ctx, bucket.Range)
		if err != nil {
			return nil, err
		}

		var visitors, events float64
		for _, f := range features {
			visitors += totals[f].Visitors
			events += totals[f].Events
		}
		visitors = min(visitors, uniqueVisitors)

		pageVisitors, err := d.source.PageVisitors(ctx, pagePath, bucket.Range)
		if err != nil {
			return nil, err
		}
		pageTotals, err := d.source.PageFeatureTotals(ctx, pagePath, bucket.Range)
		if err != nil {
			return nil, err
		}
		var converted float64
		for _, f := range features {
			converted += pageTotals[f].Visitors
		}

		stats = append(stats, domain.IntervalStat{
			Bucket:         bucket,
			Events:         events,
			Visitors:       visitors,
			ConversionRate: rate(min(converted, pageVisitors), pageVisitors),
		})
	}
	return stats, nil
}

func rate(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
