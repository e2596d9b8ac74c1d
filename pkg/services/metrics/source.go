package metrics

import (
	"context"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

// FeatureTotals is the visitor/event pair a breakdown row reports for one
// feature.
type FeatureTotals struct {
	Visitors float64
	Events   float64
}

// Source answers feature usage questions for a single site over arbitrary
// date ranges.
type Source interface {
	// FeatureVisitors counts unique visitors who triggered the feature on
	// the given page within the range.
	FeatureVisitors(ctx context.Context, pagePath, featureCode string, rng domain.DateRange) (float64, error)
	// FeatureTotals breaks visitors and events down by feature across the
	// whole site.
	FeatureTotals(ctx context.Context, rng domain.DateRange) (map[string]FeatureTotals, error)
	// PageFeatureTotals is FeatureTotals restricted to events on one page.
	PageFeatureTotals(ctx context.Context, pagePath string, rng domain.DateRange) (map[string]FeatureTotals, error)
	// SiteVisitors counts unique visitors site-wide.
	SiteVisitors(ctx context.Context, rng domain.DateRange) (float64, error)
	// PageVisitors counts unique visitors of one page.
	PageVisitors(ctx context.Context, pagePath string, rng domain.DateRange) (float64, error)
}
