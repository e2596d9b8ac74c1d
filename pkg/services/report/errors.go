package report

import (
	"fmt"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

// MetricFetchError identifies the feature and bucket whose metric query
// failed. Report assembly stops at the first one.
type MetricFetchError struct {
	FeatureCode string
	Bucket      domain.Bucket
	Err         error
}

func (e *MetricFetchError) Error() string {
	return fmt.Sprintf("failed to fetch metrics for feature %q over %s: %v",
		e.FeatureCode, e.Bucket.Range, e.Err)
}

func (e *MetricFetchError) Unwrap() error {
	return e.Err
}
