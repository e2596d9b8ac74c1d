package domain

// FeatureSeries holds one per-bucket metric value for a single feature,
// in bucket order.
type FeatureSeries struct {
	FeatureCode string
	Values      []float64
}

// Report is a bucketed comparison of feature usage. Every series has one
// value per bucket, indexed identically to Buckets.
type Report struct {
	Page        string
	Unit        IntervalUnit
	Period      DateRange
	Buckets     []Bucket
	Primary     FeatureSeries
	Comparisons []FeatureSeries
}

// Series returns the primary series followed by the comparison series in
// input order.
func (r *Report) Series() []FeatureSeries {
	out := make([]FeatureSeries, 0, 1+len(r.Comparisons))
	out = append(out, r.Primary)
	return append(out, r.Comparisons...)
}

// IntervalStat is one bucket's aggregate activity across all requested
// features.
type IntervalStat struct {
	Bucket         Bucket
	Events         float64
	Visitors       float64
	ConversionRate float64
}

// FeatureShare is one feature's slice of the aggregate visitor count.
type FeatureShare struct {
	FeatureCode string
	Visitors    float64
	Percent     float64
}

// Dashboard is the full multi-section view of feature activity over a
// period: aggregate totals, per-bucket activity, per-feature shares and
// page conversion rates alongside the bucketed usage report.
type Dashboard struct {
	Period         DateRange
	Page           string
	Features       []string
	UniqueVisitors float64
	TotalEvents    float64
	Shares         []FeatureShare
	ConversionRate float64
	Intervals      []IntervalStat
	Usage          *Report
}
