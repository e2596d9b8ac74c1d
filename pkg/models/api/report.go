package api

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Bucket struct {
	Label string    `json:"label"`
	Range DateRange `json:"range"`
}

type FeatureSeries struct {
	FeatureCode string    `json:"feature_code"`
	Values      []float64 `json:"values"`
}

type Report struct {
	Page        string          `json:"page"`
	Unit        string          `json:"unit"`
	Period      DateRange       `json:"period"`
	Buckets     []Bucket        `json:"buckets"`
	Primary     FeatureSeries   `json:"primary"`
	Comparisons []FeatureSeries `json:"comparisons,omitempty"`
}

type FeatureShare struct {
	FeatureCode string  `json:"feature_code"`
	Visitors    float64 `json:"visitors"`
	Percent     float64 `json:"percent"`
}

type IntervalStat struct {
	Bucket         Bucket  `json:"bucket"`
	Events         float64 `json:"events"`
	Visitors       float64 `json:"visitors"`
	ConversionRate float64 `json:"conversion_rate"`
}

type Dashboard struct {
	Period         DateRange      `json:"period"`
	Page           string         `json:"page"`
	Features       []string       `json:"features"`
	UniqueVisitors float64        `json:"unique_visitors"`
	TotalEvents    float64        `json:"total_events"`
	Shares         []FeatureShare `json:"shares"`
	ConversionRate float64        `json:"conversion_rate"`
	Intervals      []IntervalStat `json:"intervals"`
	Usage          *Report        `json:"usage,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
