package adapters

import (
	"github.com/de-tools/feature-tracker/pkg/models/api"
	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

func MapDateRangeDomainToApi(r domain.DateRange) api.DateRange {
	return api.DateRange{
		Start: r.Start.Format(domain.DateLayout),
		End:   r.End.Format(domain.DateLayout),
	}
}

func MapBucketDomainToApi(b domain.Bucket) api.Bucket {
	return api.Bucket{
		Label: b.Label,
		Range: MapDateRangeDomainToApi(b.Range),
	}
}

func MapFeatureSeriesDomainToApi(s domain.FeatureSeries) api.FeatureSeries {
	return api.FeatureSeries{
		FeatureCode: s.FeatureCode,
		Values:      s.Values,
	}
}

func MapReportDomainToApi(report *domain.Report) *api.Report {
	apiReport := &api.Report{
		Page:    report.Page,
		Unit:    string(report.Unit),
		Period:  MapDateRangeDomainToApi(report.Period),
		Buckets: make([]api.Bucket, 0, len(report.Buckets)),
		Primary: MapFeatureSeriesDomainToApi(report.Primary),
	}

	for _, b := range report.Buckets {
		apiReport.Buckets = append(apiReport.Buckets, MapBucketDomainToApi(b))
	}
	for _, s := range report.Comparisons {
		apiReport.Comparisons = append(apiReport.Comparisons, MapFeatureSeriesDomainToApi(s))
	}

	return apiReport
}

func MapDashboardDomainToApi(d *domain.Dashboard) *api.Dashboard {
	apiDashboard := &api.Dashboard{
		Period:         MapDateRangeDomainToApi(d.Period),
		Page:           d.Page,
		Features:       d.Features,
		UniqueVisitors: d.UniqueVisitors,
		TotalEvents:    d.TotalEvents,
		ConversionRate: d.ConversionRate,
	}

	for _, share := range d.Shares {
		apiDashboard.Shares = append(apiDashboard.Shares, api.FeatureShare{
			FeatureCode: share.FeatureCode,
			Visitors:    share.Visitors,
			Percent:     share.Percent,
		})
	}
	for _, stat := range d.Intervals {
		apiDashboard.Intervals = append(apiDashboard.Intervals, api.IntervalStat{
			Bucket:         MapBucketDomainToApi(stat.Bucket),
			Events:         stat.Events,
			Visitors:       stat.Visitors,
			ConversionRate: stat.ConversionRate,
		})
	}
	if d.Usage != nil {
		apiDashboard.Usage = MapReportDomainToApi(d.Usage)
	}

	return apiDashboard
}
