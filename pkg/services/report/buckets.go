package report

import (
	"time"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
)

// Partition splits rng into ordered, contiguous, non-overlapping buckets
// aligned to unit. Week buckets roll from rng.Start in 7-day strides; month
// buckets align to calendar months. Buckets are clipped to rng, so the last
// week bucket and the first and last month buckets may be partial.
func Partition(rng domain.DateRange, unit domain.IntervalUnit) ([]domain.Bucket, error) {
	switch unit {
	case domain.UnitWeek:
		return partitionWeeks(rng), nil
	case domain.UnitMonth:
		return partitionMonths(rng), nil
	default:
		return nil, &domain.InvalidUnitError{Unit: string(unit)}
	}
}

func partitionWeeks(rng domain.DateRange) []domain.Bucket {
	var buckets []domain.Bucket
	for cur := rng.Start; !cur.After(rng.End); cur = cur.AddDate(0, 0, 7) {
		end := cur.AddDate(0, 0, 6)
		buckets = append(buckets, newBucket(cur, clip(end, rng.End)))
	}
	return buckets
}

func partitionMonths(rng domain.DateRange) []domain.Bucket {
	var buckets []domain.Bucket
	for cur := rng.Start; !cur.After(rng.End); cur = startOfNextMonth(cur) {
		end := startOfNextMonth(cur).AddDate(0, 0, -1)
		buckets = append(buckets, newBucket(cur, clip(end, rng.End)))
	}
	return buckets
}

func startOfNextMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

func clip(d, limit time.Time) time.Time {
	if d.After(limit) {
		return limit
	}
	return d
}

func newBucket(start, end time.Time) domain.Bucket {
	rng := domain.DateRange{Start: start, End: end}
	return domain.Bucket{Label: rng.String(), Range: rng}
}
