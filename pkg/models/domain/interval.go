package domain

import (
	"fmt"
	"time"
)

// IntervalUnit is the bucketing granularity of a report.
type IntervalUnit string

const (
	UnitWeek  IntervalUnit = "week"
	UnitMonth IntervalUnit = "month"
)

// ParseIntervalUnit validates a user-supplied interval argument.
func ParseIntervalUnit(s string) (IntervalUnit, error) {
	switch IntervalUnit(s) {
	case UnitWeek, UnitMonth:
		return IntervalUnit(s), nil
	default:
		return "", &InvalidUnitError{Unit: s}
	}
}

const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar date range. Start and End carry
// UTC-midnight timestamps.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses the YYYY-MM-DD pair and enforces start <= end.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, &InvalidRangeError{Start: start, End: end, Reason: "dates must be in YYYY-MM-DD format"}
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, &InvalidRangeError{Start: start, End: end, Reason: "dates must be in YYYY-MM-DD format"}
	}
	if e.Before(s) {
		return DateRange{}, &InvalidRangeError{Start: start, End: end, Reason: "end date must be on or after start date"}
	}
	return DateRange{Start: s, End: e}, nil
}

// Days returns the inclusive day count of the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// Bucket is one aligned sub-interval of a report's date range.
type Bucket struct {
	Label string
	Range DateRange
}
