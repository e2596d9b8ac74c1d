package domain

import "fmt"

// InvalidUnitError reports an interval argument outside {week, month}.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid interval unit %q: must be %q or %q", e.Unit, UnitWeek, UnitMonth)
}

// InvalidRangeError reports an unparsable or reversed date range.
type InvalidRangeError struct {
	Start  string
	End    string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range %s,%s: %s", e.Start, e.End, e.Reason)
}
