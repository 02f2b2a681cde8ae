package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// Period is a value object representing a closed date range
// [Start, End], inclusive on both ends. Payouts and statements are
// always scoped to a period.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod creates a new Period, validating that start precedes end
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, errors.New("period start and end are required")
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("period end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Period{start: start, end: end}, nil
}

// Start returns the inclusive start of the period
func (p Period) Start() time.Time {
	return p.start
}

// End returns the inclusive end of the period
func (p Period) End() time.Time {
	return p.end
}

// Contains returns true if t falls within the period, inclusive
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

// Equals returns true if both periods have identical bounds
func (p Period) Equals(other Period) bool {
	return p.start.Equal(other.start) && p.end.Equal(other.end)
}

// String returns a human-readable representation of the period
func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.start.Format("2006-01-02"), p.end.Format("2006-01-02"))
}
