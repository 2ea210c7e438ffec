package domain

import (
	"fmt"
	"time"
)

// Period identifies one reporting quarter.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Valid reports whether p names a real quarter.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Quarter >= 1 && p.Quarter <= 4
}

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Quarter == 0
}

// String renders the period in partition-key form, e.g. "1986Q3".
func (p Period) String() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// End returns the quarter-end date at UTC midnight.
func (p Period) End() time.Time {
	// Day zero of the following month normalizes to the last day of the
	// quarter's closing month.
	return time.Date(p.Year, time.Month(p.Quarter*3)+1, 0, 0, 0, 0, 0, time.UTC)
}

// EpochDays returns the quarter-end date as days since the Unix epoch,
// the physical representation of a Parquet DATE value.
func (p Period) EpochDays() int32 {
	return int32(p.End().Unix() / 86400)
}

// Before reports whether p precedes o in calendar order.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}
