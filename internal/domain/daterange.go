package domain

import (
	"fmt"
	"time"
)

// DateRange is a half-open interval [From, To) of absolute instants.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a range, enforcing From <= To.
func NewDateRange(from, to time.Time) (DateRange, error) {
	if to.Before(from) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidDateRange, from, to)
	}
	return DateRange{From: from, To: to}, nil
}

// Contains reports whether t falls inside the range. The start is
// included, the end is not.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}
