package clock

import (
	"fmt"
	"time"
)

// Clock supplies the current instant and the civil-date decomposition of
// any instant in the application's configured timezone. All civil-day
// arithmetic in the engine goes through a Clock so that tests can inject
// a fixed one.
type Clock struct {
	loc   *time.Location
	nowFn func() time.Time
}

// New creates a Clock for the named IANA timezone.
func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, nowFn: time.Now}, nil
}

// NewFixed creates a Clock frozen at the given instant, for tests.
func NewFixed(now time.Time, loc *time.Location) *Clock {
	return &Clock{loc: loc, nowFn: func() time.Time { return now }}
}

// Now returns the current instant.
func (c *Clock) Now() time.Time {
	return c.nowFn()
}

// Location returns the configured timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// DayStart returns midnight of the instant's calendar day in the
// configured timezone.
func (c *Clock) DayStart(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// DateKey returns the instant's civil date as YYYY-MM-DD in the
// configured timezone. Entries near midnight bucket into the civil day
// of the configured zone, not the UTC day.
func (c *Clock) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD civil date into midnight of that day in
// the configured timezone.
func (c *Clock) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
