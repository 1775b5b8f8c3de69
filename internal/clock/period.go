package clock

import (
	"fmt"
	"time"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
)

// Period is a symbolic date range selector.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// allTimeStartYear bounds the "all" period so downstream range arithmetic
// never deals with an unbounded interval.
const allTimeStartYear = 2000

// ParsePeriod validates a raw period value.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// ResolvePeriod turns a symbolic period into a concrete half-open
// [from, to) range. It is pure given now: callers resolve once per query
// cycle so results stay stable across a single render.
func (c *Clock) ResolvePeriod(p Period, now time.Time) (domain.DateRange, error) {
	dayStart := c.DayStart(now)

	switch p {
	case PeriodToday:
		return domain.DateRange{From: dayStart, To: dayStart.AddDate(0, 0, 1)}, nil
	case PeriodWeek:
		// Week starts on Sunday.
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return domain.DateRange{From: weekStart, To: weekStart.AddDate(0, 0, 7)}, nil
	case PeriodMonth:
		local := now.In(c.loc)
		monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
		return domain.DateRange{From: monthStart, To: monthStart.AddDate(0, 1, 0)}, nil
	case PeriodAll:
		from := time.Date(allTimeStartYear, time.January, 1, 0, 0, 0, 0, c.loc)
		return domain.DateRange{From: from, To: dayStart.AddDate(10, 0, 0)}, nil
	}

	return domain.DateRange{}, fmt.Errorf("unknown period %q", p)
}
