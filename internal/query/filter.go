package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
)

// FilterState is an immutable value holding the currently selected filter
// dimensions. Transitions produce a new value; nothing is mutated in place.
// Period and the custom (FromDate, ToDate) pair are mutually exclusive:
// setting one clears the other.
type FilterState struct {
	Period    clock.Period
	FromDate  string // YYYY-MM-DD civil date, inclusive
	ToDate    string // YYYY-MM-DD civil date, inclusive
	Method    domain.PaymentMethod
	Type      domain.EntryType
	CreatedBy string
}

// DefaultFilter is the canonical start-up state: today's movements.
func DefaultFilter() FilterState {
	return FilterState{Period: clock.PeriodToday}
}

// Reset restores the canonical default. Applying it twice yields the same
// effective range given the same clock.
func (f FilterState) Reset() FilterState {
	return DefaultFilter()
}

// WithPeriod selects a symbolic period and clears any custom range.
func (f FilterState) WithPeriod(p clock.Period) FilterState {
	f.Period = p
	f.FromDate = ""
	f.ToDate = ""
	return f
}

// WithCustomRange selects an inclusive civil-date range and clears the period.
func (f FilterState) WithCustomRange(fromDate, toDate string) FilterState {
	f.FromDate = fromDate
	f.ToDate = toDate
	f.Period = ""
	return f
}

// WithMethod constrains the payment method dimension.
func (f FilterState) WithMethod(m domain.PaymentMethod) FilterState {
	f.Method = m
	return f
}

// WithType constrains the entry type dimension.
func (f FilterState) WithType(t domain.EntryType) FilterState {
	f.Type = t
	return f
}

// WithCreatedBy constrains the creator dimension.
func (f FilterState) WithCreatedBy(id string) FilterState {
	f.CreatedBy = id
	return f
}

// EffectiveRange resolves whichever of period/custom range is set into a
// half-open [from, to) instant range. A custom range is inclusive of both
// civil days, so the end is extended by one day before use. When neither
// is set the zero range is returned, meaning no date constraint.
func (f FilterState) EffectiveRange(c *clock.Clock) (domain.DateRange, error) {
	if f.FromDate != "" && f.ToDate != "" {
		from, err := c.ParseDate(f.FromDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		to, err := c.ParseDate(f.ToDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		return domain.NewDateRange(from, to.AddDate(0, 0, 1))
	}

	if f.Period != "" {
		return c.ResolvePeriod(f.Period, c.Now())
	}

	return domain.DateRange{}, nil
}

// Predicate materializes the filter into the concrete constraints issued
// to the entry store. The "all" sentinels never reach this point; absent
// dimensions stay zero-valued, meaning unconstrained.
func (f FilterState) Predicate(c *clock.Clock) (Predicate, error) {
	r, err := f.EffectiveRange(c)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{
		Range:     r,
		Method:    f.Method,
		Type:      f.Type,
		CreatedBy: f.CreatedBy,
	}, nil
}

// Fingerprint identifies the filter dimensions, ignoring pagination. Two
// states with the same fingerprint select the same entry set.
func (f FilterState) Fingerprint() string {
	return strings.Join([]string{
		string(f.Period), f.FromDate, f.ToDate,
		string(f.Method), string(f.Type), f.CreatedBy,
	}, "|")
}

// ParseFilter decodes filter parameters from URL query values. A literal
// "all" on method/type/creator means no constraint on that dimension and
// is stripped here rather than passed downstream. Unknown enum values are
// rejected, not propagated.
func ParseFilter(values url.Values) (FilterState, error) {
	f := FilterState{}

	if p := values.Get("period"); p != "" && p != "all" {
		period, err := clock.ParsePeriod(p)
		if err != nil {
			return FilterState{}, err
		}
		f = f.WithPeriod(period)
	} else if p == "all" {
		f = f.WithPeriod(clock.PeriodAll)
	}

	fromDate := values.Get("fromDate")
	toDate := values.Get("toDate")
	if fromDate != "" || toDate != "" {
		if fromDate == "" || toDate == "" {
			return FilterState{}, fmt.Errorf("fromDate and toDate must be provided together")
		}
		f = f.WithCustomRange(fromDate, toDate)
	}

	if m := values.Get("paymentMethod"); m != "" && m != "all" {
		method, err := domain.ParsePaymentMethod(m)
		if err != nil {
			return FilterState{}, err
		}
		f = f.WithMethod(method)
	}

	if t := values.Get("entryType"); t != "" && t != "all" {
		entryType, err := domain.ParseEntryType(t)
		if err != nil {
			return FilterState{}, err
		}
		f = f.WithType(entryType)
	}

	if c := values.Get("createdBy"); c != "" && c != "all" {
		f = f.WithCreatedBy(c)
	}

	return f, nil
}
