package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// ReportUseCase computes summary totals and chart series over the entry
// set selected by a filter state.
type ReportUseCase struct {
	store EntryRepository
	clock *clock.Clock
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(store EntryRepository, c *clock.Clock) *ReportUseCase {
	return &ReportUseCase{store: store, clock: c}
}

// ReportData bundles the aggregations for one filtered entry set.
// Scanned counts the entries that matched the filter and fed the
// aggregations.
type ReportData struct {
	Summary domain.SummaryData
	Daily   []domain.DayBucket
	Methods []domain.MethodBucket
	Scanned int
}

// Report materializes the filtered entry set and computes all
// aggregations over it in one pass through the store.
func (uc *ReportUseCase) Report(ctx context.Context, filter query.FilterState) (*ReportData, error) {
	pred, err := filter.Predicate(uc.clock)
	if err != nil {
		return nil, err
	}

	all, err := uc.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading entries: %w", domain.ErrQueryFailed, err)
	}

	entries := make([]*domain.Entry, 0, len(all))
	for _, e := range all {
		if pred.Matches(e) {
			entries = append(entries, e)
		}
	}

	return &ReportData{
		Summary: uc.Summarize(entries),
		Daily:   uc.BucketByDay(entries, pred.Range),
		Methods: uc.BucketByMethod(entries),
		Scanned: len(entries),
	}, nil
}

// Summarize sums amounts by entry type. Balance is income minus expenses.
func (uc *ReportUseCase) Summarize(entries []*domain.Entry) domain.SummaryData {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, e := range entries {
		switch e.Type {
		case domain.EntryTypeIncome:
			income = income.Add(e.Amount)
		case domain.EntryTypeExpense:
			expenses = expenses.Add(e.Amount)
		}
	}

	return domain.SummaryData{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

type dayTotals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

// BucketByDay accumulates per-civil-day totals and walks the range day by
// day in ascending order. Days with no activity are omitted: a wide "all
// time" range must not produce a long flat zero tail.
func (uc *ReportUseCase) BucketByDay(entries []*domain.Entry, r domain.DateRange) []domain.DayBucket {
	totals := make(map[string]dayTotals)
	for _, e := range entries {
		key := uc.clock.DateKey(e.Date)
		t := totals[key]
		switch e.Type {
		case domain.EntryTypeIncome:
			t.income = t.income.Add(e.Amount)
		case domain.EntryTypeExpense:
			t.expense = t.expense.Add(e.Amount)
		}
		totals[key] = t
	}

	if r.IsZero() {
		return sparseSeries(totals, sortedKeys(totals))
	}

	var keys []string
	end := uc.clock.DayStart(r.To)
	for cursor := uc.clock.DayStart(r.From); !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		keys = append(keys, uc.clock.DateKey(cursor))
	}

	return sparseSeries(totals, keys)
}

func sparseSeries(totals map[string]dayTotals, keys []string) []domain.DayBucket {
	var series []domain.DayBucket
	for _, key := range keys {
		t, ok := totals[key]
		if !ok || (t.income.IsZero() && t.expense.IsZero()) {
			continue
		}
		series = append(series, domain.DayBucket{Key: key, Income: t.income, Expense: t.expense})
	}
	return series
}

func sortedKeys(totals map[string]dayTotals) []string {
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BucketByMethod sums amounts per payment method over the filtered set,
// descending by total. Ties keep input encounter order; methods absent
// from the set never appear.
func (uc *ReportUseCase) BucketByMethod(entries []*domain.Entry) []domain.MethodBucket {
	totals := make(map[domain.PaymentMethod]decimal.Decimal)
	var order []domain.PaymentMethod

	for _, e := range entries {
		if _, seen := totals[e.Method]; !seen {
			order = append(order, e.Method)
		}
		totals[e.Method] = totals[e.Method].Add(e.Amount)
	}

	buckets := make([]domain.MethodBucket, 0, len(order))
	for _, m := range order {
		if totals[m].IsZero() {
			continue
		}
		buckets = append(buckets, domain.MethodBucket{Method: m, Total: totals[m]})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total.GreaterThan(buckets[j].Total)
	})

	return buckets
}
