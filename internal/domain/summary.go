package domain

import "github.com/shopspring/decimal"

// SummaryData holds grand totals over a filtered entry set.
type SummaryData struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// DayBucket is one point of the per-civil-day series. Key is a
// YYYY-MM-DD date key in the configured timezone.
type DayBucket struct {
	Key     string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MethodBucket is one point of the per-payment-method series.
type MethodBucket struct {
	Method PaymentMethod
	Total  decimal.Decimal
}
