package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Method      string          `json:"method"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		Method:      string(e.Method),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PageResponse represents one page of the filtered entry set. Total is
// the filter-qualified count across all pages.
type PageResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
}

// PageFromResult converts a query result to a response.
func PageFromResult(res *usecase.PageResult) *PageResponse {
	return &PageResponse{
		Entries: EntriesFromDomain(res.Entries),
		Total:   res.Total,
		Page:    res.Page,
	}
}

// DeleteEntryResponse reports a delete and the subsequent page refresh
// separately. Deleted is true even when the refresh failed.
type DeleteEntryResponse struct {
	Deleted      bool          `json:"deleted"`
	Page         *PageResponse `json:"page,omitempty"`
	RefreshError string        `json:"refresh_error,omitempty"`
}

// SummaryResponse represents the totals over a filtered entry set.
type SummaryResponse struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// SummaryFromDomain converts domain summary to response.
func SummaryFromDomain(s domain.SummaryData) *SummaryResponse {
	return &SummaryResponse{
		TotalIncome:   s.TotalIncome,
		TotalExpenses: s.TotalExpenses,
		Balance:       s.Balance,
	}
}

// DayBucketResponse represents one day of the per-day series.
type DayBucketResponse struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DayBucketsFromDomain converts domain day buckets to responses.
func DayBucketsFromDomain(buckets []domain.DayBucket) []*DayBucketResponse {
	result := make([]*DayBucketResponse, len(buckets))
	for i, b := range buckets {
		result[i] = &DayBucketResponse{
			Date:    b.Key,
			Income:  b.Income,
			Expense: b.Expense,
		}
	}
	return result
}

// MethodBucketResponse represents one payment method's share.
type MethodBucketResponse struct {
	Method string          `json:"method"`
	Label  string          `json:"label"`
	Total  decimal.Decimal `json:"total"`
}

// MethodBucketsFromDomain converts domain method buckets to responses.
func MethodBucketsFromDomain(buckets []domain.MethodBucket) []*MethodBucketResponse {
	result := make([]*MethodBucketResponse, len(buckets))
	for i, b := range buckets {
		result[i] = &MethodBucketResponse{
			Method: string(b.Method),
			Label:  b.Method.Label(),
			Total:  b.Total,
		}
	}
	return result
}

// CreatorResponse represents a distinct entry author.
type CreatorResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CreatorsFromDomain converts domain creators to responses.
func CreatorsFromDomain(creators []*domain.Creator) []*CreatorResponse {
	result := make([]*CreatorResponse, len(creators))
	for i, c := range creators {
		result[i] = &CreatorResponse{ID: c.ID, Label: c.Label}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
