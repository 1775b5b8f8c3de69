package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 500
	MaxEntryAmount       = "1000000000" // 1 billion, currency-agnostic
)

// ValidateAmount checks that an entry amount is a positive quantity.
// Sign is implied by the entry type; negative amounts are never stored.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return nil
}

// ValidateDescription checks the optional free-text description.
func ValidateDescription(description string) error {
	if len(strings.TrimSpace(description)) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateEntry checks all invariants on a new entry before it is persisted.
func ValidateEntry(e *Entry) error {
	if _, err := ParseEntryType(string(e.Type)); err != nil {
		return err
	}
	if _, err := ParsePaymentMethod(string(e.Method)); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrInvalidDateRange)
	}
	return ValidateDescription(e.Description)
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(page, pageSize int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 10

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}
