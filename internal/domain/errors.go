package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrNotAuthor     = errors.New("entry can only be edited by its author")

	// Validation errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidEntryType     = errors.New("invalid entry type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDateRange     = errors.New("invalid date range")

	// Query errors
	ErrQueryFailed      = errors.New("query failed")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Export errors
	ErrEmptyExport = errors.New("no entries to export")

	// Auth errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
)
