package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/usecase"
)

// CreateEntryRequest represents a request to record a movement.
type CreateEntryRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Method      string          `json:"method"`
}

// ToUseCaseInput converts to use case input. The author comes from the
// authenticated session, never from the request body.
func (r *CreateEntryRequest) ToUseCaseInput(createdBy string) usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Type:        r.Type,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		Method:      r.Method,
		CreatedBy:   createdBy,
	}
}

// UpdateDescriptionRequest represents a request to edit an entry's
// description. An empty string clears it.
type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}
