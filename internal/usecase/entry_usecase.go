package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
)

const creatorsCacheKey = "entry-creators"
const creatorsCacheTTL = 5 * time.Minute

// EntryUseCase handles entry mutations and the creators listing.
type EntryUseCase struct {
	store EntryRepository
	idGen IDGenerator
	clock *clock.Clock
	cache Cache
}

// NewEntryUseCase creates a new EntryUseCase. cache may be nil.
func NewEntryUseCase(store EntryRepository, idGen IDGenerator, c *clock.Clock, cache Cache) *EntryUseCase {
	return &EntryUseCase{
		store: store,
		idGen: idGen,
		clock: c,
		cache: cache,
	}
}

// CreateEntryInput represents input for recording a movement.
type CreateEntryInput struct {
	Type        string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Method      string
	CreatedBy   string
}

// CreateEntry validates and persists a new entry. The store never sees
// an entry with an out-of-enumeration type or method, or a non-positive
// amount. CreatedBy comes from the authenticated session; a missing
// identity fails before anything is written.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if input.CreatedBy == "" {
		return nil, domain.ErrUnauthenticated
	}

	entryType, err := domain.ParseEntryType(input.Type)
	if err != nil {
		return nil, err
	}
	method, err := domain.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		ID:          uc.idGen.Generate(),
		Type:        entryType,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Method:      method,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   uc.clock.Now().UTC(),
	}

	if err := domain.ValidateEntry(entry); err != nil {
		return nil, err
	}

	if err := uc.store.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: inserting entry: %w", domain.ErrStoreUnavailable, err)
	}

	uc.invalidateCreators(ctx)

	return entry, nil
}

// DeleteEntry removes an entry by id. Refreshing any dependent view is
// the caller's concern and its failure is reported separately from the
// delete itself.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	if err := uc.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.invalidateCreators(ctx)
	return nil
}

// UpdateDescription edits an entry's description in place. Description is
// the only mutable field and only the entry's author may change it. An
// empty description clears it.
func (uc *EntryUseCase) UpdateDescription(ctx context.Context, id, description, editorID string) error {
	if editorID == "" {
		return domain.ErrUnauthenticated
	}
	if err := domain.ValidateDescription(description); err != nil {
		return err
	}

	entry, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.CreatedBy != editorID {
		return domain.ErrNotAuthor
	}

	return uc.store.UpdateDescription(ctx, id, description)
}

// ListCreators returns the distinct authors that have at least one entry,
// served from cache when possible.
func (uc *EntryUseCase) ListCreators(ctx context.Context) ([]*domain.Creator, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, creatorsCacheKey); err == nil && len(data) > 0 {
			var creators []*domain.Creator
			if err := json.Unmarshal(data, &creators); err == nil {
				return creators, nil
			}
		}
	}

	creators, err := uc.store.ListCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing creators: %w", domain.ErrQueryFailed, err)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(creators); err == nil {
			_ = uc.cache.Set(ctx, creatorsCacheKey, data, creatorsCacheTTL)
		}
	}

	return creators, nil
}

func (uc *EntryUseCase) invalidateCreators(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, creatorsCacheKey)
	}
}
