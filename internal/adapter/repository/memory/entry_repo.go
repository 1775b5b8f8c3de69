package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// EntryRepository is an in-memory implementation of usecase.EntryRepository,
// used for development and tests. It is guarded by an RWMutex for
// concurrent reads and writes and keeps the same date-descending ordering
// contract as the PostgreSQL backend.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	labels  map[string]string
}

// NewEntryRepository constructs an empty in-memory store.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		entries: make(map[string]*domain.Entry),
		labels:  make(map[string]string),
	}
}

// SeedCreatorLabel registers a display label for a creator id, standing in
// for the users table of the PostgreSQL backend.
func (r *EntryRepository) SeedCreatorLabel(id, label string) {
	r.mu.Lock()
	r.labels[id] = label
	r.mu.Unlock()
}

func (r *EntryRepository) matched(pred query.Predicate) []*domain.Entry {
	var out []*domain.Entry
	for _, e := range r.entries {
		if pred.Matches(e) {
			out = append(out, e)
		}
	}
	// Newest first; ties broken by ID for a stable order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// GetAll implements usecase.EntryRepository.
func (r *EntryRepository) GetAll(_ context.Context) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matched(query.Predicate{}), nil
}

// GetByID implements usecase.EntryRepository.
func (r *EntryRepository) GetByID(_ context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

// Count implements usecase.EntryRepository.
func (r *EntryRepository) Count(_ context.Context, pred query.Predicate) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matched(pred)), nil
}

// GetPage implements usecase.EntryRepository.
func (r *EntryRepository) GetPage(_ context.Context, pred query.Predicate, limit, offset int) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matched(pred)
	if offset < 0 || offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*domain.Entry, 0, end-offset)
	for _, e := range matched[offset:end] {
		copied := *e
		page = append(page, &copied)
	}
	return page, nil
}

// Insert implements usecase.EntryRepository.
func (r *EntryRepository) Insert(_ context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

// DeleteByID implements usecase.EntryRepository.
func (r *EntryRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

// UpdateDescription implements usecase.EntryRepository.
func (r *EntryRepository) UpdateDescription(_ context.Context, id, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	e.Description = description
	return nil
}

// ListCreators implements usecase.EntryRepository.
func (r *EntryRepository) ListCreators(_ context.Context) ([]*domain.Creator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var creators []*domain.Creator
	for _, e := range r.entries {
		if e.CreatedBy == "" || seen[e.CreatedBy] {
			continue
		}
		seen[e.CreatedBy] = true
		label := r.labels[e.CreatedBy]
		if label == "" {
			label = e.CreatedBy
		}
		creators = append(creators, &domain.Creator{ID: e.CreatedBy, Label: label})
	}

	sort.Slice(creators, func(i, j int) bool { return creators[i].Label < creators[j].Label })
	return creators, nil
}
