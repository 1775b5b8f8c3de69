package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// MockEntryRepository is a mock implementation of EntryRepository. Every
// method can be overridden per test via its Func field; the defaults act
// on an in-memory map with date-descending ordering.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	GetAllFunc            func(ctx context.Context) ([]*domain.Entry, error)
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Entry, error)
	CountFunc             func(ctx context.Context, pred query.Predicate) (int, error)
	GetPageFunc           func(ctx context.Context, pred query.Predicate, limit, offset int) ([]*domain.Entry, error)
	InsertFunc            func(ctx context.Context, entry *domain.Entry) error
	DeleteByIDFunc        func(ctx context.Context, id string) error
	UpdateDescriptionFunc func(ctx context.Context, id, description string) error
	ListCreatorsFunc      func(ctx context.Context) ([]*domain.Creator, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

// Seed loads entries into the default in-memory state.
func (m *MockEntryRepository) Seed(entries ...*domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.entries[e.ID] = e
	}
}

func (m *MockEntryRepository) sorted(pred query.Predicate) []*domain.Entry {
	var out []*domain.Entry
	for _, e := range m.entries {
		if pred.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (m *MockEntryRepository) GetAll(ctx context.Context) ([]*domain.Entry, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(query.Predicate{}), nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) Count(ctx context.Context, pred query.Predicate) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, pred)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sorted(pred)), nil
}

func (m *MockEntryRepository) GetPage(ctx context.Context, pred query.Predicate, limit, offset int) ([]*domain.Entry, error) {
	if m.GetPageFunc != nil {
		return m.GetPageFunc(ctx, pred, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := m.sorted(pred)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MockEntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) DeleteByID(ctx context.Context, id string) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) UpdateDescription(ctx context.Context, id, description string) error {
	if m.UpdateDescriptionFunc != nil {
		return m.UpdateDescriptionFunc(ctx, id, description)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	e.Description = description
	return nil
}

func (m *MockEntryRepository) ListCreators(ctx context.Context) ([]*domain.Creator, error) {
	if m.ListCreatorsFunc != nil {
		return m.ListCreatorsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var creators []*domain.Creator
	for _, e := range m.sorted(query.Predicate{}) {
		if e.CreatedBy == "" || seen[e.CreatedBy] {
			continue
		}
		seen[e.CreatedBy] = true
		creators = append(creators, &domain.Creator{ID: e.CreatedBy, Label: e.CreatedBy})
	}
	return creators, nil
}

// MockIDGenerator is a mock implementation of IDGenerator. By default it
// generates sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("entry-%d", m.next)
}

// MockCache is a mock implementation of Cache backed by a map. TTLs are
// ignored.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
