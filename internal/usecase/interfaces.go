package usecase

import (
	"context"
	"time"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// EntryRepository defines data access for entries. Both the postgres and
// the in-memory backends implement it; the engine never depends on a
// concrete store. Count and GetPage take the same predicate so the
// filtered total is computed from the same constraints as the page.
type EntryRepository interface {
	GetAll(ctx context.Context) ([]*domain.Entry, error)
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	Count(ctx context.Context, pred query.Predicate) (int, error)
	GetPage(ctx context.Context, pred query.Predicate, limit, offset int) ([]*domain.Entry, error)
	Insert(ctx context.Context, entry *domain.Entry) error
	DeleteByID(ctx context.Context, id string) error
	UpdateDescription(ctx context.Context, id, description string) error
	ListCreators(ctx context.Context) ([]*domain.Creator, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
