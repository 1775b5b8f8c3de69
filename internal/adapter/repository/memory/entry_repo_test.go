package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

var testZone = time.FixedZone("-03", -3*60*60)

func seed(t *testing.T, repo *EntryRepository, entries ...*domain.Entry) {
	t.Helper()
	for _, e := range entries {
		if err := repo.Insert(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestInsertAndGetByID(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	e := &domain.Entry{ID: "e1", Type: domain.EntryTypeIncome, Amount: decimal.NewFromInt(10), CreatedBy: "u1"}
	seed(t, repo, e)

	got, err := repo.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "e1" {
		t.Errorf("got ID %q", got.ID)
	}

	// Mutating the returned copy must not leak into the store.
	got.Description = "tampered"
	again, _ := repo.GetByID(ctx, "e1")
	if again.Description == "tampered" {
		t.Error("GetByID should return a copy")
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestGetPageOrderingAndBounds(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 10, 0, 0, 0, testZone)

	seed(t, repo,
		&domain.Entry{ID: "old", Date: base.Add(-2 * time.Hour), CreatedBy: "u1"},
		&domain.Entry{ID: "new", Date: base, CreatedBy: "u1"},
		&domain.Entry{ID: "mid", Date: base.Add(-time.Hour), CreatedBy: "u1"},
	)

	page, err := repo.GetPage(ctx, query.Predicate{}, 2, 0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != "new" || page[1].ID != "mid" {
		t.Fatalf("page = %+v, want new, mid", page)
	}

	rest, err := repo.GetPage(ctx, query.Predicate{}, 2, 2)
	if err != nil {
		t.Fatalf("GetPage offset: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "old" {
		t.Fatalf("rest = %+v, want old", rest)
	}

	beyond, err := repo.GetPage(ctx, query.Predicate{}, 2, 10)
	if err != nil {
		t.Fatalf("GetPage beyond: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("offset past the end should be empty, got %d entries", len(beyond))
	}
}

func TestCountAndPageAgree(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 10, 0, 0, 0, testZone)

	seed(t, repo,
		&domain.Entry{ID: "e1", Date: base, Method: domain.MethodCash, CreatedBy: "u1"},
		&domain.Entry{ID: "e2", Date: base, Method: domain.MethodTransfer, CreatedBy: "u1"},
		&domain.Entry{ID: "e3", Date: base, Method: domain.MethodCash, CreatedBy: "u2"},
	)

	pred := query.Predicate{Method: domain.MethodCash}
	count, err := repo.Count(ctx, pred)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	page, err := repo.GetPage(ctx, pred, 100, 0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if count != len(page) {
		t.Fatalf("count %d != page size %d for the same predicate", count, len(page))
	}
}

func TestDeleteByID(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	seed(t, repo, &domain.Entry{ID: "e1", CreatedBy: "u1"})

	if err := repo.DeleteByID(ctx, "e1"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := repo.DeleteByID(ctx, "e1"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestUpdateDescription(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	seed(t, repo, &domain.Entry{ID: "e1", Description: "old", CreatedBy: "u1"})

	if err := repo.UpdateDescription(ctx, "e1", "new"); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}
	e, _ := repo.GetByID(ctx, "e1")
	if e.Description != "new" {
		t.Errorf("description = %q", e.Description)
	}

	if err := repo.UpdateDescription(ctx, "missing", "x"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestListCreators(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	repo.SeedCreatorLabel("u1", "ana@example.com")
	seed(t, repo,
		&domain.Entry{ID: "e1", CreatedBy: "u1"},
		&domain.Entry{ID: "e2", CreatedBy: "u1"},
		&domain.Entry{ID: "e3", CreatedBy: "u2"},
	)

	creators, err := repo.ListCreators(ctx)
	if err != nil {
		t.Fatalf("ListCreators: %v", err)
	}
	if len(creators) != 2 {
		t.Fatalf("expected 2 creators, got %d", len(creators))
	}
	// Sorted by label: ana@example.com before the raw u2 id.
	if creators[0].ID != "u1" || creators[0].Label != "ana@example.com" {
		t.Errorf("creator 0 = %+v", creators[0])
	}
	if creators[1].ID != "u2" || creators[1].Label != "u2" {
		t.Errorf("creator 1 = %+v", creators[1])
	}
}
