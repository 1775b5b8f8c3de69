package usecase

import (
	"context"
	"fmt"

	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/export"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

// ExportUseCase serializes the currently filtered entry set to CSV.
type ExportUseCase struct {
	store EntryRepository
	clock *clock.Clock
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(store EntryRepository, c *clock.Clock) *ExportUseCase {
	return &ExportUseCase{store: store, clock: c}
}

// ExportCSV fetches every entry matching the filter, newest first and
// unpaginated, and serializes it. Zero matches surface as
// domain.ErrEmptyExport, never as a header-only document.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, filter query.FilterState) (string, error) {
	pred, err := filter.Predicate(uc.clock)
	if err != nil {
		return "", err
	}

	total, err := uc.store.Count(ctx, pred)
	if err != nil {
		return "", fmt.Errorf("%w: counting entries: %w", domain.ErrQueryFailed, err)
	}
	if total == 0 {
		return "", domain.ErrEmptyExport
	}

	entries, err := uc.store.GetPage(ctx, pred, total, 0)
	if err != nil {
		return "", fmt.Errorf("%w: fetching entries: %w", domain.ErrQueryFailed, err)
	}

	return export.SerializeCSV(entries, uc.clock.Location())
}

// Filename returns the export file name for the current day, matching
// the caja-verduleria-YYYY-MM-DD.csv convention.
func (uc *ExportUseCase) Filename() string {
	return fmt.Sprintf("caja-verduleria-%s.csv", uc.clock.DateKey(uc.clock.Now()))
}
