package query

import (
	"github.com/RenzoCostarelli/verduapp/internal/domain"
)

// Predicate is the concrete constraint set issued to the entry store.
// Zero-valued dimensions are unconstrained. The same predicate is used
// for both the count query and the page query so the filtered total is
// always consistent with the page contents.
type Predicate struct {
	Range     domain.DateRange
	Method    domain.PaymentMethod
	Type      domain.EntryType
	CreatedBy string
}

// Matches reports whether an entry satisfies every constrained dimension.
// The date bound is half-open: From <= entry.Date < To.
func (p Predicate) Matches(e *domain.Entry) bool {
	if !p.Range.IsZero() && !p.Range.Contains(e.Date) {
		return false
	}
	if p.Method != "" && e.Method != p.Method {
		return false
	}
	if p.Type != "" && e.Type != p.Type {
		return false
	}
	if p.CreatedBy != "" && e.CreatedBy != p.CreatedBy {
		return false
	}
	return true
}
