package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

func TestBuildWhere(t *testing.T) {
	from := time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	r, err := domain.NewDateRange(from, to)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}

	tests := []struct {
		name     string
		pred     query.Predicate
		want     string
		wantArgs int
	}{
		{
			name: "unconstrained",
		},
		{
			name:     "method only",
			pred:     query.Predicate{Method: domain.MethodCash},
			want:     " WHERE method = $1",
			wantArgs: 1,
		},
		{
			name:     "range and type",
			pred:     query.Predicate{Range: r, Type: domain.EntryTypeIncome},
			want:     " WHERE date >= $1 AND date < $2 AND type = $3",
			wantArgs: 3,
		},
		{
			name: "all dimensions",
			pred: query.Predicate{
				Range:     r,
				Method:    domain.MethodTransfer,
				Type:      domain.EntryTypeExpense,
				CreatedBy: "user-1",
			},
			want:     " WHERE date >= $1 AND date < $2 AND method = $3 AND type = $4 AND created_by = $5",
			wantArgs: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildWhere(tt.pred)
			if where != tt.want {
				t.Errorf("where = %q, want %q", where, tt.want)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

// Entries sharing a date need a total order or LIMIT/OFFSET pages can
// duplicate or skip rows.
func TestPageSQLOrdersWithIDTiebreak(t *testing.T) {
	sql := pageSQL(" WHERE method = $1", 3)

	if !strings.Contains(sql, "ORDER BY date DESC, id DESC") {
		t.Fatalf("page query lacks a deterministic tiebreak: %s", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT $2 OFFSET $3") {
		t.Fatalf("limit and offset placeholders misnumbered: %s", sql)
	}

	unfiltered := pageSQL("", 2)
	if !strings.Contains(unfiltered, "FROM entries ORDER BY date DESC, id DESC") {
		t.Fatalf("unfiltered page query malformed: %s", unfiltered)
	}
}
