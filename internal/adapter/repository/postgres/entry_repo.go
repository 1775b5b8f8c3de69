package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
)

const entryColumns = "id, type, amount, date, description, method, created_by, created_at"

// entryOrder totally orders entries. The id tiebreak keeps LIMIT/OFFSET
// pages disjoint when several entries share a date, matching the
// in-memory backend's ordering contract.
const entryOrder = "ORDER BY date DESC, id DESC"

// EntryRepository implements usecase.EntryRepository on PostgreSQL.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// buildWhere renders the predicate as a WHERE clause. The same clause
// backs both Count and GetPage so the filtered total always matches the
// constraints that produced the page.
func buildWhere(pred query.Predicate) (string, []any) {
	var conds []string
	var args []any

	if !pred.Range.IsZero() {
		args = append(args, timeToPgTimestamptz(pred.Range.From))
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
		args = append(args, timeToPgTimestamptz(pred.Range.To))
		conds = append(conds, fmt.Sprintf("date < $%d", len(args)))
	}
	if pred.Method != "" {
		args = append(args, string(pred.Method))
		conds = append(conds, fmt.Sprintf("method = $%d", len(args)))
	}
	if pred.Type != "" {
		args = append(args, string(pred.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if pred.CreatedBy != "" {
		args = append(args, pred.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// GetAll retrieves every entry, newest first.
func (r *EntryRepository) GetAll(ctx context.Context) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+entryColumns+" FROM entries "+entryOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByID retrieves a single entry.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = $1", id)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Count returns the filter-qualified entry count.
func (r *EntryRepository) Count(ctx context.Context, pred query.Predicate) (int, error) {
	where, args := buildWhere(pred)

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM entries"+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetPage retrieves one date-descending page of filtered entries.
func (r *EntryRepository) GetPage(ctx context.Context, pred query.Predicate, limit, offset int) ([]*domain.Entry, error) {
	where, args := buildWhere(pred)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, pageSQL(where, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// pageSQL renders the page query around a WHERE clause. nArgs counts
// every positional argument including the trailing limit and offset.
func pageSQL(where string, nArgs int) string {
	return fmt.Sprintf("SELECT %s FROM entries%s %s LIMIT $%d OFFSET $%d",
		entryColumns, where, entryOrder, nArgs-1, nArgs)
}

// Insert persists a new entry.
func (r *EntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO entries (id, type, amount, date, description, method, created_by, created_at)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
			entry.ID,
			string(entry.Type),
			decimalToNumeric(entry.Amount),
			timeToPgTimestamptz(entry.Date),
			entry.Description,
			string(entry.Method),
			entry.CreatedBy,
			timeToPgTimestamptz(entry.CreatedAt),
		)
		return err
	})
}

// DeleteByID removes an entry.
func (r *EntryRepository) DeleteByID(ctx context.Context, id string) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, "DELETE FROM entries WHERE id = $1", id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}
		return nil
	})
}

// UpdateDescription replaces the description in place. An empty string
// clears it.
func (r *EntryRepository) UpdateDescription(ctx context.Context, id, description string) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			"UPDATE entries SET description = NULLIF($2, '') WHERE id = $1", id, description)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}
		return nil
	})
}

// ListCreators returns the distinct authors with at least one entry,
// labelled by email when the user is known.
func (r *EntryRepository) ListCreators(ctx context.Context) ([]*domain.Creator, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT e.created_by, COALESCE(u.email, e.created_by)
		 FROM entries e
		 LEFT JOIN users u ON u.id = e.created_by
		 ORDER BY 2`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creators []*domain.Creator
	for rows.Next() {
		c := &domain.Creator{}
		if err := rows.Scan(&c.ID, &c.Label); err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}
	return creators, rows.Err()
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry       domain.Entry
		entryType   string
		method      string
		amount      pgtype.Numeric
		date        pgtype.Timestamptz
		description pgtype.Text
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(&entry.ID, &entryType, &amount, &date, &description, &method, &entry.CreatedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Method = domain.PaymentMethod(method)
	entry.Amount = numericToDecimal(amount)
	entry.Date = date.Time
	entry.Description = description.String
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
