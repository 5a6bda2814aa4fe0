// Package history implements the case file history repository using PostgreSQL.
// It provides append-only operations; entries are never updated or deleted.
package history

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/casetrace/casetrace-backend/internal/adapter/postgres"
	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Repo provides case file history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"h.id",
	"h.case_file_id",
	"h.changed_by",
	"u.username",
	"COALESCE(u.first_name || ' ' || u.last_name, '') AS changed_by_name",
	"h.change_type",
	"h.old_value",
	"h.new_value",
	"h.comments",
	"h.changed_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("case_file_history h").
		LeftJoin("users u ON u.id = h.changed_by")
}

func scanEntry(row pgx.Row) (domain.HistoryEntry, error) {
	var e domain.HistoryEntry
	err := row.Scan(
		&e.ID,
		&e.CaseFileID,
		&e.ChangedBy,
		&e.ChangedByUsername,
		&e.ChangedByName,
		&e.ChangeType,
		&e.OldValue,
		&e.NewValue,
		&e.Comments,
		&e.ChangedAt,
	)
	return e, err
}

// Append inserts a new history entry.
func (r *Repo) Append(ctx context.Context, entry domain.HistoryEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("case_file_history").
		Columns(
			"id", "case_file_id", "changed_by", "change_type",
			"old_value", "new_value", "comments", "changed_at",
		).
		Values(
			entry.ID, entry.CaseFileID, entry.ChangedBy, string(entry.ChangeType),
			entry.OldValue, entry.NewValue, entry.Comments, entry.ChangedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert history entry: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "history_entry", entry.ID)
	}

	return nil
}

// ListByCaseFile returns the full history of a case file in chronological
// order (oldest first).
func (r *Repo) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"h.case_file_id": caseFileID}).
		OrderBy("h.changed_at ASC", "h.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var items []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return items, nil
}
