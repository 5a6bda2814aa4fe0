// Package catalog implements read access to the fixed lookup tables
// (roles, case statuses, evidence types). Rows are seeded by migrations.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/casetrace/casetrace-backend/internal/adapter/postgres"
	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Repo provides catalog reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListRoles returns the role catalog.
func (r *Repo) ListRoles(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "roles")
}

// ListCaseStatuses returns the case file status catalog.
func (r *Repo) ListCaseStatuses(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "case_statuses")
}

// ListEvidenceTypes returns the evidence type catalog.
func (r *Repo) ListEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "evidence_types")
}

// ListTraceEvidenceTypes returns the trace evidence type catalog.
func (r *Repo) ListTraceEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "trace_evidence_types")
}

// EvidenceTypeExists reports whether an evidence type ID is in the catalog.
func (r *Repo) EvidenceTypeExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, "evidence_types", id)
}

// TraceEvidenceTypeExists reports whether a trace evidence type ID is in the catalog.
func (r *Repo) TraceEvidenceTypeExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, "trace_evidence_types", id)
}

// list reads a whole catalog table. The table name is always one of the
// fixed constants above, never caller input.
func (r *Repo) list(ctx context.Context, table string) ([]domain.CatalogItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id", "name", "description").
		From(table).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", table, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return items, nil
}

func (r *Repo) exists(ctx context.Context, table string, id int) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table), id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", table, id, err)
	}

	return exists, nil
}
