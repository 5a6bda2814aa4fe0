// Package evidence implements the Evidence repository using PostgreSQL.
package evidence

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

// Repo provides evidence persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new evidence repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"e.id",
	"e.case_file_id",
	"e.evidence_type_id",
	"COALESCE(et.name, '') AS evidence_type_name",
	"e.description",
	"e.location",
	"e.collected_by",
	"COALESCE(u.first_name || ' ' || u.last_name, '') AS collected_by_name",
	"e.collection_date",
	"e.created_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("evidence e").
		LeftJoin("evidence_types et ON et.id = e.evidence_type_id").
		LeftJoin("users u ON u.id = e.collected_by")
}

func scanEvidence(row pgx.Row) (domain.Evidence, error) {
	var ev domain.Evidence
	err := row.Scan(
		&ev.ID,
		&ev.CaseFileID,
		&ev.EvidenceTypeID,
		&ev.EvidenceTypeName,
		&ev.Description,
		&ev.Location,
		&ev.CollectedBy,
		&ev.CollectedByName,
		&ev.CollectionDate,
		&ev.CreatedAt,
	)
	return ev, err
}

// Create inserts a new evidence item.
func (r *Repo) Create(ctx context.Context, ev domain.Evidence) (domain.Evidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("evidence").
		Columns(
			"id", "case_file_id", "evidence_type_id", "description",
			"location", "collected_by", "collection_date", "created_at",
		).
		Values(
			ev.ID, ev.CaseFileID, ev.EvidenceTypeID, ev.Description,
			ev.Location, ev.CollectedBy, ev.CollectionDate, ev.CreatedAt,
		).
		ToSql()
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("build insert evidence: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.Evidence{}, postgres.MapError(err, "evidence", ev.ID)
	}

	return r.GetByID(ctx, ev.ID)
}

// GetByID returns an evidence item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Evidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("build select evidence: %w", err)
	}

	ev, err := scanEvidence(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Evidence{}, postgres.MapError(err, "evidence", id)
	}

	return ev, nil
}

// ListByCaseFile returns all evidence for a case file, ordered by
// collection_date then created_at.
func (r *Repo) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"e.case_file_id": caseFileID}).
		OrderBy("e.collection_date ASC", "e.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list evidence: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var items []domain.Evidence
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}

	return items, nil
}
