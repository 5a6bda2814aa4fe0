// Package traceevidence implements the TraceEvidence repository using PostgreSQL.
package traceevidence

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

// Repo provides trace evidence persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new trace evidence repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"te.id",
	"te.case_file_id",
	"cf.case_number",
	"te.evidence_number",
	"te.type_id",
	"COALESCE(tt.name, '') AS type_name",
	"te.description",
	"te.color",
	"te.size",
	"te.weight",
	"te.location",
	"te.storage_location",
	"te.collected_by",
	"COALESCE(u.first_name || ' ' || u.last_name, '') AS collected_by_name",
	"te.collected_at",
	"te.created_at",
	"te.updated_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("trace_evidence te").
		Join("case_files cf ON cf.id = te.case_file_id").
		LeftJoin("trace_evidence_types tt ON tt.id = te.type_id").
		LeftJoin("users u ON u.id = te.collected_by")
}

func scanTraceEvidence(row pgx.Row) (domain.TraceEvidence, error) {
	var te domain.TraceEvidence
	err := row.Scan(
		&te.ID,
		&te.CaseFileID,
		&te.CaseNumber,
		&te.EvidenceNumber,
		&te.TypeID,
		&te.TypeName,
		&te.Description,
		&te.Color,
		&te.Size,
		&te.Weight,
		&te.Location,
		&te.StorageLocation,
		&te.CollectedBy,
		&te.CollectedByName,
		&te.CollectedAt,
		&te.CreatedAt,
		&te.UpdatedAt,
	)
	return te, err
}

// Create inserts a new trace evidence item.
func (r *Repo) Create(ctx context.Context, te domain.TraceEvidence) (domain.TraceEvidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("trace_evidence").
		Columns(
			"id", "case_file_id", "evidence_number", "type_id", "description",
			"color", "size", "weight", "location", "storage_location",
			"collected_by", "collected_at", "created_at", "updated_at",
		).
		Values(
			te.ID, te.CaseFileID, te.EvidenceNumber, te.TypeID, te.Description,
			te.Color, te.Size, te.Weight, te.Location, te.StorageLocation,
			te.CollectedBy, te.CollectedAt, te.CreatedAt, te.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.TraceEvidence{}, fmt.Errorf("build insert trace_evidence: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.TraceEvidence{}, postgres.MapError(err, "trace_evidence", te.EvidenceNumber)
	}

	return r.GetByID(ctx, te.ID)
}

// GetByID returns a trace evidence item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"te.id": id}).ToSql()
	if err != nil {
		return domain.TraceEvidence{}, fmt.Errorf("build select trace_evidence: %w", err)
	}

	te, err := scanTraceEvidence(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.TraceEvidence{}, postgres.MapError(err, "trace_evidence", id)
	}

	return te, nil
}

// ListByCaseFile returns all trace evidence for a case file, ordered by
// evidence_number.
func (r *Repo) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"te.case_file_id": caseFileID}).
		OrderBy("te.evidence_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list trace_evidence: %w", err)
	}

	return r.queryMany(ctx, q, sql, args)
}

// List returns a page of trace evidence across all case files, ordered by
// created_at DESC, plus the total match count.
func (r *Repo) List(ctx context.Context, filter domain.TraceEvidenceFilter) ([]domain.TraceEvidence, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := squirrel.And{}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"te.evidence_number": pattern},
			squirrel.ILike{"te.description": pattern},
			squirrel.ILike{"cf.case_number": pattern},
		})
	}

	countSQL, countArgs, err := postgres.Builder.
		Select("COUNT(*)").
		From("trace_evidence te").
		Join("case_files cf ON cf.id = te.case_file_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count trace_evidence: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trace_evidence: %w", err)
	}

	sql, args, err := selectBuilder().
		Where(where).
		OrderBy("te.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list trace_evidence: %w", err)
	}

	items, err := r.queryMany(ctx, q, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repo) queryMany(ctx context.Context, q postgres.Querier, sql string, args []any) ([]domain.TraceEvidence, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list trace_evidence: %w", err)
	}
	defer rows.Close()

	var items []domain.TraceEvidence
	for rows.Next() {
		te, err := scanTraceEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trace_evidence: %w", err)
		}
		items = append(items, te)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace_evidence: %w", err)
	}

	return items, nil
}
