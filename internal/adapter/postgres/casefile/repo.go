// Package casefile implements the CaseFile repository using PostgreSQL.
package casefile

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

// Repo provides case file persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new case file repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// selectColumns are the columns every read query scans, in scan order.
// created_by_name is computed from the users join; evidence_count sums
// physical and trace evidence, matching the submit precondition.
var selectColumns = []string{
	"cf.id",
	"cf.case_number",
	"cf.title",
	"cf.description",
	"cf.status_id",
	"cf.location",
	"cf.incident_date",
	"cf.created_by",
	"COALESCE(u.first_name || ' ' || u.last_name, '') AS created_by_name",
	"cf.reviewed_by",
	"cf.approved_at",
	"cf.rejection_reason",
	"(SELECT COUNT(*) FROM evidence e WHERE e.case_file_id = cf.id) +" +
		" (SELECT COUNT(*) FROM trace_evidence te WHERE te.case_file_id = cf.id) AS evidence_count",
	"cf.created_at",
	"cf.updated_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("case_files cf").
		LeftJoin("users u ON u.id = cf.created_by")
}

func scanCaseFile(row pgx.Row) (domain.CaseFile, error) {
	var cf domain.CaseFile
	err := row.Scan(
		&cf.ID,
		&cf.CaseNumber,
		&cf.Title,
		&cf.Description,
		&cf.Status,
		&cf.Location,
		&cf.IncidentDate,
		&cf.CreatedBy,
		&cf.CreatedByName,
		&cf.ReviewedBy,
		&cf.ApprovedAt,
		&cf.RejectionReason,
		&cf.EvidenceCount,
		&cf.CreatedAt,
		&cf.UpdatedAt,
	)
	return cf, err
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new case file.
func (r *Repo) Create(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("case_files").
		Columns(
			"id", "case_number", "title", "description", "status_id",
			"location", "incident_date", "created_by", "created_at", "updated_at",
		).
		Values(
			cf.ID, cf.CaseNumber, cf.Title, cf.Description, int(cf.Status),
			cf.Location, cf.IncidentDate, cf.CreatedBy, cf.CreatedAt, cf.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("build insert case_file: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.CaseFile{}, postgres.MapError(err, "case_file", cf.CaseNumber)
	}

	return r.GetByID(ctx, cf.ID)
}

// Update persists all mutable columns of a case file. The service layer loads
// the aggregate, applies changes, then calls Update; lifecycle transitions
// (submit, approve, reject) go through the same path.
func (r *Repo) Update(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("case_files").
		Set("title", cf.Title).
		Set("description", cf.Description).
		Set("status_id", int(cf.Status)).
		Set("location", cf.Location).
		Set("incident_date", cf.IncidentDate).
		Set("reviewed_by", cf.ReviewedBy).
		Set("approved_at", cf.ApprovedAt).
		Set("rejection_reason", cf.RejectionReason).
		Set("updated_at", cf.UpdatedAt).
		Where(squirrel.Eq{"id": cf.ID}).
		ToSql()
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("build update case_file: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return domain.CaseFile{}, postgres.MapError(err, "case_file", cf.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.CaseFile{}, fmt.Errorf("case_file %s: %w", cf.ID, domain.ErrNotFound)
	}

	return r.GetByID(ctx, cf.ID)
}

// Delete removes a case file. Child rows (evidence, participants, attachments,
// history) are removed by ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Delete("case_files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete case_file: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "case_file", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("case_file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a case file by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"cf.id": id}).ToSql()
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("build select case_file: %w", err)
	}

	cf, err := scanCaseFile(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.CaseFile{}, postgres.MapError(err, "case_file", id)
	}

	return cf, nil
}

// GetByCaseNumber returns a case file by its unique case number.
func (r *Repo) GetByCaseNumber(ctx context.Context, caseNumber string) (domain.CaseFile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"cf.case_number": caseNumber}).ToSql()
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("build select case_file: %w", err)
	}

	cf, err := scanCaseFile(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.CaseFile{}, postgres.MapError(err, "case_file", caseNumber)
	}

	return cf, nil
}

// List returns a page of case files matching the filter, ordered by
// created_at DESC, plus the total match count for pagination.
func (r *Repo) List(ctx context.Context, filter domain.CaseFileFilter) ([]domain.CaseFile, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := filterConditions(filter)

	countSQL, countArgs, err := postgres.Builder.
		Select("COUNT(*)").
		From("case_files cf").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count case_files: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count case_files: %w", err)
	}

	sql, args, err := selectBuilder().
		Where(where).
		OrderBy("cf.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list case_files: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list case_files: %w", err)
	}
	defer rows.Close()

	var items []domain.CaseFile
	for rows.Next() {
		cf, err := scanCaseFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan case_file: %w", err)
		}
		items = append(items, cf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate case_files: %w", err)
	}

	return items, total, nil
}

// Statistics returns aggregate counts by status. Draft and UnderReview
// together form the pending bucket.
func (r *Repo) Statistics(ctx context.Context) (domain.CaseFileStatistics, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := `SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status_id = $1),
	COUNT(*) FILTER (WHERE status_id = $2),
	COUNT(*) FILTER (WHERE status_id IN ($3, $4))
FROM case_files`

	var stats domain.CaseFileStatistics
	err := q.QueryRow(ctx, sql,
		int(domain.StatusApproved),
		int(domain.StatusRejected),
		int(domain.StatusDraft),
		int(domain.StatusUnderReview),
	).Scan(&stats.Total, &stats.Approved, &stats.Rejected, &stats.Pending)
	if err != nil {
		return domain.CaseFileStatistics{}, fmt.Errorf("case_file statistics: %w", err)
	}

	return stats, nil
}

// CountEvidence returns the combined number of evidence and trace evidence
// records attached to the case file.
func (r *Repo) CountEvidence(ctx context.Context, id uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := `SELECT
	(SELECT COUNT(*) FROM evidence WHERE case_file_id = $1) +
	(SELECT COUNT(*) FROM trace_evidence WHERE case_file_id = $1)`

	var count int
	if err := q.QueryRow(ctx, sql, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count evidence for case_file %s: %w", id, err)
	}

	return count, nil
}

// filterConditions builds the WHERE clause for List.
func filterConditions(filter domain.CaseFileFilter) squirrel.And {
	cond := squirrel.And{}
	if filter.Status != nil {
		cond = append(cond, squirrel.Eq{"cf.status_id": int(*filter.Status)})
	}
	if filter.CreatedBy != nil {
		cond = append(cond, squirrel.Eq{"cf.created_by": *filter.CreatedBy})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"cf.case_number": pattern},
			squirrel.ILike{"cf.title": pattern},
			squirrel.ILike{"cf.description": pattern},
		})
	}
	return cond
}
