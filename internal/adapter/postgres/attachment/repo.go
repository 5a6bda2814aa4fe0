// Package attachment implements the attachment metadata repository using PostgreSQL.
// Physical files live on disk; rows are soft-deleted so the upload trail survives.
package attachment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/casetrace/casetrace-backend/internal/adapter/postgres"
	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Repo provides attachment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attachment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"a.id",
	"a.case_file_id",
	"a.file_name",
	"a.file_path",
	"a.file_size",
	"a.mime_type",
	"a.uploaded_by",
	"COALESCE(u.first_name || ' ' || u.last_name, '') AS uploaded_by_name",
	"a.uploaded_at",
	"a.is_deleted",
	"a.deleted_by",
	"a.deleted_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("attachments a").
		LeftJoin("users u ON u.id = a.uploaded_by")
}

func scanAttachment(row pgx.Row) (domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(
		&a.ID,
		&a.CaseFileID,
		&a.FileName,
		&a.FilePath,
		&a.FileSize,
		&a.MimeType,
		&a.UploadedBy,
		&a.UploadedByName,
		&a.UploadedAt,
		&a.IsDeleted,
		&a.DeletedBy,
		&a.DeletedAt,
	)
	return a, err
}

// Create inserts a new attachment row.
func (r *Repo) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("attachments").
		Columns(
			"id", "case_file_id", "file_name", "file_path", "file_size",
			"mime_type", "uploaded_by", "uploaded_at",
		).
		Values(
			a.ID, a.CaseFileID, a.FileName, a.FilePath, a.FileSize,
			a.MimeType, a.UploadedBy, a.UploadedAt,
		).
		ToSql()
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build insert attachment: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.Attachment{}, postgres.MapError(err, "attachment", a.ID)
	}

	return r.GetByID(ctx, a.ID)
}

// GetByID returns an attachment by primary key, including soft-deleted rows.
// Callers that must not see deleted attachments check IsDeleted themselves.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build select attachment: %w", err)
	}

	a, err := scanAttachment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Attachment{}, postgres.MapError(err, "attachment", id)
	}

	return a, nil
}

// ListByCaseFile returns non-deleted attachments of a case file, newest first.
func (r *Repo) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"a.case_file_id": caseFileID, "a.is_deleted": false}).
		OrderBy("a.uploaded_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list attachments: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var items []domain.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}

	return items, nil
}

// SoftDelete marks an attachment as deleted. Already-deleted rows report
// ErrNotFound so a double delete surfaces as a missing attachment.
func (r *Repo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("attachments").
		Set("is_deleted", true).
		Set("deleted_by", deletedBy).
		Set("deleted_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete attachment: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "attachment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
