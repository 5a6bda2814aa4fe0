// Package participant implements the case participant repository using PostgreSQL.
package participant

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

// Repo provides case participant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new participant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"p.id",
	"p.case_file_id",
	"p.user_id",
	"u.username",
	"u.first_name",
	"u.last_name",
	"u.email",
	"u.role_id",
	"p.participant_role",
	"p.added_by",
	"p.assigned_at",
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(selectColumns...).
		From("case_participants p").
		Join("users u ON u.id = p.user_id")
}

func scanParticipant(row pgx.Row) (domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(
		&p.ID,
		&p.CaseFileID,
		&p.UserID,
		&p.Username,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Role,
		&p.ParticipantRole,
		&p.AddedBy,
		&p.AssignedAt,
	)
	return p, err
}

// Add inserts a participant. A user can appear at most once per case file.
func (r *Repo) Add(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("case_participants").
		Columns("id", "case_file_id", "user_id", "participant_role", "added_by", "assigned_at").
		Values(p.ID, p.CaseFileID, p.UserID, p.ParticipantRole, p.AddedBy, p.AssignedAt).
		ToSql()
	if err != nil {
		return domain.Participant{}, fmt.Errorf("build insert participant: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.Participant{}, postgres.MapError(err, "participant", p.UserID)
	}

	return r.getByID(ctx, p.ID)
}

// Remove deletes the association between a user and a case file.
func (r *Repo) Remove(ctx context.Context, caseFileID, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Delete("case_participants").
		Where(squirrel.Eq{"case_file_id": caseFileID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete participant: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "participant", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// ListByCaseFile returns all participants of a case file, ordered by
// assignment time.
func (r *Repo) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Participant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"p.case_file_id": caseFileID}).
		OrderBy("p.assigned_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list participants: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var items []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return items, nil
}

func (r *Repo) getByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := selectBuilder().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return domain.Participant{}, fmt.Errorf("build select participant: %w", err)
	}

	p, err := scanParticipant(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Participant{}, postgres.MapError(err, "participant", id)
	}

	return p, nil
}
