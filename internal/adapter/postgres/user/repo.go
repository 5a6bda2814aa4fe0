// Package user implements the User repository using PostgreSQL.
package user

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

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var selectColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"role_id", "is_active", "created_at", "updated_at",
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create inserts a new user.
func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("users").
		Columns(
			"id", "username", "email", "password_hash", "first_name",
			"last_name", "role_id", "is_active", "created_at", "updated_at",
		).
		Values(
			u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName,
			u.LastName, int(u.Role), u.IsActive, u.CreatedAt, u.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build insert user: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.Email)
	}

	return u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by email. Emails are stored lowercase.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email), email)
}

func (r *Repo) getBy(ctx context.Context, cond squirrel.Sqlizer, key any) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(selectColumns...).
		From("users").
		Where(cond).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build select user: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", key)
	}

	return u, nil
}

// List returns all users ordered by last name, first name.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(selectColumns...).
		From("users").
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return items, nil
}

// Update persists the mutable columns of a user.
func (r *Repo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("role_id", int(u.Role)).
		Set("is_active", u.IsActive).
		Set("updated_at", u.UpdatedAt).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build update user: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}

	return u, nil
}
