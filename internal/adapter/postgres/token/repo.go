// Package token implements the refresh token repository using PostgreSQL.
// Tokens are stored as SHA-256 hashes; the raw token never touches the database.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/casetrace/casetrace-backend/internal/adapter/postgres"
	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Repo provides refresh token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new refresh token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new refresh token row.
func (r *Repo) Create(ctx context.Context, t domain.RefreshToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("refresh_tokens").
		Columns("id", "user_id", "token_hash", "expires_at", "created_at").
		Values(t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert refresh_token: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "refresh_token", t.ID)
	}

	return nil
}

// GetByHash returns a refresh token by its hash, including revoked and
// expired rows; validity checks belong to the service layer.
func (r *Repo) GetByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token_hash": hash}).
		ToSql()
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("build select refresh_token: %w", err)
	}

	var t domain.RefreshToken
	err = q.QueryRow(ctx, sql, args...).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, postgres.MapError(err, "refresh_token", "by-hash")
	}

	return t, nil
}

// Revoke marks a single token as revoked. Revoking an already revoked token
// reports ErrNotFound.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("refresh_tokens").
		Set("revoked_at", at).
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke refresh_token: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh_token %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// RevokeAllForUser marks every active token of a user as revoked.
// Used on logout and on account deactivation.
func (r *Repo) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("refresh_tokens").
		Set("revoked_at", at).
		Where(squirrel.Eq{"user_id": userID, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke refresh_tokens: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "refresh_token", userID)
	}

	return nil
}

// DeleteExpired removes tokens that expired before the cutoff. Returns the
// number of rows removed.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired refresh_tokens: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh_tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
