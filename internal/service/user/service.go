// Package user implements user administration: creating accounts, changing
// roles, and deactivation. All operations require the Admin role.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/config"
	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
}

type tokenRepo interface {
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// Service implements user administration operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
	cfg    config.AuthConfig
	now    func() time.Time
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		now:    time.Now,
	}
}

// requireAdmin extracts the actor and checks the user management capability.
func requireAdmin(ctx context.Context) (uuid.UUID, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if !role.Can(domain.CapManageUsers) {
		return uuid.Nil, fmt.Errorf("manage users: %w", domain.ErrForbidden)
	}
	return actorID, nil
}
