package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Create registers a new user account with a bcrypt password hash.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.User{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// Get returns a single user account.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.User{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List returns all user accounts ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update changes name, role, or active state of an account. Deactivating a
// user also revokes all of their refresh tokens so the account locks out at
// the next token refresh.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (domain.User, error) {
	actorID, err := requireAdmin(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.User{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	// An admin cannot strip their own admin role or deactivate themselves.
	if id == actorID {
		if input.Role != nil && *input.Role != u.Role {
			return domain.User{}, fmt.Errorf("change own role: %w", domain.ErrForbidden)
		}
		if input.IsActive != nil && !*input.IsActive {
			return domain.User{}, fmt.Errorf("deactivate own account: %w", domain.ErrForbidden)
		}
	}

	deactivated := false
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.IsActive != nil {
		deactivated = u.IsActive && !*input.IsActive
		u.IsActive = *input.IsActive
	}

	now := s.now().UTC()
	u.UpdatedAt = now

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	if deactivated {
		if err := s.tokens.RevokeAllForUser(ctx, id, now); err != nil {
			return domain.User{}, fmt.Errorf("revoke tokens: %w", err)
		}
		s.log.InfoContext(ctx, "user deactivated, tokens revoked",
			slog.String("user_id", id.String()))
	}

	s.log.InfoContext(ctx, "user updated",
		slog.String("user_id", updated.ID.String()),
		slog.String("updated_by", actorID.String()),
	)
	return updated, nil
}

// Deactivate disables an account and revokes its refresh tokens.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := s.Update(ctx, id, UpdateInput{IsActive: &inactive})
	return err
}
