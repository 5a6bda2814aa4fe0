package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

var (
	_ userRepo   = &userRepoMock{}
	_ tokenRepo  = &tokenRepoMock{}
	_ jwtManager = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

type tokenRepoMock struct {
	CreateFunc           func(ctx context.Context, token domain.RefreshToken) error
	GetByHashFunc        func(ctx context.Context, tokenHash string) (domain.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID, at time.Time) error
	DeleteExpiredFunc    func(ctx context.Context, cutoff time.Time) (int64, error)

	created []domain.RefreshToken
	revoked []uuid.UUID
}

func (m *tokenRepoMock) Create(ctx context.Context, token domain.RefreshToken) error {
	m.created = append(m.created, token)
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (domain.RefreshToken, error) {
	if m.GetByHashFunc == nil {
		panic("tokenRepoMock.GetByHashFunc: method is nil but tokenRepo.GetByHash was just called")
	}
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.revoked = append(m.revoked, id)
	if m.RevokeFunc == nil {
		return nil
	}
	return m.RevokeFunc(ctx, id, at)
}

func (m *tokenRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if m.RevokeAllForUserFunc == nil {
		return nil
	}
	return m.RevokeAllForUserFunc(ctx, userID, at)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredFunc == nil {
		return 0, nil
	}
	return m.DeleteExpiredFunc(ctx, cutoff)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID, role domain.Role) (string, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		return "access-token", nil
	}
	return m.GenerateAccessTokenFunc(userID, role)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	if m.GenerateRefreshTokenFunc == nil {
		return "raw-refresh", "hash-refresh", nil
	}
	return m.GenerateRefreshTokenFunc()
}
