package user

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/casetrace/casetrace-backend/internal/config"
	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, u domain.User) (domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	ListFunc       func(ctx context.Context) ([]domain.User, error)
	UpdateFunc     func(ctx context.Context, u domain.User) (domain.User, error)

	created []domain.User
	updated []domain.User
}

var _ userRepo = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, u domain.User) (domain.User, error) {
	m.created = append(m.created, u)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return u, nil
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *userRepoMock) Update(ctx context.Context, u domain.User) (domain.User, error) {
	m.updated = append(m.updated, u)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return u, nil
}

type tokenRepoMock struct {
	revoked []uuid.UUID
}

var _ tokenRepo = (*tokenRepoMock)(nil)

func (m *tokenRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	m.revoked = append(m.revoked, userID)
	return nil
}

func newTestService(users *userRepoMock, tokens *tokenRepoMock) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, users, tokens, config.AuthConfig{PasswordHashCost: bcrypt.MinCost})
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func adminCtx() (context.Context, uuid.UUID) {
	id := uuid.New()
	return ctxutil.WithUser(context.Background(), id, domain.RoleAdmin), id
}

func validCreateInput() CreateInput {
	return CreateInput{
		Email:     "New.Tech@Example.com",
		Password:  "long enough password",
		FirstName: "Jordan",
		LastName:  "Meyer",
		Role:      domain.RoleTechnician,
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	users := &userRepoMock{}
	svc := newTestService(users, &tokenRepoMock{})

	u, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "new.tech@example.com", u.Email, "email is lowercased")
	assert.True(t, u.IsActive)
	assert.Equal(t, domain.RoleTechnician, u.Role)

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long enough password"))
	assert.NoError(t, err, "stored hash must verify against the plain password")
}

func TestService_Create_NonAdminForbidden(t *testing.T) {
	t.Parallel()

	for _, role := range []domain.Role{domain.RoleCoordinator, domain.RoleTechnician, domain.RoleViewer} {
		ctx := ctxutil.WithUser(context.Background(), uuid.New(), role)
		svc := newTestService(&userRepoMock{}, &tokenRepoMock{})

		_, err := svc.Create(ctx, validCreateInput())
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s", role)
	}
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(in *CreateInput)
	}{
		{"missing email", func(in *CreateInput) { in.Email = "" }},
		{"malformed email", func(in *CreateInput) { in.Email = "not-an-email" }},
		{"short password", func(in *CreateInput) { in.Password = "short" }},
		{"missing first name", func(in *CreateInput) { in.FirstName = " " }},
		{"missing last name", func(in *CreateInput) { in.LastName = "" }},
		{"invalid role", func(in *CreateInput) { in.Role = domain.Role(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := adminCtx()
			svc := newTestService(&userRepoMock{}, &tokenRepoMock{})

			in := validCreateInput()
			tt.mutate(&in)

			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	users := &userRepoMock{
		CreateFunc: func(ctx context.Context, u domain.User) (domain.User, error) {
			return domain.User{}, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(users, &tokenRepoMock{})

	_, err := svc.Create(ctx, validCreateInput())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_Update_RoleChange(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	target := domain.User{ID: uuid.New(), Role: domain.RoleTechnician, IsActive: true}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return target, nil
		},
	}
	tokens := &tokenRepoMock{}
	svc := newTestService(users, tokens)

	newRole := domain.RoleCoordinator
	updated, err := svc.Update(ctx, target.ID, UpdateInput{Role: &newRole})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleCoordinator, updated.Role)
	assert.Empty(t, tokens.revoked, "role change alone does not revoke tokens")
}

func TestService_Update_DeactivateRevokesTokens(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	target := domain.User{ID: uuid.New(), Role: domain.RoleTechnician, IsActive: true}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return target, nil
		},
	}
	tokens := &tokenRepoMock{}
	svc := newTestService(users, tokens)

	inactive := false
	updated, err := svc.Update(ctx, target.ID, UpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	require.Len(t, tokens.revoked, 1)
	assert.Equal(t, target.ID, tokens.revoked[0])
}

func TestService_Update_SelfProtection(t *testing.T) {
	t.Parallel()

	ctx, adminID := adminCtx()
	self := domain.User{ID: adminID, Role: domain.RoleAdmin, IsActive: true}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return self, nil
		},
	}
	svc := newTestService(users, &tokenRepoMock{})

	viewer := domain.RoleViewer
	_, err := svc.Update(ctx, adminID, UpdateInput{Role: &viewer})
	assert.ErrorIs(t, err, domain.ErrForbidden, "admin cannot change own role")

	inactive := false
	_, err = svc.Update(ctx, adminID, UpdateInput{IsActive: &inactive})
	assert.ErrorIs(t, err, domain.ErrForbidden, "admin cannot deactivate self")
}

func TestService_Update_Empty(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	svc := newTestService(&userRepoMock{}, &tokenRepoMock{})

	_, err := svc.Update(ctx, uuid.New(), UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Deactivate(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	target := domain.User{ID: uuid.New(), Role: domain.RoleViewer, IsActive: true}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return target, nil
		},
	}
	tokens := &tokenRepoMock{}
	svc := newTestService(users, tokens)

	require.NoError(t, svc.Deactivate(ctx, target.ID))
	require.Len(t, users.updated, 1)
	assert.False(t, users.updated[0].IsActive)
	assert.Len(t, tokens.revoked, 1)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	users := &userRepoMock{
		ListFunc: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{}, {}, {}}, nil
		},
	}
	svc := newTestService(users, &tokenRepoMock{})

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	ctx, _ := adminCtx()
	svc := newTestService(&userRepoMock{}, &tokenRepoMock{})

	_, err := svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
