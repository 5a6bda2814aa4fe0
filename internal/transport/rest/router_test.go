package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/evidence"
	"github.com/casetrace/casetrace-backend/internal/service/participant"
	"github.com/casetrace/casetrace-backend/internal/service/user"
	"github.com/casetrace/casetrace-backend/internal/transport/middleware"
)

type evidenceServiceStub struct{}

var _ evidenceService = evidenceServiceStub{}

func (evidenceServiceStub) Add(context.Context, evidence.AddInput) (domain.Evidence, error) {
	return domain.Evidence{}, nil
}
func (evidenceServiceStub) ListByCaseFile(context.Context, uuid.UUID) ([]domain.Evidence, error) {
	return nil, nil
}
func (evidenceServiceStub) AddTrace(context.Context, evidence.AddTraceInput) (domain.TraceEvidence, error) {
	return domain.TraceEvidence{}, nil
}
func (evidenceServiceStub) GetTrace(context.Context, uuid.UUID) (domain.TraceEvidence, error) {
	return domain.TraceEvidence{}, nil
}
func (evidenceServiceStub) ListTraceByCaseFile(context.Context, uuid.UUID) ([]domain.TraceEvidence, error) {
	return nil, nil
}
func (evidenceServiceStub) ListTrace(context.Context, domain.TraceEvidenceFilter) (evidence.TraceListResult, error) {
	return evidence.TraceListResult{}, nil
}

type participantServiceStub struct{}

var _ participantService = participantServiceStub{}

func (participantServiceStub) Add(context.Context, participant.AddInput) (domain.Participant, error) {
	return domain.Participant{}, nil
}
func (participantServiceStub) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (participantServiceStub) List(context.Context, uuid.UUID) ([]domain.Participant, error) {
	return nil, nil
}

type userServiceStub struct{}

var _ userService = userServiceStub{}

func (userServiceStub) Create(context.Context, user.CreateInput) (domain.User, error) {
	return domain.User{}, nil
}
func (userServiceStub) Get(context.Context, uuid.UUID) (domain.User, error) {
	return domain.User{}, nil
}
func (userServiceStub) List(context.Context) ([]domain.User, error)      { return nil, nil }
func (userServiceStub) Update(context.Context, uuid.UUID, user.UpdateInput) (domain.User, error) {
	return domain.User{}, nil
}
func (userServiceStub) Deactivate(context.Context, uuid.UUID) error { return nil }

type catalogServiceStub struct{}

var _ catalogService = catalogServiceStub{}

func (catalogServiceStub) Roles(context.Context) ([]domain.CatalogItem, error)        { return nil, nil }
func (catalogServiceStub) CaseStatuses(context.Context) ([]domain.CatalogItem, error) { return nil, nil }
func (catalogServiceStub) EvidenceTypes(context.Context) ([]domain.CatalogItem, error) {
	return nil, nil
}
func (catalogServiceStub) TraceEvidenceTypes(context.Context) ([]domain.CatalogItem, error) {
	return nil, nil
}

type pingerStub struct{ err error }

func (p pingerStub) Ping(context.Context) error { return p.err }

type validatorStub struct{}

func (validatorStub) ValidateAccessToken(token string) (uuid.UUID, domain.Role, error) {
	switch token {
	case "good-token":
		return uuid.MustParse("11111111-2222-3333-4444-555555555555"), domain.RoleAdmin, nil
	case "tech-token":
		return uuid.MustParse("22222222-3333-4444-5555-666666666666"), domain.RoleTechnician, nil
	default:
		return uuid.Nil, 0, domain.ErrUnauthorized
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	log := discardLogger()
	h := Handlers{
		Auth:        NewAuthHandler(&authServiceMock{}, log),
		CaseFile:    NewCaseFileHandler(&caseFileServiceMock{}, log),
		Evidence:    NewEvidenceHandler(evidenceServiceStub{}, log),
		Participant: NewParticipantHandler(participantServiceStub{}, log),
		Attachment:  NewAttachmentHandler(&attachmentServiceMock{}, 1024, log),
		User:        NewUserHandler(userServiceStub{}, log),
		Catalog:     NewCatalogHandler(catalogServiceStub{}, log),
		Health:      NewHealthHandler(pingerStub{}, "test"),
	}
	return NewRouter(h, middleware.Auth(validatorStub{}))
}

func TestRouter_ProtectedRequiresAuth(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/case-files"},
		{http.MethodGet, "/api/v1/trace-evidence"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/catalogs/roles"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(p.method, p.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestRouter_ProtectedWithToken(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/case-files", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRouter_StatisticsNotShadowedByID(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/case-files/statistics", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total"`)
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	t.Run("login", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health live", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_UserRoutesAdminOnly(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer tech-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/case-files", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
