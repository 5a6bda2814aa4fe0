package rest

import (
	"net/http"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	CaseFile    *CaseFileHandler
	Evidence    *EvidenceHandler
	Participant *ParticipantHandler
	Attachment  *AttachmentHandler
	User        *UserHandler
	Catalog     *CatalogHandler
	Health      *HealthHandler
}

// NewRouter mounts all routes under /api/v1. The auth middleware parses the
// Bearer token on every request; protected routes additionally require an
// authenticated user. Capability checks live in the services.
func NewRouter(h Handlers, authMW middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)

	protected := func(handler http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(handler)
	}

	mux.Handle("POST /api/v1/auth/logout", protected(h.Auth.Logout))

	mux.Handle("POST /api/v1/case-files", protected(h.CaseFile.Create))
	mux.Handle("GET /api/v1/case-files", protected(h.CaseFile.List))
	mux.Handle("GET /api/v1/case-files/statistics", protected(h.CaseFile.Statistics))
	mux.Handle("GET /api/v1/case-files/{id}", protected(h.CaseFile.Get))
	mux.Handle("PATCH /api/v1/case-files/{id}", protected(h.CaseFile.Update))
	mux.Handle("DELETE /api/v1/case-files/{id}", protected(h.CaseFile.Delete))
	mux.Handle("POST /api/v1/case-files/{id}/submit", protected(h.CaseFile.Submit))
	mux.Handle("POST /api/v1/case-files/{id}/approve", protected(h.CaseFile.Approve))
	mux.Handle("POST /api/v1/case-files/{id}/reject", protected(h.CaseFile.Reject))
	mux.Handle("GET /api/v1/case-files/{id}/history", protected(h.CaseFile.History))

	mux.Handle("POST /api/v1/case-files/{id}/evidence", protected(h.Evidence.Add))
	mux.Handle("GET /api/v1/case-files/{id}/evidence", protected(h.Evidence.ListByCaseFile))
	mux.Handle("POST /api/v1/case-files/{id}/trace-evidence", protected(h.Evidence.AddTrace))
	mux.Handle("GET /api/v1/case-files/{id}/trace-evidence", protected(h.Evidence.ListTraceByCaseFile))
	mux.Handle("GET /api/v1/trace-evidence", protected(h.Evidence.ListTrace))
	mux.Handle("GET /api/v1/trace-evidence/{id}", protected(h.Evidence.GetTrace))

	mux.Handle("POST /api/v1/case-files/{id}/participants", protected(h.Participant.Add))
	mux.Handle("GET /api/v1/case-files/{id}/participants", protected(h.Participant.List))
	mux.Handle("DELETE /api/v1/case-files/{id}/participants/{userID}", protected(h.Participant.Remove))

	mux.Handle("POST /api/v1/case-files/{id}/attachments", protected(h.Attachment.Upload))
	mux.Handle("GET /api/v1/case-files/{id}/attachments", protected(h.Attachment.List))
	mux.Handle("GET /api/v1/attachments/{id}/download", protected(h.Attachment.Download))
	mux.Handle("DELETE /api/v1/attachments/{id}", protected(h.Attachment.Delete))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	mux.Handle("POST /api/v1/users", adminOnly(http.HandlerFunc(h.User.Create)))
	mux.Handle("GET /api/v1/users", adminOnly(http.HandlerFunc(h.User.List)))
	mux.Handle("GET /api/v1/users/{id}", adminOnly(http.HandlerFunc(h.User.Get)))
	mux.Handle("PATCH /api/v1/users/{id}", adminOnly(http.HandlerFunc(h.User.Update)))
	mux.Handle("DELETE /api/v1/users/{id}", adminOnly(http.HandlerFunc(h.User.Deactivate)))

	mux.Handle("GET /api/v1/catalogs/roles", protected(h.Catalog.Roles))
	mux.Handle("GET /api/v1/catalogs/case-file-statuses", protected(h.Catalog.CaseStatuses))
	mux.Handle("GET /api/v1/catalogs/evidence-types", protected(h.Catalog.EvidenceTypes))
	mux.Handle("GET /api/v1/catalogs/trace-evidence-types", protected(h.Catalog.TraceEvidenceTypes))

	return authMW(mux)
}
