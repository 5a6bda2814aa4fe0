package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	Roles(ctx context.Context) ([]domain.CatalogItem, error)
	CaseStatuses(ctx context.Context) ([]domain.CatalogItem, error)
	EvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error)
	TraceEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error)
}

// CatalogHandler serves the read-only lookup tables.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

func (h *CatalogHandler) serve(w http.ResponseWriter, r *http.Request, fn func(context.Context) ([]domain.CatalogItem, error)) {
	items, err := fn(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respond(w, http.StatusOK, toCatalogItemResponses(items))
}

// Roles handles GET /catalogs/roles.
func (h *CatalogHandler) Roles(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.Roles)
}

// CaseStatuses handles GET /catalogs/case-statuses.
func (h *CatalogHandler) CaseStatuses(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.CaseStatuses)
}

// EvidenceTypes handles GET /catalogs/evidence-types.
func (h *CatalogHandler) EvidenceTypes(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.EvidenceTypes)
}

// TraceEvidenceTypes handles GET /catalogs/trace-evidence-types.
func (h *CatalogHandler) TraceEvidenceTypes(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.TraceEvidenceTypes)
}
