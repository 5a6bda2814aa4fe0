package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/evidence"
)

// evidenceService defines the minimal interface needed by EvidenceHandler.
type evidenceService interface {
	Add(ctx context.Context, input evidence.AddInput) (domain.Evidence, error)
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error)
	AddTrace(ctx context.Context, input evidence.AddTraceInput) (domain.TraceEvidence, error)
	GetTrace(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error)
	ListTraceByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error)
	ListTrace(ctx context.Context, filter domain.TraceEvidenceFilter) (evidence.TraceListResult, error)
}

// EvidenceHandler serves evidence and trace evidence REST endpoints.
type EvidenceHandler struct {
	svc evidenceService
	log *slog.Logger
}

// NewEvidenceHandler creates an EvidenceHandler.
func NewEvidenceHandler(svc evidenceService, logger *slog.Logger) *EvidenceHandler {
	return &EvidenceHandler{svc: svc, log: logger.With("handler", "evidence")}
}

type addEvidenceRequest struct {
	EvidenceTypeID int       `json:"evidenceTypeId"`
	Description    string    `json:"description"`
	Location       *string   `json:"location"`
	CollectionDate time.Time `json:"collectionDate"`
}

type addTraceEvidenceRequest struct {
	EvidenceNumber  string    `json:"evidenceNumber"`
	TypeID          int       `json:"typeId"`
	Description     string    `json:"description"`
	Color           *string   `json:"color"`
	Size            *string   `json:"size"`
	Weight          *float64  `json:"weight"`
	Location        *string   `json:"location"`
	StorageLocation *string   `json:"storageLocation"`
	CollectedAt     time.Time `json:"collectedAt"`
}

// Add handles POST /case-files/{id}/evidence.
func (h *EvidenceHandler) Add(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req addEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	ev, err := h.svc.Add(r.Context(), evidence.AddInput{
		CaseFileID:     caseFileID,
		EvidenceTypeID: req.EvidenceTypeID,
		Description:    req.Description,
		Location:       req.Location,
		CollectionDate: req.CollectionDate,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusCreated, toEvidenceResponse(ev))
}

// ListByCaseFile handles GET /case-files/{id}/evidence.
func (h *EvidenceHandler) ListByCaseFile(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	items, err := h.svc.ListByCaseFile(r.Context(), caseFileID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toEvidenceResponses(items))
}

// AddTrace handles POST /case-files/{id}/trace-evidence.
func (h *EvidenceHandler) AddTrace(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req addTraceEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	te, err := h.svc.AddTrace(r.Context(), evidence.AddTraceInput{
		CaseFileID:      caseFileID,
		EvidenceNumber:  req.EvidenceNumber,
		TypeID:          req.TypeID,
		Description:     req.Description,
		Color:           req.Color,
		Size:            req.Size,
		Weight:          req.Weight,
		Location:        req.Location,
		StorageLocation: req.StorageLocation,
		CollectedAt:     req.CollectedAt,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusCreated, toTraceEvidenceResponse(te))
}

// ListTraceByCaseFile handles GET /case-files/{id}/trace-evidence.
func (h *EvidenceHandler) ListTraceByCaseFile(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	items, err := h.svc.ListTraceByCaseFile(r.Context(), caseFileID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toTraceEvidenceResponses(items))
}

// GetTrace handles GET /trace-evidence/{id}.
func (h *EvidenceHandler) GetTrace(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	te, err := h.svc.GetTrace(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toTraceEvidenceResponse(te))
}

// ListTrace handles GET /trace-evidence, the paginated cross-case listing.
func (h *EvidenceHandler) ListTrace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.TraceEvidenceFilter

	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("pageSize"); v != "" {
		filter.PageSize, _ = strconv.Atoi(v)
	}

	result, err := h.svc.ListTrace(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, pageResponse{
		Items:    toTraceEvidenceResponses(result.Items),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}
