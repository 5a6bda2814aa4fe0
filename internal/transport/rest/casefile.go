package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/casefile"
)

// caseFileService defines the minimal interface needed by CaseFileHandler.
type caseFileService interface {
	Create(ctx context.Context, input casefile.CreateInput) (domain.CaseFile, error)
	Get(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
	List(ctx context.Context, filter domain.CaseFileFilter) (casefile.ListResult, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.CaseFileUpdate) (domain.CaseFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Submit(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
	Approve(ctx context.Context, id uuid.UUID, input casefile.ApproveInput) (domain.CaseFile, error)
	Reject(ctx context.Context, id uuid.UUID, input casefile.RejectInput) (domain.CaseFile, error)
	History(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error)
	Statistics(ctx context.Context) (domain.CaseFileStatistics, error)
}

// CaseFileHandler serves case file REST endpoints.
type CaseFileHandler struct {
	svc caseFileService
	log *slog.Logger
}

// NewCaseFileHandler creates a CaseFileHandler.
func NewCaseFileHandler(svc caseFileService, logger *slog.Logger) *CaseFileHandler {
	return &CaseFileHandler{svc: svc, log: logger.With("handler", "casefile")}
}

type createCaseFileRequest struct {
	CaseNumber   string    `json:"caseNumber"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     *string   `json:"location"`
	IncidentDate time.Time `json:"incidentDate"`
}

type updateCaseFileRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	IncidentDate *time.Time `json:"incidentDate"`
}

type approveCaseFileRequest struct {
	ApprovedBy *string `json:"approvedBy"`
}

type rejectCaseFileRequest struct {
	Reason     string  `json:"rejectionReason"`
	RejectedBy *string `json:"rejectedBy"`
}

// Create handles POST /case-files.
func (h *CaseFileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaseFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	cf, err := h.svc.Create(r.Context(), casefile.CreateInput{
		CaseNumber:   req.CaseNumber,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		IncidentDate: req.IncidentDate,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusCreated, toCaseFileResponse(cf))
}

// Get handles GET /case-files/{id}.
func (h *CaseFileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	cf, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toCaseFileResponse(cf))
}

// List handles GET /case-files with statusId, createdBy, search, page,
// and pageSize query parameters.
func (h *CaseFileHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCaseFileFilter(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	result, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, pageResponse{
		Items:    toCaseFileResponses(result.Items),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func parseCaseFileFilter(r *http.Request) (domain.CaseFileFilter, error) {
	q := r.URL.Query()
	var filter domain.CaseFileFilter

	if v := q.Get("statusId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !domain.CaseStatus(n).IsValid() {
			return filter, domain.NewValidationError("statusId", "unknown status")
		}
		status := domain.CaseStatus(n)
		filter.Status = &status
	}
	if v := q.Get("createdBy"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, domain.NewValidationError("createdBy", "must be a UUID")
		}
		filter.CreatedBy = &id
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("pageSize"); v != "" {
		filter.PageSize, _ = strconv.Atoi(v)
	}
	return filter, nil
}

// Update handles PATCH /case-files/{id}.
func (h *CaseFileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req updateCaseFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	cf, err := h.svc.Update(r.Context(), id, domain.CaseFileUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		IncidentDate: req.IncidentDate,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toCaseFileResponse(cf))
}

// Delete handles DELETE /case-files/{id}.
func (h *CaseFileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Submit handles POST /case-files/{id}/submit.
func (h *CaseFileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	cf, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toCaseFileResponse(cf))
}

// Approve handles POST /case-files/{id}/approve.
func (h *CaseFileHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var input casefile.ApproveInput
	var req approveCaseFileRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if req.ApprovedBy != nil {
		reviewer, err := uuid.Parse(*req.ApprovedBy)
		if err != nil {
			respondError(h.log, w, r, domain.NewValidationError("approvedBy", "must be a UUID"))
			return
		}
		input.ReviewedBy = &reviewer
	}

	cf, err := h.svc.Approve(r.Context(), id, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toCaseFileResponse(cf))
}

// Reject handles POST /case-files/{id}/reject.
func (h *CaseFileHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req rejectCaseFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	input := casefile.RejectInput{Reason: req.Reason}
	if req.RejectedBy != nil {
		reviewer, err := uuid.Parse(*req.RejectedBy)
		if err != nil {
			respondError(h.log, w, r, domain.NewValidationError("rejectedBy", "must be a UUID"))
			return
		}
		input.ReviewedBy = &reviewer
	}

	cf, err := h.svc.Reject(r.Context(), id, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toCaseFileResponse(cf))
}

// History handles GET /case-files/{id}/history.
func (h *CaseFileHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	entries, err := h.svc.History(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toHistoryEntryResponses(entries))
}

// Statistics handles GET /case-files/statistics.
func (h *CaseFileHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]int{
		"total":    stats.Total,
		"approved": stats.Approved,
		"rejected": stats.Rejected,
		"pending":  stats.Pending,
	})
}
