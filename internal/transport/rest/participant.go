package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/participant"
)

// participantService defines the minimal interface needed by ParticipantHandler.
type participantService interface {
	Add(ctx context.Context, input participant.AddInput) (domain.Participant, error)
	Remove(ctx context.Context, caseFileID, userID uuid.UUID) error
	List(ctx context.Context, caseFileID uuid.UUID) ([]domain.Participant, error)
}

// ParticipantHandler serves case file participant REST endpoints.
type ParticipantHandler struct {
	svc participantService
	log *slog.Logger
}

// NewParticipantHandler creates a ParticipantHandler.
func NewParticipantHandler(svc participantService, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{svc: svc, log: logger.With("handler", "participant")}
}

type addParticipantRequest struct {
	UserID          string  `json:"userId"`
	ParticipantRole *string `json:"participantRole"`
}

// Add handles POST /case-files/{id}/participants.
func (h *ParticipantHandler) Add(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req addParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(h.log, w, r, domain.NewValidationError("userId", "must be a UUID"))
		return
	}

	p, err := h.svc.Add(r.Context(), participant.AddInput{
		CaseFileID:      caseFileID,
		UserID:          userID,
		ParticipantRole: req.ParticipantRole,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusCreated, toParticipantResponse(p))
}

// Remove handles DELETE /case-files/{id}/participants/{userID}.
func (h *ParticipantHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	userID, err := pathUUID(r, "userID")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if err := h.svc.Remove(r.Context(), caseFileID, userID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"status": "removed"})
}

// List handles GET /case-files/{id}/participants.
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), caseFileID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusOK, toParticipantResponses(items))
}
