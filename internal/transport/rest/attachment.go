package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/attachment"
)

// attachmentService defines the minimal interface needed by AttachmentHandler.
type attachmentService interface {
	Upload(ctx context.Context, input attachment.UploadInput) (domain.Attachment, error)
	List(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error)
	Download(ctx context.Context, id uuid.UUID) (domain.Attachment, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttachmentHandler serves attachment REST endpoints.
type AttachmentHandler struct {
	svc         attachmentService
	log         *slog.Logger
	maxFileSize int64
}

// NewAttachmentHandler creates an AttachmentHandler.
func NewAttachmentHandler(svc attachmentService, maxFileSize int64, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		svc:         svc,
		log:         logger.With("handler", "attachment"),
		maxFileSize: maxFileSize,
	}
}

// Upload handles POST /case-files/{id}/attachments as multipart/form-data
// with the file under the "file" field.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caseFileID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(h.log, w, r, domain.NewValidationError("file", "malformed multipart request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(h.log, w, r, domain.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	a, err := h.svc.Upload(r.Context(), attachment.UploadInput{
		CaseFileID: caseFileID,
		FileName:   header.Filename,
		MimeType:   mimeType,
		Size:       header.Size,
		Content:    file,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	respond(w, http.StatusCreated, toAttachmentResponse(a))
}

// List handles GET /case-files/{id}/attachments.
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
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

	respond(w, http.StatusOK, toAttachmentResponses(items))
}

// Download handles GET /attachments/{id}/download, streaming the file with
// its stored MIME type and original name.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	a, rc, err := h.svc.Download(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", a.FileSize))
	if _, err := io.Copy(w, rc); err != nil {
		h.log.ErrorContext(r.Context(), "stream attachment",
			slog.String("attachment_id", id.String()),
			slog.String("error", err.Error()))
	}
}

// Delete handles DELETE /attachments/{id}.
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
