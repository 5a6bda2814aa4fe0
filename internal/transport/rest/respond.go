// Package rest implements the HTTP API: JSON envelope, error mapping, and
// one handler per resource.
package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// envelope is the uniform response shape. Success responses carry data;
// error responses carry a machine-readable code and a human message.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// fieldErrorResponse is one field-level validation failure.
type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]fieldErrorResponse, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, struct {
			envelope
			Details []fieldErrorResponse `json:"details,omitempty"`
		}{
			envelope: envelope{Success: false, Error: "VALIDATION_ERROR", Message: verr.Error()},
			Details:  fields,
		})
		return
	}

	var serr *domain.StateError
	if errors.As(err, &serr) {
		writeJSON(w, http.StatusForbidden, envelope{
			Success: false,
			Error:   "INVALID_STATE",
			Message: serr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: false, Error: "VALIDATION_ERROR", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, envelope{
			Success: false, Error: "UNAUTHORIZED", Message: "authentication required",
		})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, envelope{
			Success: false, Error: "FORBIDDEN", Message: "insufficient permissions",
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, envelope{
			Success: false, Error: "NOT_FOUND", Message: "resource not found",
		})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, envelope{
			Success: false, Error: "ALREADY_EXISTS", Message: "resource already exists",
		})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, envelope{
			Success: false, Error: "CONFLICT", Message: err.Error(),
		})
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, envelope{
			Success: false, Error: "INTERNAL_ERROR", Message: "internal server error",
		})
	}
}

// decodeJSON parses the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "malformed JSON request body")
	}
	return nil
}

// decodeJSONOptional is decodeJSON for endpoints where the body may be
// absent. An empty body leaves dst untouched. Checking for io.EOF rather
// than Content-Length keeps chunked requests working.
func decodeJSONOptional(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.NewValidationError("body", "malformed JSON request body")
	}
	return nil
}
