package casefile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

const (
	maxCaseNumberLen      = 50
	maxTitleLen           = 200
	maxLocationLen        = 200
	maxRejectionReasonLen = 500
)

// CreateInput contains the fields required to register a new case file.
type CreateInput struct {
	CaseNumber   string
	Title        string
	Description  string
	Location     *string
	IncidentDate time.Time
}

func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	in.CaseNumber = strings.TrimSpace(in.CaseNumber)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.CaseNumber == "" {
		errs = append(errs, domain.FieldError{Field: "case_number", Message: "is required"})
	} else if len(in.CaseNumber) > maxCaseNumberLen {
		errs = append(errs, domain.FieldError{Field: "case_number", Message: "must be at most 50 characters"})
	}
	if in.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "is required"})
	} else if len(in.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must be at most 200 characters"})
	}
	if in.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "is required"})
	}
	if in.Location != nil && len(*in.Location) > maxLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "must be at most 200 characters"})
	}
	if in.IncidentDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "incident_date", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ApproveInput optionally names the reviewer to record; when nil the
// acting user is recorded.
type ApproveInput struct {
	ReviewedBy *uuid.UUID
}

// RejectInput carries the mandatory rejection reason. ReviewedBy overrides
// the recorded reviewer; it defaults to the acting user.
type RejectInput struct {
	Reason     string
	ReviewedBy *uuid.UUID
}

func (in *RejectInput) Validate() error {
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return domain.NewValidationError("rejection_reason", "is required")
	}
	if len(in.Reason) > maxRejectionReasonLen {
		return domain.NewValidationError("rejection_reason", "must be at most 500 characters")
	}
	return nil
}
