package evidence

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

const (
	maxEvidenceNumberLen = 50
	maxLocationLen       = 200
)

// AddInput contains the fields required to record a piece of evidence.
type AddInput struct {
	CaseFileID     uuid.UUID
	EvidenceTypeID int
	Description    string
	Location       *string
	CollectionDate time.Time
}

func (in *AddInput) Validate() error {
	var errs []domain.FieldError

	in.Description = strings.TrimSpace(in.Description)

	if in.EvidenceTypeID <= 0 {
		errs = append(errs, domain.FieldError{Field: "evidence_type_id", Message: "is required"})
	}
	if in.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "is required"})
	}
	if in.Location != nil && len(*in.Location) > maxLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "must be at most 200 characters"})
	}
	if in.CollectionDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "collection_date", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddTraceInput contains the fields required to record trace evidence.
type AddTraceInput struct {
	CaseFileID      uuid.UUID
	EvidenceNumber  string
	TypeID          int
	Description     string
	Color           *string
	Size            *string
	Weight          *float64
	Location        *string
	StorageLocation *string
	CollectedAt     time.Time
}

func (in *AddTraceInput) Validate() error {
	var errs []domain.FieldError

	in.EvidenceNumber = strings.TrimSpace(in.EvidenceNumber)
	in.Description = strings.TrimSpace(in.Description)

	if in.EvidenceNumber == "" {
		errs = append(errs, domain.FieldError{Field: "evidence_number", Message: "is required"})
	} else if len(in.EvidenceNumber) > maxEvidenceNumberLen {
		errs = append(errs, domain.FieldError{Field: "evidence_number", Message: "must be at most 50 characters"})
	}
	if in.TypeID <= 0 {
		errs = append(errs, domain.FieldError{Field: "type_id", Message: "is required"})
	}
	if in.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "is required"})
	}
	if in.Weight != nil && *in.Weight < 0 {
		errs = append(errs, domain.FieldError{Field: "weight", Message: "must not be negative"})
	}
	if in.CollectedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "collected_at", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
