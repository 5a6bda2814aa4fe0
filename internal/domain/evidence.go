package domain

import (
	"time"

	"github.com/google/uuid"
)

// Evidence is a physical-item record owned by exactly one case file.
// It is created once and never transitions state itself; whether it can be
// added at all depends on the parent case file being in Draft.
type Evidence struct {
	ID               uuid.UUID
	CaseFileID       uuid.UUID
	EvidenceTypeID   int
	EvidenceTypeName string
	Description      string
	Location         *string
	CollectedBy      uuid.UUID
	CollectedByName  string
	CollectionDate   time.Time
	CreatedAt        time.Time
}

// TraceEvidence is a trace-level physical record (fibers, residue, samples)
// with optional physical attributes and a per-case evidence number.
type TraceEvidence struct {
	ID              uuid.UUID
	CaseFileID      uuid.UUID
	CaseNumber      string
	EvidenceNumber  string
	TypeID          int
	TypeName        string
	Description     string
	Color           *string
	Size            *string
	Weight          *float64
	Location        *string
	StorageLocation *string
	CollectedBy     uuid.UUID
	CollectedByName string
	CollectedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TraceEvidenceFilter paginates the global trace-evidence listing.
type TraceEvidenceFilter struct {
	Search   *string
	Page     int
	PageSize int
}

// Normalize applies defaults and clamps pagination values.
func (f *TraceEvidenceFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
}

// Offset returns the row offset for the current page.
func (f TraceEvidenceFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
