package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaseFile is the central workflow aggregate: one investigative case with
// its lifecycle status and review outcome.
//
// Invariant: RejectionReason is non-nil if and only if Status is
// StatusRejected. The rejected→draft reset (an edit) clears it in the same
// update that flips the status.
type CaseFile struct {
	ID              uuid.UUID
	CaseNumber      string
	Title           string
	Description     string
	Status          CaseStatus
	Location        *string
	IncidentDate    time.Time
	CreatedBy       uuid.UUID
	CreatedByName   string
	ReviewedBy      *uuid.UUID
	ApprovedAt      *time.Time
	RejectionReason *string
	EvidenceCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CaseFileUpdate lists the fields a PATCH may change. A nil field means
// "not supplied" as opposed to "clear"; only supplied fields are written.
type CaseFileUpdate struct {
	Title        *string
	Description  *string
	Location     *string
	IncidentDate *time.Time
}

// Empty reports whether the update supplies no fields at all.
func (u CaseFileUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil && u.IncidentDate == nil
}

// CaseFileFilter contains filtering and pagination parameters for case file
// listings. Results are always ordered by registration time, newest first.
type CaseFileFilter struct {
	Status    *CaseStatus
	CreatedBy *uuid.UUID
	// Search performs ILIKE '%...%' on case_number and title.
	Search   *string
	Page     int
	PageSize int
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Normalize applies defaults and clamps pagination values.
func (f *CaseFileFilter) Normalize() {
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
func (f CaseFileFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// CaseFileStatistics is the dashboard aggregate over all case files.
// Pending counts Draft and Under Review together.
type CaseFileStatistics struct {
	Total    int
	Approved int
	Rejected int
	Pending  int
}
