package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType identifies the mutating action recorded in a history entry.
type ChangeType string

const (
	ChangeCreated            ChangeType = "CREATED"
	ChangeUpdated            ChangeType = "UPDATED"
	ChangeSubmitted          ChangeType = "SUBMITTED"
	ChangeApproved           ChangeType = "APPROVED"
	ChangeRejected           ChangeType = "REJECTED"
	ChangeEvidenceAdded      ChangeType = "EVIDENCE_ADDED"
	ChangeTraceEvidenceAdded ChangeType = "TRACE_EVIDENCE_ADDED"
	ChangeParticipantAdded   ChangeType = "PARTICIPANT_ADDED"
	ChangeParticipantRemoved ChangeType = "PARTICIPANT_REMOVED"
	ChangeAttachmentAdded    ChangeType = "ATTACHMENT_ADDED"
	ChangeAttachmentDeleted  ChangeType = "ATTACHMENT_DELETED"
)

func (c ChangeType) String() string { return string(c) }

func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeCreated, ChangeUpdated, ChangeSubmitted, ChangeApproved,
		ChangeRejected, ChangeEvidenceAdded, ChangeTraceEvidenceAdded,
		ChangeParticipantAdded, ChangeParticipantRemoved,
		ChangeAttachmentAdded, ChangeAttachmentDeleted:
		return true
	}
	return false
}

// HistoryEntry is one append-only audit record for a case file. Entries are
// never updated or deleted; every mutating action appends exactly one.
type HistoryEntry struct {
	ID                uuid.UUID
	CaseFileID        uuid.UUID
	ChangedBy         uuid.UUID
	ChangedByUsername *string
	ChangedByName     string
	ChangeType        ChangeType
	OldValue          *string
	NewValue          *string
	Comments          *string
	ChangedAt         time.Time
}
