package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment associates an uploaded file with a case file. The physical
// file lives on disk outside the database; deletion is a soft-delete flag
// plus a best-effort removal of the physical file.
type Attachment struct {
	ID             uuid.UUID
	CaseFileID     uuid.UUID
	FileName       string
	FilePath       string
	FileSize       int64
	MimeType       string
	UploadedBy     uuid.UUID
	UploadedByName string
	UploadedAt     time.Time
	IsDeleted      bool
	DeletedBy      *uuid.UUID
	DeletedAt      *time.Time
}
