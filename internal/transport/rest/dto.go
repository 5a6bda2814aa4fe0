package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// pathUUID parses a UUID path segment. A malformed ID maps to 404, not 400:
// syntactically invalid IDs cannot name an existing resource.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

type userResponse struct {
	ID        string  `json:"id"`
	Username  *string `json:"username,omitempty"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	RoleID    int     `json:"roleId"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleID:    int(u.Role),
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type caseFileResponse struct {
	ID              string     `json:"id"`
	CaseNumber      string     `json:"caseNumber"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StatusID        int        `json:"statusId"`
	Status          string     `json:"status"`
	Location        *string    `json:"location,omitempty"`
	IncidentDate    time.Time  `json:"incidentDate"`
	CreatedBy       string     `json:"createdBy"`
	CreatedByName   string     `json:"createdByName,omitempty"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	EvidenceCount   int        `json:"evidenceCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toCaseFileResponse(cf domain.CaseFile) caseFileResponse {
	resp := caseFileResponse{
		ID:              cf.ID.String(),
		CaseNumber:      cf.CaseNumber,
		Title:           cf.Title,
		Description:     cf.Description,
		StatusID:        int(cf.Status),
		Status:          cf.Status.String(),
		Location:        cf.Location,
		IncidentDate:    cf.IncidentDate,
		CreatedBy:       cf.CreatedBy.String(),
		CreatedByName:   cf.CreatedByName,
		ApprovedAt:      cf.ApprovedAt,
		RejectionReason: cf.RejectionReason,
		EvidenceCount:   cf.EvidenceCount,
		CreatedAt:       cf.CreatedAt,
		UpdatedAt:       cf.UpdatedAt,
	}
	if cf.ReviewedBy != nil {
		s := cf.ReviewedBy.String()
		resp.ReviewedBy = &s
	}
	return resp
}

func toCaseFileResponses(items []domain.CaseFile) []caseFileResponse {
	out := make([]caseFileResponse, 0, len(items))
	for _, cf := range items {
		out = append(out, toCaseFileResponse(cf))
	}
	return out
}

// pageResponse wraps a listing with its pagination metadata.
type pageResponse struct {
	Items    any `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type evidenceResponse struct {
	ID              string    `json:"id"`
	CaseFileID      string    `json:"caseFileId"`
	EvidenceTypeID  int       `json:"evidenceTypeId"`
	EvidenceType    string    `json:"evidenceType"`
	Description     string    `json:"description"`
	Location        *string   `json:"location,omitempty"`
	CollectedBy     string    `json:"collectedBy"`
	CollectedByName string    `json:"collectedByName,omitempty"`
	CollectionDate  time.Time `json:"collectionDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toEvidenceResponse(ev domain.Evidence) evidenceResponse {
	return evidenceResponse{
		ID:              ev.ID.String(),
		CaseFileID:      ev.CaseFileID.String(),
		EvidenceTypeID:  ev.EvidenceTypeID,
		EvidenceType:    ev.EvidenceTypeName,
		Description:     ev.Description,
		Location:        ev.Location,
		CollectedBy:     ev.CollectedBy.String(),
		CollectedByName: ev.CollectedByName,
		CollectionDate:  ev.CollectionDate,
		CreatedAt:       ev.CreatedAt,
	}
}

func toEvidenceResponses(items []domain.Evidence) []evidenceResponse {
	out := make([]evidenceResponse, 0, len(items))
	for _, ev := range items {
		out = append(out, toEvidenceResponse(ev))
	}
	return out
}

type traceEvidenceResponse struct {
	ID              string    `json:"id"`
	CaseFileID      string    `json:"caseFileId"`
	CaseNumber      string    `json:"caseNumber,omitempty"`
	EvidenceNumber  string    `json:"evidenceNumber"`
	TypeID          int       `json:"typeId"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Color           *string   `json:"color,omitempty"`
	Size            *string   `json:"size,omitempty"`
	Weight          *float64  `json:"weight,omitempty"`
	Location        *string   `json:"location,omitempty"`
	StorageLocation *string   `json:"storageLocation,omitempty"`
	CollectedBy     string    `json:"collectedBy"`
	CollectedByName string    `json:"collectedByName,omitempty"`
	CollectedAt     time.Time `json:"collectedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toTraceEvidenceResponse(te domain.TraceEvidence) traceEvidenceResponse {
	return traceEvidenceResponse{
		ID:              te.ID.String(),
		CaseFileID:      te.CaseFileID.String(),
		CaseNumber:      te.CaseNumber,
		EvidenceNumber:  te.EvidenceNumber,
		TypeID:          te.TypeID,
		Type:            te.TypeName,
		Description:     te.Description,
		Color:           te.Color,
		Size:            te.Size,
		Weight:          te.Weight,
		Location:        te.Location,
		StorageLocation: te.StorageLocation,
		CollectedBy:     te.CollectedBy.String(),
		CollectedByName: te.CollectedByName,
		CollectedAt:     te.CollectedAt,
		CreatedAt:       te.CreatedAt,
	}
}

func toTraceEvidenceResponses(items []domain.TraceEvidence) []traceEvidenceResponse {
	out := make([]traceEvidenceResponse, 0, len(items))
	for _, te := range items {
		out = append(out, toTraceEvidenceResponse(te))
	}
	return out
}

type participantResponse struct {
	ID              string    `json:"id"`
	CaseFileID      string    `json:"caseFileId"`
	UserID          string    `json:"userId"`
	Username        *string   `json:"username,omitempty"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	RoleID          int       `json:"roleId"`
	Role            string    `json:"role"`
	ParticipantRole *string   `json:"participantRole,omitempty"`
	AssignedAt      time.Time `json:"assignedAt"`
}

func toParticipantResponse(p domain.Participant) participantResponse {
	return participantResponse{
		ID:              p.ID.String(),
		CaseFileID:      p.CaseFileID.String(),
		UserID:          p.UserID.String(),
		Username:        p.Username,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		RoleID:          int(p.Role),
		Role:            p.Role.String(),
		ParticipantRole: p.ParticipantRole,
		AssignedAt:      p.AssignedAt,
	}
}

func toParticipantResponses(items []domain.Participant) []participantResponse {
	out := make([]participantResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toParticipantResponse(p))
	}
	return out
}

type attachmentResponse struct {
	ID             string    `json:"id"`
	CaseFileID     string    `json:"caseFileId"`
	FileName       string    `json:"fileName"`
	FileSize       int64     `json:"fileSize"`
	MimeType       string    `json:"mimeType"`
	UploadedBy     string    `json:"uploadedBy"`
	UploadedByName string    `json:"uploadedByName,omitempty"`
	UploadedAt     time.Time `json:"uploadedAt"`
}

func toAttachmentResponse(a domain.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:             a.ID.String(),
		CaseFileID:     a.CaseFileID.String(),
		FileName:       a.FileName,
		FileSize:       a.FileSize,
		MimeType:       a.MimeType,
		UploadedBy:     a.UploadedBy.String(),
		UploadedByName: a.UploadedByName,
		UploadedAt:     a.UploadedAt,
	}
}

func toAttachmentResponses(items []domain.Attachment) []attachmentResponse {
	out := make([]attachmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAttachmentResponse(a))
	}
	return out
}

type historyEntryResponse struct {
	ID                string    `json:"id"`
	CaseFileID        string    `json:"caseFileId"`
	ChangedBy         string    `json:"changedBy"`
	ChangedByUsername *string   `json:"changedByUsername,omitempty"`
	ChangedByName     string    `json:"changedByName,omitempty"`
	ChangeType        string    `json:"changeType"`
	OldValue          *string   `json:"oldValue,omitempty"`
	NewValue          *string   `json:"newValue,omitempty"`
	Comments          *string   `json:"comments,omitempty"`
	ChangedAt         time.Time `json:"changedAt"`
}

func toHistoryEntryResponses(items []domain.HistoryEntry) []historyEntryResponse {
	out := make([]historyEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, historyEntryResponse{
			ID:                e.ID.String(),
			CaseFileID:        e.CaseFileID.String(),
			ChangedBy:         e.ChangedBy.String(),
			ChangedByUsername: e.ChangedByUsername,
			ChangedByName:     e.ChangedByName,
			ChangeType:        e.ChangeType.String(),
			OldValue:          e.OldValue,
			NewValue:          e.NewValue,
			Comments:          e.Comments,
			ChangedAt:         e.ChangedAt,
		})
	}
	return out
}

type catalogItemResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func toCatalogItemResponses(items []domain.CatalogItem) []catalogItemResponse {
	out := make([]catalogItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, catalogItemResponse{ID: it.ID, Name: it.Name, Description: it.Description})
	}
	return out
}
