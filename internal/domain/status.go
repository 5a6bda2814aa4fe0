package domain

// CaseStatus represents the lifecycle state of a case file.
// The numeric values match the case_file_statuses catalog table and must
// never be renumbered.
type CaseStatus int

const (
	StatusDraft       CaseStatus = 1
	StatusUnderReview CaseStatus = 2
	StatusApproved    CaseStatus = 3
	StatusRejected    CaseStatus = 4
)

// String returns the catalog name of the status.
func (s CaseStatus) String() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusUnderReview:
		return "Under Review"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return "Unknown"
}

func (s CaseStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Editable reports whether a case file in this status may be modified.
// Editing a Rejected case file is how it re-enters the Draft state for
// resubmission; Approved and Under Review case files are immutable.
func (s CaseStatus) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Deletable reports whether a case file in this status may be deleted.
// Same set as Editable: a submitted or approved case file cannot be removed.
func (s CaseStatus) Deletable() bool {
	return s == StatusDraft || s == StatusRejected
}

// CanSubmit reports whether a case file in this status may be sent for
// review. Only Draft submits; a Rejected case file must first be edited
// (which resets it to Draft).
func (s CaseStatus) CanSubmit() bool {
	return s == StatusDraft
}

// CanReview reports whether a case file in this status may be approved or
// rejected. Approved is terminal; there is no transition out of it.
func (s CaseStatus) CanReview() bool {
	return s == StatusUnderReview
}
