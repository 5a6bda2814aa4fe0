package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant associates a user with a case file in a non-ownership role.
// The association is removable but not otherwise mutable.
type Participant struct {
	ID         uuid.UUID
	CaseFileID uuid.UUID
	UserID     uuid.UUID
	Username   *string
	FirstName  string
	LastName   string
	Email      string
	Role       Role
	// ParticipantRole is a free-text label describing the user's role in
	// this particular case (e.g. "lead investigator"), distinct from the
	// user's system role.
	ParticipantRole *string
	AddedBy         uuid.UUID
	AssignedAt      time.Time
}
