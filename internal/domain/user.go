package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user. Every user holds exactly one role;
// inactive users cannot authenticate.
type User struct {
	ID           uuid.UUID
	Username     *string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last" for display and history attribution.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Revoked reports whether the token has been explicitly revoked.
func (t RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}
