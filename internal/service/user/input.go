package user

import (
	"net/mail"
	"strings"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxNameLen     = 100
)

// CreateInput contains the fields required to create a user account.
type CreateInput struct {
	Username  *string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		if trimmed == "" {
			in.Username = nil
		} else {
			in.Username = &trimmed
		}
	}

	if in.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "is not a valid email address"})
	}
	if len(in.Password) < minPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if in.FirstName == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "is required"})
	} else if len(in.FirstName) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "must be at most 100 characters"})
	}
	if in.LastName == "" {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "is required"})
	} else if len(in.LastName) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "must be at most 100 characters"})
	}
	if !in.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role_id", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput lists the account fields an admin may change. Nil means
// "leave unchanged".
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
	IsActive  *bool
}

// Empty reports whether the update supplies no fields at all.
func (in UpdateInput) Empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Role == nil && in.IsActive == nil
}

func (in *UpdateInput) Validate() error {
	if in.Empty() {
		return domain.NewValidationError("body", "at least one field must be supplied")
	}
	if in.FirstName != nil && (*in.FirstName == "" || len(*in.FirstName) > maxNameLen) {
		return domain.NewValidationError("first_name", "must be between 1 and 100 characters")
	}
	if in.LastName != nil && (*in.LastName == "" || len(*in.LastName) > maxNameLen) {
		return domain.NewValidationError("last_name", "must be between 1 and 100 characters")
	}
	if in.Role != nil && !in.Role.IsValid() {
		return domain.NewValidationError("role_id", "unknown role")
	}
	return nil
}
