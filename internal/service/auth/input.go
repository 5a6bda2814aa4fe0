package auth

import (
	"strings"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// LoginInput holds the credentials for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds the raw refresh token for rotation.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks all fields and collects all errors.
func (i RefreshInput) Validate() error {
	if i.RefreshToken == "" {
		return domain.NewValidationError("refreshToken", "required")
	}
	return nil
}
