package casefile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Get returns a single case file by ID. All authenticated roles may read.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
	if _, _, err := actor(ctx); err != nil {
		return domain.CaseFile{}, err
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	return cf, nil
}
