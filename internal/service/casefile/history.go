package casefile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// History returns the full audit trail for a case file in chronological
// order. The case file must exist.
func (s *Service) History(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error) {
	if _, _, err := actor(ctx); err != nil {
		return nil, err
	}

	if _, err := s.cases.GetByID(ctx, caseFileID); err != nil {
		return nil, fmt.Errorf("get case file: %w", err)
	}

	entries, err := s.history.ListByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("list case file history: %w", err)
	}
	return entries, nil
}
