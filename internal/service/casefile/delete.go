package casefile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Delete removes a Draft or Rejected case file. Child records and history
// go with it via cascading deletes.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return err
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get case file: %w", err)
	}
	if err := canTouch(cf, actorID, role); err != nil {
		return fmt.Errorf("delete case file %s: %w", id, err)
	}
	if !cf.Status.Deletable() {
		return domain.NewStateError(cf.Status, "delete")
	}

	if err := s.cases.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete case file: %w", err)
	}

	s.log.InfoContext(ctx, "case file deleted",
		slog.String("case_file_id", id.String()),
		slog.String("case_number", cf.CaseNumber),
		slog.String("deleted_by", actorID.String()),
	)
	return nil
}
