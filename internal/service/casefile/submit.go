package casefile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Submit sends a Draft case file for review.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
	actorID, role, err := actor(ctx)
	if err != nil {
		return domain.CaseFile{}, err
	}
	if !role.Can(domain.CapSubmitCase) {
		return domain.CaseFile{}, fmt.Errorf("submit case file %s: %w", id, domain.ErrForbidden)
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	if role.EditsOwnOnly() && cf.CreatedBy != actorID {
		return domain.CaseFile{}, fmt.Errorf("submit case file %s: %w", id, domain.ErrForbidden)
	}
	if !cf.Status.CanSubmit() {
		return domain.CaseFile{}, domain.NewStateError(cf.Status, "submit")
	}

	count, err := s.cases.CountEvidence(ctx, cf.ID)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("count evidence: %w", err)
	}
	if count == 0 {
		return domain.CaseFile{}, domain.NewValidationError("evidence", "cannot submit without evidence")
	}

	now := s.now().UTC()
	oldStatus := cf.Status
	cf.Status = domain.StatusUnderReview
	cf.UpdatedAt = now

	var updated domain.CaseFile
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated, err = s.cases.Update(ctx, cf)
		if err != nil {
			return fmt.Errorf("update case file: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: cf.ID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeSubmitted,
			OldValue:   strPtr(oldStatus.String()),
			NewValue:   strPtr(domain.StatusUnderReview.String()),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.CaseFile{}, err
	}

	s.log.InfoContext(ctx, "case file submitted for review",
		slog.String("case_file_id", updated.ID.String()),
		slog.String("submitted_by", actorID.String()),
	)
	return updated, nil
}
