package casefile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Approve accepts a case file under review. The recorded reviewer defaults
// to the acting user unless the input names someone else.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, input ApproveInput) (domain.CaseFile, error) {
	actorID, role, err := actor(ctx)
	if err != nil {
		return domain.CaseFile{}, err
	}
	if !role.Can(domain.CapReviewCase) {
		return domain.CaseFile{}, fmt.Errorf("approve case file %s: %w", id, domain.ErrForbidden)
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	if !cf.Status.CanReview() {
		return domain.CaseFile{}, domain.NewStateError(cf.Status, "approve")
	}

	now := s.now().UTC()
	oldStatus := cf.Status
	reviewer := actorID
	if input.ReviewedBy != nil {
		reviewer = *input.ReviewedBy
	}

	cf.Status = domain.StatusApproved
	cf.ReviewedBy = &reviewer
	cf.ApprovedAt = &now
	cf.UpdatedAt = now

	updated, err := s.transition(ctx, cf, domain.HistoryEntry{
		ID:         uuid.New(),
		CaseFileID: cf.ID,
		ChangedBy:  actorID,
		ChangeType: domain.ChangeApproved,
		OldValue:   strPtr(oldStatus.String()),
		NewValue:   strPtr(domain.StatusApproved.String()),
		ChangedAt:  now,
	})
	if err != nil {
		return domain.CaseFile{}, err
	}

	s.log.InfoContext(ctx, "case file approved",
		slog.String("case_file_id", updated.ID.String()),
		slog.String("reviewed_by", reviewer.String()),
	)
	return updated, nil
}

// Reject declines a case file under review with a mandatory reason. The
// case file stays Rejected until an edit resets it to Draft.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, input RejectInput) (domain.CaseFile, error) {
	actorID, role, err := actor(ctx)
	if err != nil {
		return domain.CaseFile{}, err
	}
	if !role.Can(domain.CapReviewCase) {
		return domain.CaseFile{}, fmt.Errorf("reject case file %s: %w", id, domain.ErrForbidden)
	}

	if err := input.Validate(); err != nil {
		return domain.CaseFile{}, err
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	if !cf.Status.CanReview() {
		return domain.CaseFile{}, domain.NewStateError(cf.Status, "reject")
	}

	now := s.now().UTC()
	oldStatus := cf.Status
	reviewer := actorID
	if input.ReviewedBy != nil {
		reviewer = *input.ReviewedBy
	}

	cf.Status = domain.StatusRejected
	cf.ReviewedBy = &reviewer
	cf.RejectionReason = &input.Reason
	cf.UpdatedAt = now

	updated, err := s.transition(ctx, cf, domain.HistoryEntry{
		ID:         uuid.New(),
		CaseFileID: cf.ID,
		ChangedBy:  actorID,
		ChangeType: domain.ChangeRejected,
		OldValue:   strPtr(oldStatus.String()),
		NewValue:   strPtr(domain.StatusRejected.String()),
		Comments:   &input.Reason,
		ChangedAt:  now,
	})
	if err != nil {
		return domain.CaseFile{}, err
	}

	s.log.InfoContext(ctx, "case file rejected",
		slog.String("case_file_id", updated.ID.String()),
		slog.String("reviewed_by", reviewer.String()),
	)
	return updated, nil
}

// transition persists a status change and its history entry atomically.
func (s *Service) transition(ctx context.Context, cf domain.CaseFile, entry domain.HistoryEntry) (domain.CaseFile, error) {
	var updated domain.CaseFile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.cases.Update(ctx, cf)
		if err != nil {
			return fmt.Errorf("update case file: %w", err)
		}
		if err := s.history.Append(ctx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.CaseFile{}, err
	}
	return updated, nil
}
