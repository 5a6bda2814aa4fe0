package casefile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Update applies a partial edit to a Draft or Rejected case file. Editing a
// Rejected case file resets it to Draft and clears the review outcome, which
// is the only way back into the workflow after a rejection.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd domain.CaseFileUpdate) (domain.CaseFile, error) {
	actorID, role, err := actor(ctx)
	if err != nil {
		return domain.CaseFile{}, err
	}

	if upd.Empty() {
		return domain.CaseFile{}, domain.NewValidationError("body", "at least one field must be supplied")
	}
	if upd.Title != nil && (*upd.Title == "" || len(*upd.Title) > maxTitleLen) {
		return domain.CaseFile{}, domain.NewValidationError("title", "must be between 1 and 200 characters")
	}
	if upd.Description != nil && *upd.Description == "" {
		return domain.CaseFile{}, domain.NewValidationError("description", "must not be empty")
	}
	if upd.Location != nil && len(*upd.Location) > maxLocationLen {
		return domain.CaseFile{}, domain.NewValidationError("location", "must be at most 200 characters")
	}

	cf, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseFile{}, fmt.Errorf("get case file: %w", err)
	}
	if err := canTouch(cf, actorID, role); err != nil {
		return domain.CaseFile{}, fmt.Errorf("update case file %s: %w", id, err)
	}
	if !cf.Status.Editable() {
		return domain.CaseFile{}, domain.NewStateError(cf.Status, "edit")
	}

	if upd.Title != nil {
		cf.Title = *upd.Title
	}
	if upd.Description != nil {
		cf.Description = *upd.Description
	}
	if upd.Location != nil {
		cf.Location = upd.Location
	}
	if upd.IncidentDate != nil {
		cf.IncidentDate = *upd.IncidentDate
	}

	now := s.now().UTC()
	cf.UpdatedAt = now

	entry := domain.HistoryEntry{
		ID:         uuid.New(),
		CaseFileID: cf.ID,
		ChangedBy:  actorID,
		ChangeType: domain.ChangeUpdated,
		ChangedAt:  now,
	}

	if cf.Status == domain.StatusRejected {
		entry.OldValue = strPtr(domain.StatusRejected.String())
		entry.NewValue = strPtr(domain.StatusDraft.String())
		cf.Status = domain.StatusDraft
		cf.RejectionReason = nil
		cf.ReviewedBy = nil
		cf.ApprovedAt = nil
	}

	var updated domain.CaseFile
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
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

	s.log.InfoContext(ctx, "case file updated",
		slog.String("case_file_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)
	return updated, nil
}
