package casefile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Create registers a new case file in Draft status and records the CREATED
// history entry in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.CaseFile, error) {
	actorID, role, err := actor(ctx)
	if err != nil {
		return domain.CaseFile{}, err
	}
	if !role.Can(domain.CapCreateCase) {
		return domain.CaseFile{}, fmt.Errorf("create case file: %w", domain.ErrForbidden)
	}

	if err := input.Validate(); err != nil {
		return domain.CaseFile{}, err
	}

	now := s.now().UTC()
	cf := domain.CaseFile{
		ID:           uuid.New(),
		CaseNumber:   input.CaseNumber,
		Title:        input.Title,
		Description:  input.Description,
		Status:       domain.StatusDraft,
		Location:     input.Location,
		IncidentDate: input.IncidentDate,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created domain.CaseFile
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.cases.Create(ctx, cf)
		if err != nil {
			return fmt.Errorf("create case file: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: created.ID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeCreated,
			NewValue:   strPtr(domain.StatusDraft.String()),
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

	s.log.InfoContext(ctx, "case file created",
		slog.String("case_file_id", created.ID.String()),
		slog.String("case_number", created.CaseNumber),
		slog.String("created_by", actorID.String()),
	)
	return created, nil
}
