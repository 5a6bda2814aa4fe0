package evidence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// Add records a piece of evidence on a Draft case file and appends the
// EVIDENCE_ADDED history entry in the same transaction.
func (s *Service) Add(ctx context.Context, input AddInput) (domain.Evidence, error) {
	actorID, err := s.attachTarget(ctx, input.CaseFileID, "add evidence to")
	if err != nil {
		return domain.Evidence{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Evidence{}, err
	}

	ok, err := s.catalogs.EvidenceTypeExists(ctx, input.EvidenceTypeID)
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("check evidence type: %w", err)
	}
	if !ok {
		return domain.Evidence{}, domain.NewValidationError("evidence_type_id", "unknown evidence type")
	}

	now := s.now().UTC()
	ev := domain.Evidence{
		ID:             uuid.New(),
		CaseFileID:     input.CaseFileID,
		EvidenceTypeID: input.EvidenceTypeID,
		Description:    input.Description,
		Location:       input.Location,
		CollectedBy:    actorID,
		CollectionDate: input.CollectionDate,
		CreatedAt:      now,
	}

	var created domain.Evidence
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.evidence.Create(ctx, ev)
		if err != nil {
			return fmt.Errorf("create evidence: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: input.CaseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeEvidenceAdded,
			NewValue:   strPtr(created.ID.String()),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Evidence{}, err
	}

	s.log.InfoContext(ctx, "evidence added",
		slog.String("evidence_id", created.ID.String()),
		slog.String("case_file_id", input.CaseFileID.String()),
	)
	return created, nil
}

// Get returns a single evidence record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Evidence, error) {
	if err := requireUser(ctx); err != nil {
		return domain.Evidence{}, err
	}

	ev, err := s.evidence.GetByID(ctx, id)
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("get evidence: %w", err)
	}
	return ev, nil
}

// ListByCaseFile returns all evidence for a case file in collection order.
func (s *Service) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error) {
	if err := requireUser(ctx); err != nil {
		return nil, err
	}

	if _, err := s.cases.GetByID(ctx, caseFileID); err != nil {
		return nil, fmt.Errorf("get case file: %w", err)
	}

	items, err := s.evidence.ListByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return items, nil
}
