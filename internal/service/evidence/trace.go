package evidence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// AddTrace records trace evidence on a Draft case file. The evidence number
// must be unique within the case file; a duplicate surfaces as
// ErrAlreadyExists from the repository.
func (s *Service) AddTrace(ctx context.Context, input AddTraceInput) (domain.TraceEvidence, error) {
	actorID, err := s.attachTarget(ctx, input.CaseFileID, "add trace evidence to")
	if err != nil {
		return domain.TraceEvidence{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.TraceEvidence{}, err
	}

	ok, err := s.catalogs.TraceEvidenceTypeExists(ctx, input.TypeID)
	if err != nil {
		return domain.TraceEvidence{}, fmt.Errorf("check trace evidence type: %w", err)
	}
	if !ok {
		return domain.TraceEvidence{}, domain.NewValidationError("type_id", "unknown trace evidence type")
	}

	now := s.now().UTC()
	te := domain.TraceEvidence{
		ID:              uuid.New(),
		CaseFileID:      input.CaseFileID,
		EvidenceNumber:  input.EvidenceNumber,
		TypeID:          input.TypeID,
		Description:     input.Description,
		Color:           input.Color,
		Size:            input.Size,
		Weight:          input.Weight,
		Location:        input.Location,
		StorageLocation: input.StorageLocation,
		CollectedBy:     actorID,
		CollectedAt:     input.CollectedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var created domain.TraceEvidence
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.trace.Create(ctx, te)
		if err != nil {
			return fmt.Errorf("create trace evidence: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: input.CaseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeTraceEvidenceAdded,
			NewValue:   strPtr(created.EvidenceNumber),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.TraceEvidence{}, err
	}

	s.log.InfoContext(ctx, "trace evidence added",
		slog.String("trace_evidence_id", created.ID.String()),
		slog.String("case_file_id", input.CaseFileID.String()),
		slog.String("evidence_number", created.EvidenceNumber),
	)
	return created, nil
}

// GetTrace returns a single trace evidence record.
func (s *Service) GetTrace(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error) {
	if err := requireUser(ctx); err != nil {
		return domain.TraceEvidence{}, err
	}

	te, err := s.trace.GetByID(ctx, id)
	if err != nil {
		return domain.TraceEvidence{}, fmt.Errorf("get trace evidence: %w", err)
	}
	return te, nil
}

// ListTraceByCaseFile returns all trace evidence for a case file ordered by
// evidence number.
func (s *Service) ListTraceByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error) {
	if err := requireUser(ctx); err != nil {
		return nil, err
	}

	if _, err := s.cases.GetByID(ctx, caseFileID); err != nil {
		return nil, fmt.Errorf("get case file: %w", err)
	}

	items, err := s.trace.ListByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("list trace evidence: %w", err)
	}
	return items, nil
}

// TraceListResult is one page of the global trace evidence listing.
type TraceListResult struct {
	Items    []domain.TraceEvidence
	Total    int
	Page     int
	PageSize int
}

// ListTrace returns a paginated page over all trace evidence across case
// files, newest first, optionally filtered by a search term.
func (s *Service) ListTrace(ctx context.Context, filter domain.TraceEvidenceFilter) (TraceListResult, error) {
	if err := requireUser(ctx); err != nil {
		return TraceListResult{}, err
	}

	filter.Normalize()

	items, total, err := s.trace.List(ctx, filter)
	if err != nil {
		return TraceListResult{}, fmt.Errorf("list trace evidence: %w", err)
	}

	return TraceListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
