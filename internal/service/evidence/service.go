// Package evidence implements evidence and trace evidence operations for
// case files.
package evidence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type evidenceRepo interface {
	Create(ctx context.Context, ev domain.Evidence) (domain.Evidence, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Evidence, error)
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error)
}

type traceEvidenceRepo interface {
	Create(ctx context.Context, te domain.TraceEvidence) (domain.TraceEvidence, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error)
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error)
	List(ctx context.Context, filter domain.TraceEvidenceFilter) ([]domain.TraceEvidence, int, error)
}

type caseFileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
}

type catalogRepo interface {
	EvidenceTypeExists(ctx context.Context, id int) (bool, error)
	TraceEvidenceTypeExists(ctx context.Context, id int) (bool, error)
}

type historyRepo interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements evidence operations. Evidence may only be attached to
// a case file while it is in Draft; after submission the item inventory is
// frozen along with the rest of the case file.
type Service struct {
	log      *slog.Logger
	evidence evidenceRepo
	trace    traceEvidenceRepo
	cases    caseFileRepo
	catalogs catalogRepo
	history  historyRepo
	tx       txManager
	now      func() time.Time
}

// NewService creates a new evidence service instance.
func NewService(
	logger *slog.Logger,
	evidence evidenceRepo,
	trace traceEvidenceRepo,
	cases caseFileRepo,
	catalogs catalogRepo,
	history historyRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "evidence"),
		evidence: evidence,
		trace:    trace,
		cases:    cases,
		catalogs: catalogs,
		history:  history,
		tx:       tx,
		now:      time.Now,
	}
}

// attachTarget loads the case file and checks that the actor may attach new
// records to it: CapCreateCase, technician ownership, and Draft status.
func (s *Service) attachTarget(ctx context.Context, caseFileID uuid.UUID, action string) (uuid.UUID, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if !role.Can(domain.CapCreateCase) {
		return uuid.Nil, domain.ErrForbidden
	}

	cf, err := s.cases.GetByID(ctx, caseFileID)
	if err != nil {
		return uuid.Nil, err
	}
	if role.EditsOwnOnly() && cf.CreatedBy != actorID {
		return uuid.Nil, domain.ErrForbidden
	}
	if cf.Status != domain.StatusDraft {
		return uuid.Nil, domain.NewStateError(cf.Status, action)
	}
	return actorID, nil
}

func requireUser(ctx context.Context) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

func strPtr(s string) *string { return &s }
