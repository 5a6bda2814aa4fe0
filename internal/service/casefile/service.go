// Package casefile implements the case file workflow: creation, editing,
// the submit/approve/reject lifecycle, deletion, history, and statistics.
package casefile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

// caseFileRepo defines the case file repository interface needed by this service.
type caseFileRepo interface {
	Create(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error)
	Update(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
	List(ctx context.Context, filter domain.CaseFileFilter) ([]domain.CaseFile, int, error)
	Statistics(ctx context.Context) (domain.CaseFileStatistics, error)
	CountEvidence(ctx context.Context, id uuid.UUID) (int, error)
}

// historyRepo defines the history repository interface needed by this service.
type historyRepo interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error)
}

// txManager runs a function within a database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements case file operations. Every mutation runs in a single
// transaction together with exactly one history append, so the audit trail
// can never drift from the case file state.
type Service struct {
	log     *slog.Logger
	cases   caseFileRepo
	history historyRepo
	tx      txManager
	now     func() time.Time
}

// NewService creates a new case file service instance.
func NewService(logger *slog.Logger, cases caseFileRepo, history historyRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "casefile"),
		cases:   cases,
		history: history,
		tx:      tx,
		now:     time.Now,
	}
}

// actor extracts the authenticated user from the context.
func actor(ctx context.Context) (uuid.UUID, domain.Role, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, 0, domain.ErrUnauthorized
	}
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok {
		return uuid.Nil, 0, domain.ErrUnauthorized
	}
	return id, role, nil
}

// canTouch checks edit-class access to an existing case file: the actor
// needs CapEditCase, and technicians may only touch case files they
// registered themselves.
func canTouch(cf domain.CaseFile, actorID uuid.UUID, role domain.Role) error {
	if !role.Can(domain.CapEditCase) {
		return domain.ErrForbidden
	}
	if role.EditsOwnOnly() && cf.CreatedBy != actorID {
		return domain.ErrForbidden
	}
	return nil
}

func strPtr(s string) *string { return &s }
