// Package participant implements case file participant management.
package participant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

const maxParticipantRoleLen = 100

type participantRepo interface {
	Add(ctx context.Context, p domain.Participant) (domain.Participant, error)
	Remove(ctx context.Context, caseFileID, userID uuid.UUID) error
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Participant, error)
}

type caseFileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type historyRepo interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements participant operations. Assigning participants follows
// the same access rules as adding evidence: the case file must be in Draft
// and technicians may only touch their own cases. Removal stays possible
// until the case file is Approved.
type Service struct {
	log          *slog.Logger
	participants participantRepo
	cases        caseFileRepo
	users        userRepo
	history      historyRepo
	tx           txManager
	now          func() time.Time
}

// NewService creates a new participant service instance.
func NewService(
	logger *slog.Logger,
	participants participantRepo,
	cases caseFileRepo,
	users userRepo,
	history historyRepo,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "participant"),
		participants: participants,
		cases:        cases,
		users:        users,
		history:      history,
		tx:           tx,
		now:          time.Now,
	}
}

// AddInput names the user to assign and an optional case-specific role label.
type AddInput struct {
	CaseFileID      uuid.UUID
	UserID          uuid.UUID
	ParticipantRole *string
}

func (in *AddInput) Validate() error {
	if in.UserID == uuid.Nil {
		return domain.NewValidationError("user_id", "is required")
	}
	if in.ParticipantRole != nil {
		trimmed := strings.TrimSpace(*in.ParticipantRole)
		if trimmed == "" {
			in.ParticipantRole = nil
		} else if len(trimmed) > maxParticipantRoleLen {
			return domain.NewValidationError("participant_role", "must be at most 100 characters")
		} else {
			in.ParticipantRole = &trimmed
		}
	}
	return nil
}

// checkAccess loads the case file and checks that the actor may change its
// participant list. The status gate differs per operation: assigning needs
// a Draft case file, removal is blocked only once the case file is Approved.
func (s *Service) checkAccess(ctx context.Context, caseFileID uuid.UUID, action string, allowed func(domain.CaseStatus) bool) (uuid.UUID, error) {
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
	if !allowed(cf.Status) {
		return uuid.Nil, domain.NewStateError(cf.Status, action)
	}
	return actorID, nil
}

// Add assigns a user to a case file and records the PARTICIPANT_ADDED
// history entry in the same transaction.
func (s *Service) Add(ctx context.Context, input AddInput) (domain.Participant, error) {
	actorID, err := s.checkAccess(ctx, input.CaseFileID, "assign participants to",
		func(st domain.CaseStatus) bool { return st == domain.StatusDraft })
	if err != nil {
		return domain.Participant{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Participant{}, err
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("get user: %w", err)
	}

	now := s.now().UTC()
	p := domain.Participant{
		ID:              uuid.New(),
		CaseFileID:      input.CaseFileID,
		UserID:          user.ID,
		ParticipantRole: input.ParticipantRole,
		AddedBy:         actorID,
		AssignedAt:      now,
	}

	var added domain.Participant
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		added, err = s.participants.Add(ctx, p)
		if err != nil {
			return fmt.Errorf("add participant: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: input.CaseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeParticipantAdded,
			NewValue:   strPtr(user.ID.String()),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Participant{}, err
	}

	s.log.InfoContext(ctx, "participant assigned",
		slog.String("case_file_id", input.CaseFileID.String()),
		slog.String("user_id", user.ID.String()),
	)
	return added, nil
}

// Remove detaches a user from a case file and records the
// PARTICIPANT_REMOVED history entry in the same transaction.
func (s *Service) Remove(ctx context.Context, caseFileID, userID uuid.UUID) error {
	actorID, err := s.checkAccess(ctx, caseFileID, "remove participants from",
		func(st domain.CaseStatus) bool { return st != domain.StatusApproved })
	if err != nil {
		return err
	}

	now := s.now().UTC()
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.participants.Remove(ctx, caseFileID, userID); err != nil {
			return fmt.Errorf("remove participant: %w", err)
		}
		err := s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: caseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeParticipantRemoved,
			OldValue:   strPtr(userID.String()),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "participant removed",
		slog.String("case_file_id", caseFileID.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// List returns all participants of a case file in assignment order.
func (s *Service) List(ctx context.Context, caseFileID uuid.UUID) ([]domain.Participant, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.cases.GetByID(ctx, caseFileID); err != nil {
		return nil, fmt.Errorf("get case file: %w", err)
	}

	items, err := s.participants.ListByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return items, nil
}

func strPtr(s string) *string { return &s }
