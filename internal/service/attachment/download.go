package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

// List returns the live attachments of a case file, newest first.
func (s *Service) List(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.cases.GetByID(ctx, caseFileID); err != nil {
		return nil, fmt.Errorf("get case file: %w", err)
	}

	items, err := s.attachments.ListByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return items, nil
}

// Download returns the attachment metadata and an open reader for its
// content. The caller owns closing the reader. Soft-deleted attachments are
// not downloadable.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (domain.Attachment, io.ReadCloser, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.Attachment{}, nil, domain.ErrUnauthorized
	}

	a, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return domain.Attachment{}, nil, fmt.Errorf("get attachment: %w", err)
	}
	if a.IsDeleted {
		return domain.Attachment{}, nil, fmt.Errorf("get attachment %s: %w", id, domain.ErrNotFound)
	}

	rc, err := s.files.Open(a.FilePath)
	if err != nil {
		return domain.Attachment{}, nil, fmt.Errorf("open attachment file: %w", err)
	}
	return a, rc, nil
}

// Delete soft-deletes an attachment, records the ATTACHMENT_DELETED history
// entry, and removes the physical file best-effort afterwards. A failed
// disk removal is logged but does not fail the operation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get attachment: %w", err)
	}
	if a.IsDeleted {
		return fmt.Errorf("delete attachment %s: %w", id, domain.ErrNotFound)
	}

	actorID, err := s.checkAccess(ctx, a.CaseFileID, "delete attachments from")
	if err != nil {
		return err
	}

	now := s.now().UTC()
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.attachments.SoftDelete(ctx, id, actorID, now); err != nil {
			return fmt.Errorf("soft delete attachment: %w", err)
		}
		err := s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: a.CaseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeAttachmentDeleted,
			OldValue:   strPtr(a.FileName),
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

	if err := s.files.Remove(a.FilePath); err != nil {
		s.log.WarnContext(ctx, "failed to remove attachment file",
			slog.String("attachment_id", id.String()),
			slog.String("path", a.FilePath),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "attachment deleted",
		slog.String("attachment_id", id.String()),
		slog.String("case_file_id", a.CaseFileID.String()),
	)
	return nil
}
