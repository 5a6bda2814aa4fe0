package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// UploadInput describes an incoming file. Size is the declared length from
// the multipart header; the stored size is what was actually written.
type UploadInput struct {
	CaseFileID uuid.UUID
	FileName   string
	MimeType   string
	Size       int64
	Content    io.Reader
}

func (in *UploadInput) Validate(maxSize int64) error {
	var errs []domain.FieldError

	in.FileName = strings.TrimSpace(in.FileName)

	if in.FileName == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "is required"})
	}
	if in.Size <= 0 {
		errs = append(errs, domain.FieldError{Field: "file", Message: "is empty"})
	} else if in.Size > maxSize {
		errs = append(errs, domain.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("exceeds the maximum size of %d bytes", maxSize),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Upload stores the file on disk, creates the attachment row, and records
// the ATTACHMENT_ADDED history entry atomically. The physical file is
// removed again if the database part fails.
func (s *Service) Upload(ctx context.Context, input UploadInput) (domain.Attachment, error) {
	actorID, err := s.checkAccess(ctx, input.CaseFileID, "attach files to")
	if err != nil {
		return domain.Attachment{}, err
	}

	if err := input.Validate(s.cfg.MaxFileSize); err != nil {
		return domain.Attachment{}, err
	}
	if !s.mimeAllowed(input.MimeType) {
		return domain.Attachment{}, domain.NewValidationError("file", "file type is not allowed")
	}

	// Cap the read at the declared size plus one byte so a lying client
	// cannot stream past the limit.
	path, written, err := s.files.Save(io.LimitReader(input.Content, s.cfg.MaxFileSize+1), input.FileName)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("store file: %w", err)
	}
	if written > s.cfg.MaxFileSize {
		_ = s.files.Remove(path)
		return domain.Attachment{}, domain.NewValidationError("file",
			fmt.Sprintf("exceeds the maximum size of %d bytes", s.cfg.MaxFileSize))
	}

	now := s.now().UTC()
	a := domain.Attachment{
		ID:         uuid.New(),
		CaseFileID: input.CaseFileID,
		FileName:   input.FileName,
		FilePath:   path,
		FileSize:   written,
		MimeType:   input.MimeType,
		UploadedBy: actorID,
		UploadedAt: now,
	}

	var created domain.Attachment
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.attachments.Create(ctx, a)
		if err != nil {
			return fmt.Errorf("create attachment: %w", err)
		}
		err = s.history.Append(ctx, domain.HistoryEntry{
			ID:         uuid.New(),
			CaseFileID: input.CaseFileID,
			ChangedBy:  actorID,
			ChangeType: domain.ChangeAttachmentAdded,
			NewValue:   strPtr(input.FileName),
			ChangedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.log.ErrorContext(ctx, "failed to remove orphaned file",
				slog.String("path", path), slog.String("error", rmErr.Error()))
		}
		return domain.Attachment{}, err
	}

	s.log.InfoContext(ctx, "attachment uploaded",
		slog.String("attachment_id", created.ID.String()),
		slog.String("case_file_id", input.CaseFileID.String()),
		slog.Int64("size", written),
	)
	return created, nil
}
