// Package attachment implements file attachments for case files: upload,
// listing, download, and soft deletion.
package attachment

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/config"
	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type attachmentRepo interface {
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
	ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error)
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, at time.Time) error
}

type caseFileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
}

type historyRepo interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// fileStore abstracts the on-disk attachment storage.
type fileStore interface {
	Save(src io.Reader, originalName string) (path string, written int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// Service implements attachment operations. The physical file is written
// before the database row; if the row (or its history entry) fails, the
// orphaned file is removed again.
type Service struct {
	log         *slog.Logger
	attachments attachmentRepo
	cases       caseFileRepo
	history     historyRepo
	tx          txManager
	files       fileStore
	cfg         config.UploadConfig
	allowed     map[string]bool
	now         func() time.Time
}

// NewService creates a new attachment service instance.
func NewService(
	logger *slog.Logger,
	attachments attachmentRepo,
	cases caseFileRepo,
	history historyRepo,
	tx txManager,
	files fileStore,
	cfg config.UploadConfig,
) *Service {
	allowed := make(map[string]bool)
	for _, mt := range strings.Split(cfg.AllowedMimeTypes, ",") {
		mt = strings.TrimSpace(mt)
		if mt != "" {
			allowed[mt] = true
		}
	}
	return &Service{
		log:         logger.With("service", "attachment"),
		attachments: attachments,
		cases:       cases,
		history:     history,
		tx:          tx,
		files:       files,
		cfg:         cfg,
		allowed:     allowed,
		now:         time.Now,
	}
}

// mimeAllowed reports whether the given MIME type passes the whitelist.
// An empty whitelist allows everything.
func (s *Service) mimeAllowed(mimeType string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	return s.allowed[mimeType]
}

// checkAccess loads the case file and checks that the actor may attach or
// delete files on it. Unlike evidence, attachments are allowed on any
// editable case file, not just Draft.
func (s *Service) checkAccess(ctx context.Context, caseFileID uuid.UUID, action string) (uuid.UUID, error) {
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
	if !cf.Status.Editable() {
		return uuid.Nil, domain.NewStateError(cf.Status, action)
	}
	return actorID, nil
}

func strPtr(s string) *string { return &s }
