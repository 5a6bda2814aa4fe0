// Package catalog exposes the fixed lookup tables to the API.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type catalogRepo interface {
	ListRoles(ctx context.Context) ([]domain.CatalogItem, error)
	ListCaseStatuses(ctx context.Context) ([]domain.CatalogItem, error)
	ListEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error)
	ListTraceEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error)
}

// Service serves the read-only catalogs.
type Service struct {
	log      *slog.Logger
	catalogs catalogRepo
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, catalogs catalogRepo) *Service {
	return &Service{
		log:      logger.With("service", "catalog"),
		catalogs: catalogs,
	}
}

func (s *Service) list(ctx context.Context, name string, fn func(context.Context) ([]domain.CatalogItem, error)) ([]domain.CatalogItem, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	items, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", name, err)
	}
	return items, nil
}

// Roles returns the role catalog.
func (s *Service) Roles(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.list(ctx, "roles", s.catalogs.ListRoles)
}

// CaseStatuses returns the case file status catalog.
func (s *Service) CaseStatuses(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.list(ctx, "case statuses", s.catalogs.ListCaseStatuses)
}

// EvidenceTypes returns the evidence type catalog.
func (s *Service) EvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.list(ctx, "evidence types", s.catalogs.ListEvidenceTypes)
}

// TraceEvidenceTypes returns the trace evidence type catalog.
func (s *Service) TraceEvidenceTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.list(ctx, "trace evidence types", s.catalogs.ListTraceEvidenceTypes)
}
