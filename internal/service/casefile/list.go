package casefile

import (
	"context"
	"fmt"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// ListResult is one page of case files plus the total match count.
type ListResult struct {
	Items    []domain.CaseFile
	Total    int
	Page     int
	PageSize int
}

// List returns a filtered, paginated page of case files ordered by
// registration time, newest first.
func (s *Service) List(ctx context.Context, filter domain.CaseFileFilter) (ListResult, error) {
	if _, _, err := actor(ctx); err != nil {
		return ListResult{}, err
	}

	filter.Normalize()

	items, total, err := s.cases.List(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("list case files: %w", err)
	}

	return ListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Statistics returns dashboard counts over all case files.
func (s *Service) Statistics(ctx context.Context) (domain.CaseFileStatistics, error) {
	if _, _, err := actor(ctx); err != nil {
		return domain.CaseFileStatistics{}, err
	}

	stats, err := s.cases.Statistics(ctx)
	if err != nil {
		return domain.CaseFileStatistics{}, fmt.Errorf("case file statistics: %w", err)
	}
	return stats, nil
}
