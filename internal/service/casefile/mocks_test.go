package casefile

import (
	"context"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// caseFileRepoMock implements caseFileRepo with overridable function fields.
// A nil field means the call succeeds with zero values; Update echoes its
// argument so lifecycle tests can inspect the written row.
type caseFileRepoMock struct {
	CreateFunc        func(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error)
	UpdateFunc        func(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
	ListFunc          func(ctx context.Context, filter domain.CaseFileFilter) ([]domain.CaseFile, int, error)
	StatisticsFunc    func(ctx context.Context) (domain.CaseFileStatistics, error)
	CountEvidenceFunc func(ctx context.Context, id uuid.UUID) (int, error)

	updated []domain.CaseFile
	deleted []uuid.UUID
}

var _ caseFileRepo = (*caseFileRepoMock)(nil)

func (m *caseFileRepoMock) Create(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cf)
	}
	return cf, nil
}

func (m *caseFileRepoMock) Update(ctx context.Context, cf domain.CaseFile) (domain.CaseFile, error) {
	m.updated = append(m.updated, cf)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cf)
	}
	return cf, nil
}

func (m *caseFileRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *caseFileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.CaseFile{}, domain.ErrNotFound
}

func (m *caseFileRepoMock) List(ctx context.Context, filter domain.CaseFileFilter) ([]domain.CaseFile, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *caseFileRepoMock) Statistics(ctx context.Context) (domain.CaseFileStatistics, error) {
	if m.StatisticsFunc != nil {
		return m.StatisticsFunc(ctx)
	}
	return domain.CaseFileStatistics{}, nil
}

func (m *caseFileRepoMock) CountEvidence(ctx context.Context, id uuid.UUID) (int, error) {
	if m.CountEvidenceFunc != nil {
		return m.CountEvidenceFunc(ctx, id)
	}
	return 1, nil
}

// historyRepoMock records appended entries.
type historyRepoMock struct {
	AppendFunc         func(ctx context.Context, entry domain.HistoryEntry) error
	ListByCaseFileFunc func(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error)

	appended []domain.HistoryEntry
}

var _ historyRepo = (*historyRepoMock)(nil)

func (m *historyRepoMock) Append(ctx context.Context, entry domain.HistoryEntry) error {
	m.appended = append(m.appended, entry)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *historyRepoMock) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.HistoryEntry, error) {
	if m.ListByCaseFileFunc != nil {
		return m.ListByCaseFileFunc(ctx, caseFileID)
	}
	return nil, nil
}

// txManagerMock runs the callback directly, without a transaction.
type txManagerMock struct {
	calls int
}

var _ txManager = (*txManagerMock)(nil)

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
