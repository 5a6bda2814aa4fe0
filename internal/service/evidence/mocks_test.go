package evidence

import (
	"context"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

type evidenceRepoMock struct {
	CreateFunc         func(ctx context.Context, ev domain.Evidence) (domain.Evidence, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Evidence, error)
	ListByCaseFileFunc func(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error)

	created []domain.Evidence
}

var _ evidenceRepo = (*evidenceRepoMock)(nil)

func (m *evidenceRepoMock) Create(ctx context.Context, ev domain.Evidence) (domain.Evidence, error) {
	m.created = append(m.created, ev)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ev)
	}
	return ev, nil
}

func (m *evidenceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Evidence, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Evidence{}, domain.ErrNotFound
}

func (m *evidenceRepoMock) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error) {
	if m.ListByCaseFileFunc != nil {
		return m.ListByCaseFileFunc(ctx, caseFileID)
	}
	return nil, nil
}

type traceEvidenceRepoMock struct {
	CreateFunc         func(ctx context.Context, te domain.TraceEvidence) (domain.TraceEvidence, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error)
	ListByCaseFileFunc func(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error)
	ListFunc           func(ctx context.Context, filter domain.TraceEvidenceFilter) ([]domain.TraceEvidence, int, error)

	created []domain.TraceEvidence
}

var _ traceEvidenceRepo = (*traceEvidenceRepoMock)(nil)

func (m *traceEvidenceRepoMock) Create(ctx context.Context, te domain.TraceEvidence) (domain.TraceEvidence, error) {
	m.created = append(m.created, te)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, te)
	}
	return te, nil
}

func (m *traceEvidenceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.TraceEvidence, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.TraceEvidence{}, domain.ErrNotFound
}

func (m *traceEvidenceRepoMock) ListByCaseFile(ctx context.Context, caseFileID uuid.UUID) ([]domain.TraceEvidence, error) {
	if m.ListByCaseFileFunc != nil {
		return m.ListByCaseFileFunc(ctx, caseFileID)
	}
	return nil, nil
}

func (m *traceEvidenceRepoMock) List(ctx context.Context, filter domain.TraceEvidenceFilter) ([]domain.TraceEvidence, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type caseFileRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.CaseFile, error)
}

var _ caseFileRepo = (*caseFileRepoMock)(nil)

func (m *caseFileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.CaseFile{}, domain.ErrNotFound
}

// catalogRepoMock defaults to every type existing.
type catalogRepoMock struct {
	EvidenceTypeExistsFunc      func(ctx context.Context, id int) (bool, error)
	TraceEvidenceTypeExistsFunc func(ctx context.Context, id int) (bool, error)
}

var _ catalogRepo = (*catalogRepoMock)(nil)

func (m *catalogRepoMock) EvidenceTypeExists(ctx context.Context, id int) (bool, error) {
	if m.EvidenceTypeExistsFunc != nil {
		return m.EvidenceTypeExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *catalogRepoMock) TraceEvidenceTypeExists(ctx context.Context, id int) (bool, error) {
	if m.TraceEvidenceTypeExistsFunc != nil {
		return m.TraceEvidenceTypeExistsFunc(ctx, id)
	}
	return true, nil
}

type historyRepoMock struct {
	AppendFunc func(ctx context.Context, entry domain.HistoryEntry) error

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

type txManagerMock struct {
	calls int
}

var _ txManager = (*txManagerMock)(nil)

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
