package evidence

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/pkg/ctxutil"
)

type fixture struct {
	evidence *evidenceRepoMock
	trace    *traceEvidenceRepoMock
	cases    *caseFileRepoMock
	catalogs *catalogRepoMock
	history  *historyRepoMock
	tx       *txManagerMock
	svc      *Service
}

func newFixture(cf domain.CaseFile) *fixture {
	f := &fixture{
		evidence: &evidenceRepoMock{},
		trace:    &traceEvidenceRepoMock{},
		catalogs: &catalogRepoMock{},
		history:  &historyRepoMock{},
		tx:       &txManagerMock{},
	}
	f.cases = &caseFileRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.CaseFile, error) {
			if id == cf.ID {
				return cf, nil
			}
			return domain.CaseFile{}, domain.ErrNotFound
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(logger, f.evidence, f.trace, f.cases, f.catalogs, f.history, f.tx)
	f.svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func draftCase(createdBy uuid.UUID) domain.CaseFile {
	return domain.CaseFile{
		ID:        uuid.New(),
		Status:    domain.StatusDraft,
		CreatedBy: createdBy,
	}
}

func validAddInput(caseFileID uuid.UUID) AddInput {
	return AddInput{
		CaseFileID:     caseFileID,
		EvidenceTypeID: 2,
		Description:    "Crowbar found near loading dock",
		CollectionDate: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func validAddTraceInput(caseFileID uuid.UUID) AddTraceInput {
	return AddTraceInput{
		CaseFileID:     caseFileID,
		EvidenceNumber: "TE-001",
		TypeID:         3,
		Description:    "Blue cotton fiber from door frame",
		CollectedAt:    time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestService_Add(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)
	f := newFixture(cf)
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleTechnician)

	ev, err := f.svc.Add(ctx, validAddInput(cf.ID))
	require.NoError(t, err)

	assert.Equal(t, cf.ID, ev.CaseFileID)
	assert.Equal(t, actorID, ev.CollectedBy)
	assert.Equal(t, 1, f.tx.calls)

	require.Len(t, f.history.appended, 1)
	entry := f.history.appended[0]
	assert.Equal(t, domain.ChangeEvidenceAdded, entry.ChangeType)
	assert.Equal(t, cf.ID, entry.CaseFileID)
}

func TestService_Add_Denied(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	tests := []struct {
		name    string
		role    domain.Role
		status  domain.CaseStatus
		asOwner bool
	}{
		{"viewer cannot add", domain.RoleViewer, domain.StatusDraft, true},
		{"technician cannot add to others case", domain.RoleTechnician, domain.StatusDraft, false},
		{"under review is frozen", domain.RoleCoordinator, domain.StatusUnderReview, true},
		{"approved is frozen", domain.RoleAdmin, domain.StatusApproved, true},
		{"rejected is frozen", domain.RoleAdmin, domain.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			actorID := uuid.New()
			createdBy := owner
			if tt.asOwner {
				createdBy = actorID
			}
			cf := draftCase(createdBy)
			cf.Status = tt.status
			f := newFixture(cf)
			ctx := ctxutil.WithUser(context.Background(), actorID, tt.role)

			_, err := f.svc.Add(ctx, validAddInput(cf.ID))
			assert.ErrorIs(t, err, domain.ErrForbidden)
			assert.Empty(t, f.evidence.created)
		})
	}
}

func TestService_Add_UnknownType(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)
	f := newFixture(cf)
	f.catalogs.EvidenceTypeExistsFunc = func(ctx context.Context, id int) (bool, error) {
		return false, nil
	}
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleTechnician)

	_, err := f.svc.Add(ctx, validAddInput(cf.ID))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Add_CaseNotFound(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	f := newFixture(draftCase(actorID))
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleTechnician)

	_, err := f.svc.Add(ctx, validAddInput(uuid.New()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_AddTrace(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)
	f := newFixture(cf)
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleTechnician)

	te, err := f.svc.AddTrace(ctx, validAddTraceInput(cf.ID))
	require.NoError(t, err)

	assert.Equal(t, "TE-001", te.EvidenceNumber)
	assert.Equal(t, actorID, te.CollectedBy)

	require.Len(t, f.history.appended, 1)
	entry := f.history.appended[0]
	assert.Equal(t, domain.ChangeTraceEvidenceAdded, entry.ChangeType)
	require.NotNil(t, entry.NewValue)
	assert.Equal(t, "TE-001", *entry.NewValue)
}

func TestService_AddTrace_Validation(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)

	tests := []struct {
		name   string
		mutate func(in *AddTraceInput)
	}{
		{"missing evidence number", func(in *AddTraceInput) { in.EvidenceNumber = " " }},
		{"missing type", func(in *AddTraceInput) { in.TypeID = 0 }},
		{"missing description", func(in *AddTraceInput) { in.Description = "" }},
		{"negative weight", func(in *AddTraceInput) { w := -0.5; in.Weight = &w }},
		{"missing collected at", func(in *AddTraceInput) { in.CollectedAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(cf)
			ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleCoordinator)

			in := validAddTraceInput(cf.ID)
			tt.mutate(&in)

			_, err := f.svc.AddTrace(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_AddTrace_DuplicateNumber(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)
	f := newFixture(cf)
	f.trace.CreateFunc = func(ctx context.Context, te domain.TraceEvidence) (domain.TraceEvidence, error) {
		return domain.TraceEvidence{}, domain.ErrAlreadyExists
	}
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleTechnician)

	_, err := f.svc.AddTrace(ctx, validAddTraceInput(cf.ID))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_ListByCaseFile(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	cf := draftCase(actorID)
	f := newFixture(cf)
	f.evidence.ListByCaseFileFunc = func(ctx context.Context, caseFileID uuid.UUID) ([]domain.Evidence, error) {
		return []domain.Evidence{{CaseFileID: caseFileID}}, nil
	}
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleViewer)

	items, err := f.svc.ListByCaseFile(ctx, cf.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = f.svc.ListByCaseFile(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListTrace_NormalizesPagination(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	f := newFixture(draftCase(actorID))
	var gotFilter domain.TraceEvidenceFilter
	f.trace.ListFunc = func(ctx context.Context, filter domain.TraceEvidenceFilter) ([]domain.TraceEvidence, int, error) {
		gotFilter = filter
		return []domain.TraceEvidence{{}}, 7, nil
	}
	ctx := ctxutil.WithUser(context.Background(), actorID, domain.RoleViewer)

	result, err := f.svc.ListTrace(ctx, domain.TraceEvidenceFilter{Page: 0, PageSize: -1})
	require.NoError(t, err)

	assert.Equal(t, 1, gotFilter.Page)
	assert.Equal(t, 10, gotFilter.PageSize)
	assert.Equal(t, 7, result.Total)
}

func TestService_Get_Unauthenticated(t *testing.T) {
	t.Parallel()

	f := newFixture(draftCase(uuid.New()))

	_, err := f.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.GetTrace(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
