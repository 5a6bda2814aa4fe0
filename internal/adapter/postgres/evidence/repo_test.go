package evidence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casetrace/casetrace-backend/internal/adapter/postgres/evidence"
	"github.com/casetrace/casetrace-backend/internal/adapter/postgres/testhelper"
	"github.com/casetrace/casetrace-backend/internal/domain"
)

func newRepo(t *testing.T) (*evidence.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return evidence.New(pool), pool
}

func buildEvidence(caseFileID, collectedBy uuid.UUID) domain.Evidence {
	now := time.Now().UTC().Truncate(time.Microsecond)
	loc := "evidence locker B3"
	return domain.Evidence{
		ID:             uuid.New(),
		CaseFileID:     caseFileID,
		EvidenceTypeID: 1,
		Description:    "Crowbar with paint transfer",
		Location:       &loc,
		CollectedBy:    collectedBy,
		CollectionDate: now.AddDate(0, 0, -1),
		CreatedAt:      now,
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool, domain.RoleTechnician)
	cf := testhelper.SeedCaseFile(t, pool, user.ID, domain.StatusDraft)

	input := buildEvidence(cf.ID, user.ID)

	got, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID != input.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, input.ID)
	}
	if got.EvidenceTypeName == "" {
		t.Error("EvidenceTypeName should be filled from the catalog join")
	}
	if got.CollectedByName == "" {
		t.Error("CollectedByName should be filled from the users join")
	}
	if got.Location == nil || *got.Location != *input.Location {
		t.Errorf("Location mismatch: got %v", got.Location)
	}
}

func TestRepo_Create_UnknownCaseFile(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	user := testhelper.SeedUser(t, pool, domain.RoleTechnician)

	input := buildEvidence(uuid.New(), user.ID)

	_, err := repo.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from foreign key violation, got: %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_ListByCaseFile(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool, domain.RoleTechnician)
	cf := testhelper.SeedCaseFile(t, pool, user.ID, domain.StatusDraft)
	otherCf := testhelper.SeedCaseFile(t, pool, user.ID, domain.StatusDraft)

	first := buildEvidence(cf.ID, user.ID)
	first.CollectionDate = time.Now().UTC().AddDate(0, 0, -3).Truncate(time.Microsecond)
	second := buildEvidence(cf.ID, user.ID)

	if _, err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	testhelper.SeedEvidence(t, pool, otherCf.ID, user.ID)

	items, err := repo.ListByCaseFile(ctx, cf.ID)
	if err != nil {
		t.Fatalf("ListByCaseFile: unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 evidence items, got %d", len(items))
	}
	if items[0].ID != first.ID {
		t.Errorf("expected earliest collection first, got %s", items[0].ID)
	}
}

func TestRepo_ListByCaseFile_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	user := testhelper.SeedUser(t, pool, domain.RoleTechnician)
	cf := testhelper.SeedCaseFile(t, pool, user.ID, domain.StatusDraft)

	items, err := repo.ListByCaseFile(context.Background(), cf.ID)
	if err != nil {
		t.Fatalf("ListByCaseFile: unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no evidence, got %d", len(items))
	}
}
