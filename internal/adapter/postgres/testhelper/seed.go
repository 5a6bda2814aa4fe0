package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active user with the given role. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	username := "user-" + suffix
	user := domain.User{
		ID:           uuid.New(),
		Username:     &username,
		Email:        "user-" + suffix + "@example.com",
		PasswordHash: "$2a$10$000000000000000000000000000000000000000000000000000000",
		FirstName:    "Test",
		LastName:     "User " + suffix,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, first_name, last_name, role_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, int(user.Role), user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedCaseFile creates a case file in the given status, owned by createdBy.
// For StatusRejected a rejection reason is set to satisfy the table constraint.
func SeedCaseFile(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID, status domain.CaseStatus) domain.CaseFile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	cf := domain.CaseFile{
		ID:           uuid.New(),
		CaseNumber:   "CF-" + suffix,
		Title:        "Case " + suffix,
		Description:  "Seeded case file " + suffix,
		Status:       status,
		IncidentDate: now.AddDate(0, 0, -1),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == domain.StatusRejected {
		reason := "seeded rejection"
		cf.RejectionReason = &reason
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO case_files (id, case_number, title, description, status_id, incident_date, created_by, rejection_reason, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		cf.ID, cf.CaseNumber, cf.Title, cf.Description, int(cf.Status),
		cf.IncidentDate, cf.CreatedBy, cf.RejectionReason, cf.CreatedAt, cf.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCaseFile insert: %v", err)
	}

	return cf
}

// SeedEvidence creates an evidence item on the given case file.
func SeedEvidence(t *testing.T, pool *pgxpool.Pool, caseFileID, collectedBy uuid.UUID) domain.Evidence {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ev := domain.Evidence{
		ID:             uuid.New(),
		CaseFileID:     caseFileID,
		EvidenceTypeID: 1,
		Description:    "Seeded evidence " + suffix,
		CollectedBy:    collectedBy,
		CollectionDate: now.AddDate(0, 0, -1),
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO evidence (id, case_file_id, evidence_type_id, description, collected_by, collection_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID, ev.CaseFileID, ev.EvidenceTypeID, ev.Description,
		ev.CollectedBy, ev.CollectionDate, ev.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvidence insert: %v", err)
	}

	return ev
}

// SeedTraceEvidence inserts a trace evidence row attached to the given case file.
func SeedTraceEvidence(t *testing.T, pool *pgxpool.Pool, caseFileID, collectedBy uuid.UUID) domain.TraceEvidence {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	te := domain.TraceEvidence{
		ID:             uuid.New(),
		CaseFileID:     caseFileID,
		EvidenceNumber: "TE-" + suffix,
		TypeID:         1,
		Description:    "Seeded trace evidence " + suffix,
		CollectedBy:    collectedBy,
		CollectedAt:    now.AddDate(0, 0, -1),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO trace_evidence (id, case_file_id, evidence_number, type_id, description, collected_by, collected_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		te.ID, te.CaseFileID, te.EvidenceNumber, te.TypeID, te.Description,
		te.CollectedBy, te.CollectedAt, te.CreatedAt, te.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTraceEvidence insert: %v", err)
	}

	return te
}

// SeedHistoryEntry appends a history row for the given case file.
func SeedHistoryEntry(t *testing.T, pool *pgxpool.Pool, caseFileID, changedBy uuid.UUID, changeType domain.ChangeType, at time.Time) domain.HistoryEntry {
	t.Helper()
	ctx := context.Background()

	entry := domain.HistoryEntry{
		ID:         uuid.New(),
		CaseFileID: caseFileID,
		ChangedBy:  changedBy,
		ChangeType: changeType,
		ChangedAt:  at.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO case_file_history (id, case_file_id, changed_by, change_type, changed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.CaseFileID, entry.ChangedBy, string(entry.ChangeType), entry.ChangedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHistoryEntry insert: %v", err)
	}

	return entry
}
