package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

func TestWithUser_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithUser(context.Background(), id, domain.RoleCoordinator)

	gotID, ok := UserIDFromCtx(ctx)
	if !ok || gotID != id {
		t.Errorf("UserIDFromCtx: got %v %v, want %v true", gotID, ok, id)
	}

	gotRole, ok := RoleFromCtx(ctx)
	if !ok || gotRole != domain.RoleCoordinator {
		t.Errorf("RoleFromCtx: got %v %v, want Coordinator true", gotRole, ok)
	}
}

func TestUserIDFromCtx_Missing(t *testing.T) {
	t.Parallel()

	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Error("empty context should not carry a user ID")
	}
	if _, ok := RoleFromCtx(context.Background()); ok {
		t.Error("empty context should not carry a role")
	}
}

func TestUserIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithUser(context.Background(), uuid.Nil, domain.RoleViewer)
	if _, ok := UserIDFromCtx(ctx); ok {
		t.Error("nil UUID should be treated as missing")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("got %q, want %q", got, "req-123")
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
