package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace-backend/internal/domain"
)

const testSecret = "test-secret-key-must-be-32-chars-long"

func newTestManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(testSecret, "casetrace-test", ttl)
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, domain.RoleCoordinator)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, gotRole, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, domain.RoleCoordinator, gotRole)
}

func TestJWTManager_ValidateAccessToken_Errors(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)
	userID := uuid.New()

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		_, _, err := m.ValidateAccessToken("")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, _, err := m.ValidateAccessToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		expired := newTestManager(-time.Minute)
		token, err := expired.GenerateAccessToken(userID, domain.RoleViewer)
		require.NoError(t, err)

		_, _, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		other := NewJWTManager(strings.Repeat("x", 32), "casetrace-test", time.Minute)
		token, err := other.GenerateAccessToken(userID, domain.RoleAdmin)
		require.NoError(t, err)

		_, _, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()

		other := NewJWTManager(testSecret, "someone-else", time.Minute)
		token, err := other.GenerateAccessToken(userID, domain.RoleAdmin)
		require.NoError(t, err)

		_, _, err = m.ValidateAccessToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "issuer")
	})
}

func TestJWTManager_GenerateRefreshToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)

	raw, hash, err := m.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken(raw))

	raw2, hash2, err := m.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}
