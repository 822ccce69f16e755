package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "credit-ml-test",
		Expiration: 1 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "x"})
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleAnalyst, RoleAuditor})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(RoleAnalyst))
	assert.True(t, claims.HasRole(RoleAuditor))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.Equal(t, "credit-ml-test", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(t)

	other, err := NewJWTService(JWTConfig{
		Secret:     "different-secret",
		Issuer:     "credit-ml-test",
		Expiration: 1 * time.Hour,
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), []string{RoleAPIClient})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "credit-ml-test",
		Expiration: -1 * time.Minute,
	})
	require.NoError(t, err)

	// Expiration <= 0 falls back to the one hour default, so build a service
	// that actually issues already-expired tokens via a tiny expiry window.
	svc.config.Expiration = -1 * time.Minute
	token, err := svc.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
