package service

import (
	"testing"
	"time"

	apperrors "labstock/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens(42, "custodian")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "custodian", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one", time.Hour, time.Hour, zap.NewNop())
	verifier := NewJWTService("secret-two", time.Hour, time.Hour, zap.NewNop())

	access, _, err := issuer.GenerateTokens(1, "user")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
