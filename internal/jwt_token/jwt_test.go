package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "custodian/pkg/domain-errors"
)

func newService() *JWTService {
	return NewJWTService("test-signing-key", "test-issuer", "test-audience")
}

func Test_GenerateAccessToken(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken("dpo@example.com", []string{"dpo"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dpo@example.com", claims.Subject)
	assert.Equal(t, []string{"dpo"}, claims.Roles)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := newService().ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken("dpo@example.com", nil, -time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, "token has expired", err.(*dErrors.Error).Message)
}

func Test_ValidateToken_WrongAudience(t *testing.T) {
	token, err := NewJWTService("test-signing-key", "test-issuer", "other").GenerateAccessToken("x", nil, time.Hour)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	token, err := NewJWTService("other-key", "test-issuer", "test-audience").GenerateAccessToken("x", nil, time.Hour)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Adapter(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken("ops", []string{"operator"}, time.Hour)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Actor)
	assert.Equal(t, []string{"operator"}, claims.Roles)
}
