package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/pkg/config"
)

func signToken(t *testing.T, secret string, expires time.Time) string {
	t.Helper()
	claims := &models.AccessClaims{
		UserID: "user-1",
		Role:   "registrar",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "test-secret"})
	token := signToken(t, "test-secret", time.Now().Add(time.Hour))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "registrar", claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "test-secret"})
	token := signToken(t, "test-secret", time.Now().Add(-time.Hour))

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "test-secret"})
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}
