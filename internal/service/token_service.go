package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/pkg/config"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

// TokenService validates access tokens issued by the identity service.
// Issuance and refresh are not this API's concern.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{secret: []byte(cfg.Secret)}
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *TokenService) ValidateToken(token string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
