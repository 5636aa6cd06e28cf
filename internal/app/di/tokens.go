// Package di provides dependency injection factories for creating application components.
package di

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authadapters "vidtube_backend/internal/feature/auth/adapters"
	authusecase "vidtube_backend/internal/feature/auth/usecase"
	"vidtube_backend/internal/platform/config"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

// ErrMissingSecrets is returned when either token secret is empty.
var ErrMissingSecrets = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")

// NewTokenService signs access and refresh tokens with separate secrets.
func NewTokenService(cfg config.JWTConfig, db *gorm.DB) (*authusecase.TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecrets
	}
	return authusecase.NewTokenService(
		authadapters.NewUserGorm(db),
		jwtmw.NewGenerator(cfg.AccessSecret, cfg.AccessTTL, jwtmw.TokenAccess),
		jwtmw.NewGenerator(cfg.RefreshSecret, cfg.RefreshTTL, jwtmw.TokenRefresh),
		jwtmw.NewVerifier(cfg.AccessSecret, jwtmw.TokenAccess),
		jwtmw.NewVerifier(cfg.RefreshSecret, jwtmw.TokenRefresh),
	), nil
}

// AccessVerifier lets the auth middleware resolve the actor through the token
// service.
type AccessVerifier struct {
	Tokens *authusecase.TokenService
}

var _ jwtmw.TokenVerifier = AccessVerifier{}

func (v AccessVerifier) Verify(token string) (uuid.UUID, error) {
	return v.Tokens.VerifyAccess(token)
}
