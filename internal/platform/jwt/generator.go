package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube_backend/internal/shared/ident"
)

// TokenType distinguishes access tokens from refresh tokens. The two are
// signed with different secrets and carry the type in the "typ" claim.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Generator signs tokens of one type.
type Generator struct {
	secret     []byte
	expiration time.Duration
	typ        TokenType
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration, typ TokenType) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		typ:        typ,
	}
}

// TTL returns the lifetime of issued tokens.
func (g *Generator) TTL() time.Duration {
	return g.expiration
}

// GenerateToken creates a signed JWT token for userID.
// jti makes every token unique even when two are issued in the same second.
func (g *Generator) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(g.expiration).Unix(),
		"iat": now.Unix(),
		"jti": ident.New().String(),
		"typ": string(g.typ),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
