package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/auth/domain/entity"
)

// TokenSigner signs tokens of one type.
type TokenSigner interface {
	GenerateToken(userID uuid.UUID) (string, error)
	TTL() time.Duration
}

// TokenVerifier validates tokens of one type and returns their subject.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// RefreshTokenStore persists the single valid refresh token of each user.
type RefreshTokenStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// SetRefreshToken overwrites the stored token. nil clears it.
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	// SwapRefreshToken replaces old with next only if old is still the stored
	// value. It reports whether the swap happened.
	SwapRefreshToken(ctx context.Context, userID uuid.UUID, old, next string) (bool, error)
}

// TokenService owns the access/refresh token lifecycle. Each account has at
// most one valid refresh token: issuing or rotating overwrites it and
// revoking clears it.
type TokenService struct {
	users           RefreshTokenStore
	access          TokenSigner
	refresh         TokenSigner
	accessVerifier  TokenVerifier
	refreshVerifier TokenVerifier
}

// NewTokenService wires signers and verifiers for both token types.
func NewTokenService(users RefreshTokenStore, access, refresh TokenSigner, accessVerifier, refreshVerifier TokenVerifier) *TokenService {
	return &TokenService{
		users:           users,
		access:          access,
		refresh:         refresh,
		accessVerifier:  accessVerifier,
		refreshVerifier: refreshVerifier,
	}
}

// IssueSession signs a new pair and persists the refresh token, replacing
// any earlier one. A second login therefore ends the first session.
func (s *TokenService) IssueSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	sess, err := s.sign(userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, userID, &sess.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return sess, nil
}

// VerifyAccess returns the user an access token was issued to.
func (s *TokenService) VerifyAccess(token string) (uuid.UUID, error) {
	userID, err := s.accessVerifier.Verify(token)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}

// Rotate exchanges a refresh token for a new pair. The presented token must
// be byte-equal to the stored one; the stored value is then replaced with a
// compare-and-swap so two concurrent rotations of the same token cannot both
// succeed.
func (s *TokenService) Rotate(ctx context.Context, presented string) (*entity.Session, error) {
	userID, err := s.refreshVerifier.Verify(presented)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(presented)) != 1 {
		return nil, ErrInvalidSession
	}

	sess, err := s.sign(userID)
	if err != nil {
		return nil, err
	}
	swapped, err := s.users.SwapRefreshToken(ctx, userID, presented, sess.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	if !swapped {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// Revoke clears the stored refresh token. Access tokens already issued stay
// valid until they expire.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *TokenService) sign(userID uuid.UUID) (*entity.Session, error) {
	access, err := s.access.GenerateToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.refresh.GenerateToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &entity.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.access.TTL(),
		RefreshTTL:   s.refresh.TTL(),
	}, nil
}
