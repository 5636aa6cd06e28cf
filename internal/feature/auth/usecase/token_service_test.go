package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube_backend/internal/feature/auth/domain/entity"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

// memTokenStore keeps users in a map and implements RefreshTokenStore.
type memTokenStore struct {
	users  map[uuid.UUID]*entity.User
	setErr error
}

func newMemTokenStore(ids ...uuid.UUID) *memTokenStore {
	s := &memTokenStore{users: map[uuid.UUID]*entity.User{}}
	for _, id := range ids {
		s.users[id] = &entity.User{ID: id}
	}
	return s
}

func (s *memTokenStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memTokenStore) SetRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	if s.setErr != nil {
		return s.setErr
	}
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if token == nil {
		u.RefreshToken = nil
		return nil
	}
	v := *token
	u.RefreshToken = &v
	return nil
}

func (s *memTokenStore) SwapRefreshToken(_ context.Context, id uuid.UUID, old, next string) (bool, error) {
	u, ok := s.users[id]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != old {
		return false, nil
	}
	u.RefreshToken = &next
	return true, nil
}

func newTestTokenService(store RefreshTokenStore) *TokenService {
	return NewTokenService(store,
		jwtmw.NewGenerator("access", time.Minute, jwtmw.TokenAccess),
		jwtmw.NewGenerator("refresh", time.Hour, jwtmw.TokenRefresh),
		jwtmw.NewVerifier("access", jwtmw.TokenAccess),
		jwtmw.NewVerifier("refresh", jwtmw.TokenRefresh),
	)
}

func TestTokenService_IssueSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := newMemTokenStore(userID)
	svc := newTestTokenService(store)

	sess, err := svc.IssueSession(context.Background(), userID)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, time.Minute, sess.AccessTTL)
	assert.Equal(t, time.Hour, sess.RefreshTTL)
	require.NotNil(t, store.users[userID].RefreshToken)
	assert.Equal(t, sess.RefreshToken, *store.users[userID].RefreshToken, "refresh token is persisted verbatim")

	got, err := svc.VerifyAccess(sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = svc.VerifyAccess(sess.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthenticated, "a refresh token is not an access token")
}

func TestTokenService_IssueSession_StoreFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := newMemTokenStore(userID)
	store.setErr = errors.New("database error")

	_, err := newTestTokenService(store).IssueSession(context.Background(), userID)
	assert.ErrorIs(t, err, store.setErr)
}

func TestTokenService_SecondLoginEndsFirstSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestTokenService(newMemTokenStore(userID))

	first, err := svc.IssueSession(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.IssueSession(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.Rotate(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestTokenService_Rotate(t *testing.T) {
	t.Parallel()

	t.Run("rotation replaces the token and forbids reuse", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		store := newMemTokenStore(userID)
		svc := newTestTokenService(store)
		original, err := svc.IssueSession(context.Background(), userID)
		require.NoError(t, err)

		rotated, err := svc.Rotate(context.Background(), original.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)
		assert.Equal(t, rotated.RefreshToken, *store.users[userID].RefreshToken)

		_, err = svc.Rotate(context.Background(), original.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidSession)

		_, err = svc.Rotate(context.Background(), rotated.RefreshToken)
		assert.NoError(t, err, "the newest token keeps working")
	})

	t.Run("revoked session", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := newTestTokenService(newMemTokenStore(userID))
		sess, err := svc.IssueSession(context.Background(), userID)
		require.NoError(t, err)
		require.NoError(t, svc.Revoke(context.Background(), userID))

		_, err = svc.Rotate(context.Background(), sess.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("invalid tokens", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := newTestTokenService(newMemTokenStore(userID))
		sess, err := svc.IssueSession(context.Background(), userID)
		require.NoError(t, err)

		forged, _ := jwtmw.NewGenerator("attacker", time.Hour, jwtmw.TokenRefresh).GenerateToken(userID)
		expired, _ := jwtmw.NewGenerator("refresh", -time.Minute, jwtmw.TokenRefresh).GenerateToken(userID)
		unknownUser, _ := jwtmw.NewGenerator("refresh", time.Hour, jwtmw.TokenRefresh).GenerateToken(uuid.New())

		for name, token := range map[string]string{
			"access token": sess.AccessToken,
			"forged":       forged,
			"expired":      expired,
			"deleted user": unknownUser,
			"garbage":      "garbage",
		} {
			_, err := svc.Rotate(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidSession, name)
		}
	})
}
