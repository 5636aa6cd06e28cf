package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/shared/media"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(user *entity.User) error
	FindByIDFunc    func(id uuid.UUID) (*entity.User, error)
	FindByLoginFunc func(username, email string) (*entity.User, error)
	UpdateFunc      func(id uuid.UUID, fields map[string]any) (*entity.User, error)
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByLogin(_ context.Context, username, email string) (*entity.User, error) {
	if m.FindByLoginFunc != nil {
		return m.FindByLoginFunc(username, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, fields)
	}
	return &entity.User{ID: id}, nil
}

// mockSessionManager is a mock implementation of SessionManager.
type mockSessionManager struct {
	IssueFunc  func(userID uuid.UUID) (*entity.Session, error)
	RotateFunc func(token string) (*entity.Session, error)
	RevokeFunc func(userID uuid.UUID) error
}

func (m *mockSessionManager) IssueSession(_ context.Context, userID uuid.UUID) (*entity.Session, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID)
	}
	return &entity.Session{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *mockSessionManager) Rotate(_ context.Context, token string) (*entity.Session, error) {
	if m.RotateFunc != nil {
		return m.RotateFunc(token)
	}
	return nil, ErrInvalidSession
}

func (m *mockSessionManager) Revoke(_ context.Context, userID uuid.UUID) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(userID)
	}
	return nil
}

// mockMediaStore records uploads and deletions.
type mockMediaStore struct {
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (m *mockMediaStore) Upload(_ context.Context, folder string, f *media.File) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	url := "http://media/" + folder + "/" + f.Filename
	m.uploaded = append(m.uploaded, url)
	return url, nil
}

func (m *mockMediaStore) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

func file(name string) *media.File {
	return &media.File{Filename: name, ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
}

func TestAuthUsecase_Register(t *testing.T) {
	valid := RegisterInput{
		FullName: "Alice",
		Username: "  Alice ",
		Email:    " Alice@Example.com ",
		Password: "password123",
		Avatar:   file("a.png"),
	}

	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{CreateFunc: func(u *entity.User) error { created = u; return nil }}
		store := &mockMediaStore{}
		uc := NewAuthUsecase(repo, &mockSessionManager{}, store)

		user, err := uc.Register(context.Background(), valid)

		require.NoError(t, err)
		assert.Same(t, created, user)
		assert.Equal(t, "alice", user.Username, "username is lower-cased and trimmed")
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "http://media/avatars/a.png", user.Avatar)
		assert.Empty(t, user.CoverImage)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	})

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		repo    *mockUserRepository
		wantErr error
	}{
		{"blank full name", func(in *RegisterInput) { in.FullName = "   " }, &mockUserRepository{}, ErrMissingFields},
		{"blank password", func(in *RegisterInput) { in.Password = "" }, &mockUserRepository{}, ErrMissingFields},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, &mockUserRepository{}, ErrWeakPassword},
		{"missing avatar", func(in *RegisterInput) { in.Avatar = nil }, &mockUserRepository{}, ErrAvatarRequired},
		{
			"existing user",
			func(*RegisterInput) {},
			&mockUserRepository{FindByLoginFunc: func(string, string) (*entity.User, error) { return &entity.User{}, nil }},
			ErrUserExists,
		},
		{
			"race on create",
			func(*RegisterInput) {},
			&mockUserRepository{CreateFunc: func(*entity.User) error { return ErrUserExists }},
			ErrUserExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			uc := NewAuthUsecase(tt.repo, &mockSessionManager{}, &mockMediaStore{})

			_, err := uc.Register(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("existing user is detected before upload", func(t *testing.T) {
		store := &mockMediaStore{}
		repo := &mockUserRepository{FindByLoginFunc: func(string, string) (*entity.User, error) { return &entity.User{}, nil }}
		uc := NewAuthUsecase(repo, &mockSessionManager{}, store)

		_, err := uc.Register(context.Background(), valid)

		assert.ErrorIs(t, err, ErrUserExists)
		assert.Empty(t, store.uploaded)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", Password: string(hashed)}

	repo := &mockUserRepository{
		FindByLoginFunc: func(username, email string) (*entity.User, error) {
			if username == testUser.Username || email == testUser.Email {
				return testUser, nil
			}
			return nil, ErrUserNotFound
		},
	}

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"by username, case insensitive", "ALICE", "", "password123", nil},
		{"by email", "", "alice@example.com", "password123", nil},
		{"by email, case insensitive", "", " Alice@Example.COM", "password123", nil},
		{"wrong password", "alice", "", "wrong-password", ErrInvalidCredentials},
		{"unknown user", "nobody", "", "password123", ErrInvalidCredentials},
		{"no login", "", "", "password123", ErrLoginRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var issuedFor uuid.UUID
			sessions := &mockSessionManager{IssueFunc: func(id uuid.UUID) (*entity.Session, error) {
				issuedFor = id
				return &entity.Session{AccessToken: "a", RefreshToken: "r"}, nil
			}}
			uc := NewAuthUsecase(repo, sessions, &mockMediaStore{})

			user, sess, err := uc.Login(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
				assert.Equal(t, uuid.Nil, issuedFor, "no session for a failed login")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUser.ID, user.ID)
			assert.Equal(t, "r", sess.RefreshToken)
			assert.Equal(t, testUser.ID, issuedFor)
		})
	}

	t.Run("repository failure is not reported as bad credentials", func(t *testing.T) {
		dbErr := errors.New("database error")
		failing := &mockUserRepository{FindByLoginFunc: func(string, string) (*entity.User, error) { return nil, dbErr }}
		uc := NewAuthUsecase(failing, &mockSessionManager{}, &mockMediaStore{})

		_, _, err := uc.Login(context.Background(), "alice", "", "password123")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	sessions := &mockSessionManager{RotateFunc: func(token string) (*entity.Session, error) {
		if token == "good" {
			return &entity.Session{AccessToken: "a2", RefreshToken: "r2"}, nil
		}
		return nil, ErrInvalidSession
	}}
	uc := NewAuthUsecase(&mockUserRepository{}, sessions, &mockMediaStore{})

	sess, err := uc.Refresh(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "r2", sess.RefreshToken)

	_, err = uc.Refresh(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	userID := uuid.New()

	tests := []struct {
		name        string
		oldPassword string
		newPassword string
		wantErr     error
		wantUpdate  bool
	}{
		{"success", "old-password", "new-password", nil, true},
		{"wrong old password", "not-it", "new-password", ErrWrongPassword, false},
		{"weak new password", "old-password", "short", ErrWeakPassword, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]any
			repo := &mockUserRepository{
				FindByIDFunc: func(uuid.UUID) (*entity.User, error) {
					return &entity.User{ID: userID, Password: string(hashed)}, nil
				},
				UpdateFunc: func(id uuid.UUID, f map[string]any) (*entity.User, error) {
					fields = f
					return &entity.User{ID: id}, nil
				},
			}
			uc := NewAuthUsecase(repo, &mockSessionManager{}, &mockMediaStore{})

			err := uc.ChangePassword(context.Background(), userID, tt.oldPassword, tt.newPassword)

			assert.ErrorIs(t, err, tt.wantErr)
			if !tt.wantUpdate {
				assert.Nil(t, fields)
				return
			}
			newHash, _ := fields["password"].(string)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte(tt.newPassword)))
		})
	}
}

func TestAuthUsecase_UpdateAccount(t *testing.T) {
	tests := []struct {
		name       string
		fullName   string
		email      string
		wantFields map[string]any
		wantErr    error
	}{
		{"both fields", "Alice", "a@example.com", map[string]any{"full_name": "Alice", "email": "a@example.com"}, nil},
		{"only full name", " Alice ", "", map[string]any{"full_name": "Alice"}, nil},
		{"email is lower-cased", "", " A@Example.com ", map[string]any{"email": "a@example.com"}, nil},
		{"nothing", " ", "", nil, ErrNothingToUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			repo := &mockUserRepository{UpdateFunc: func(id uuid.UUID, f map[string]any) (*entity.User, error) {
				got = f
				return &entity.User{ID: id}, nil
			}}
			uc := NewAuthUsecase(repo, &mockSessionManager{}, &mockMediaStore{})

			_, err := uc.UpdateAccount(context.Background(), uuid.New(), tt.fullName, tt.email)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestAuthUsecase_UpdateAvatar(t *testing.T) {
	userID := uuid.New()
	repo := &mockUserRepository{
		FindByIDFunc: func(uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: userID, Avatar: "http://media/avatars/old.png"}, nil
		},
		UpdateFunc: func(id uuid.UUID, f map[string]any) (*entity.User, error) {
			return &entity.User{ID: id, Avatar: f["avatar"].(string)}, nil
		},
	}
	store := &mockMediaStore{}
	uc := NewAuthUsecase(repo, &mockSessionManager{}, store)

	user, err := uc.UpdateAvatar(context.Background(), userID, file("new.png"))

	require.NoError(t, err)
	assert.Equal(t, "http://media/avatars/new.png", user.Avatar)
	assert.Equal(t, []string{"http://media/avatars/old.png"}, store.deleted)

	_, err = uc.UpdateCoverImage(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrMissingFile)
}
