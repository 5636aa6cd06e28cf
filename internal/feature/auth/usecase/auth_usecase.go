package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/shared/media"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	avatarFolder = "avatars"
	coverFolder  = "covers"
)

// dummyHash keeps Login's timing equal for unknown accounts.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create persists a new user. A taken username or email yields ErrUserExists.
	Create(ctx context.Context, user *entity.User) error
	// FindByID returns ErrUserNotFound when no user has id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByLogin returns the user whose username or email matches. Empty
	// arguments are ignored.
	FindByLogin(ctx context.Context, username, email string) (*entity.User, error)
	// Update sets the given columns and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.User, error)
}

// MediaStore uploads files and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, folder string, f *media.File) (string, error)
	Delete(ctx context.Context, url string) error
}

// SessionManager is implemented by TokenService.
type SessionManager interface {
	IssueSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error)
	Rotate(ctx context.Context, refreshToken string) (*entity.Session, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
}

// RegisterInput carries a registration form.
type RegisterInput struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	Avatar     *media.File
	CoverImage *media.File
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionManager
	media    MediaStore
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionManager, mediaStore MediaStore) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		media:    mediaStore,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates an account. The username is stored lower-cased.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = normalizeEmail(in.Email)
	if in.FullName == "" || in.Username == "" || in.Email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, ErrMissingFields
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	// Checked before uploading so a duplicate does not leave orphaned media.
	if _, err := u.users.FindByLogin(ctx, in.Username, in.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if in.Avatar == nil {
		return nil, ErrAvatarRequired
	}
	avatarURL, err := u.media.Upload(ctx, avatarFolder, in.Avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}
	var coverURL string
	if in.CoverImage != nil {
		if coverURL, err = u.media.Upload(ctx, coverFolder, in.CoverImage); err != nil {
			return nil, fmt.Errorf("failed to upload cover image: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Username:   in.Username,
		Email:      in.Email,
		FullName:   in.FullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時に新しいセッションを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, email, password string) (*entity.User, *entity.Session, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = normalizeEmail(email)
	if username == "" && email == "" {
		return nil, nil, ErrLoginRequired
	}

	user, err := u.users.FindByLogin(ctx, username, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := u.sessions.IssueSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Logout revokes the user's refresh token.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	return u.sessions.Revoke(ctx, userID)
}

// Refresh rotates a refresh token.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidSession
	}
	return u.sessions.Rotate(ctx, refreshToken)
}

// ChangePassword replaces the password after checking the old one.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = u.users.Update(ctx, userID, map[string]any{"password": string(hashed)})
	return err
}

// CurrentUser returns the authenticated user.
func (u *authUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateAccount changes the supplied fields only.
func (u *authUsecase) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*entity.User, error) {
	fields := map[string]any{}
	if v := strings.TrimSpace(fullName); v != "" {
		fields["full_name"] = v
	}
	if v := normalizeEmail(email); v != "" {
		fields["email"] = v
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}
	return u.users.Update(ctx, userID, fields)
}

// UpdateAvatar uploads a new avatar and deletes the previous one.
func (u *authUsecase) UpdateAvatar(ctx context.Context, userID uuid.UUID, f *media.File) (*entity.User, error) {
	return u.replaceImage(ctx, userID, f, avatarFolder, "avatar", func(user *entity.User) string { return user.Avatar })
}

// UpdateCoverImage uploads a new cover image and deletes the previous one.
func (u *authUsecase) UpdateCoverImage(ctx context.Context, userID uuid.UUID, f *media.File) (*entity.User, error) {
	return u.replaceImage(ctx, userID, f, coverFolder, "cover_image", func(user *entity.User) string { return user.CoverImage })
}

func (u *authUsecase) replaceImage(ctx context.Context, userID uuid.UUID, f *media.File, folder, column string, current func(*entity.User) string) (*entity.User, error) {
	if f == nil {
		return nil, ErrMissingFile
	}
	before, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := u.media.Upload(ctx, folder, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", folder, err)
	}
	after, err := u.users.Update(ctx, userID, map[string]any{column: url})
	if err != nil {
		return nil, err
	}
	if old := current(before); old != "" {
		// best effort: the account already points at the new file
		if err := u.media.Delete(ctx, old); err != nil {
			slog.Warn("failed to delete replaced media", "url", old, "error", err)
		}
	}
	return after, nil
}

// normalizeEmail trims and lower-cases an address so lookups and the unique
// index see one spelling.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
