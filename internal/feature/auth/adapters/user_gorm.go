// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/auth/usecase"
	platformdb "vidtube_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがリポジトリインターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.UserRepository    = (*userGorm)(nil)
	_ usecase.RefreshTokenStore = (*userGorm)(nil)
)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// ユーザー名またはメールアドレスが重複する場合、usecase.ErrUserExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByLogin returns the user matching username or email.
func (r *userGorm) FindByLogin(ctx context.Context, username, email string) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, usecase.ErrUserNotFound
	}
	tx := r.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		tx = tx.Where("username = ? OR email = ?", username, email)
	case username != "":
		tx = tx.Where("username = ?", username)
	default:
		tx = tx.Where("email = ?", email)
	}
	var u entity.User
	if err := tx.First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Update sets fields on the user and returns the fresh row.
func (r *userGorm) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.User, error) {
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		if platformdb.IsDuplicateKey(err) {
			return nil, usecase.ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return r.FindByID(ctx, id)
}

// SetRefreshToken overwrites the stored refresh token. nil clears it.
func (r *userGorm) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Update("refresh_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SwapRefreshToken replaces old with next in a single conditional update.
func (r *userGorm) SwapRefreshToken(ctx context.Context, userID uuid.UUID, old, next string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND refresh_token = ?", userID, old).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AppendWatchHistory records that userID watched videoID. Repeated views add
// repeated entries.
func (r *userGorm) AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	entry := &entity.WatchEntry{UserID: userID, VideoID: videoID}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if platformdb.IsNotFound(err) {
		return usecase.ErrUserNotFound
	}
	return err
}
