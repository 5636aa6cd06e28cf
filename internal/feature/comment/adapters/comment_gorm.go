// Package adapters provides the GORM repository for comments.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/feature/comment/domain/entity"
	"vidtube_backend/internal/feature/comment/usecase"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	platformdb "vidtube_backend/internal/platform/db"
)

type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

func NewCommentGorm(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

func (r *commentGorm) Create(ctx context.Context, c *entity.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *commentGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentGorm) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Comment, error) {
	res := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update comment: %w", res.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *commentGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Comment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCommentNotFound
	}
	return nil
}

func (r *commentGorm) VideoVisible(ctx context.Context, actor, videoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&videoentity.Video{}).
		Scopes(videoentity.VisibleScope(actor)).
		Where("id = ?", videoID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up video: %w", err)
	}
	return n > 0, nil
}
