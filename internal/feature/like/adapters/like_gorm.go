// Package adapters provides the GORM repository for likes.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	commententity "vidtube_backend/internal/feature/comment/domain/entity"
	"vidtube_backend/internal/feature/like/domain/entity"
	"vidtube_backend/internal/feature/like/usecase"
	tweetentity "vidtube_backend/internal/feature/tweet/domain/entity"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	platformdb "vidtube_backend/internal/platform/db"
)

type likeGorm struct {
	db *gorm.DB
}

var _ usecase.LikeRepository = (*likeGorm)(nil)

func NewLikeGorm(db *gorm.DB) *likeGorm {
	return &likeGorm{db: db}
}

// Create relies on the unique (owner, kind, target) index to reject duplicates.
func (r *likeGorm) Create(ctx context.Context, l *entity.Like) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *likeGorm) Delete(ctx context.Context, owner uuid.UUID, target entity.Target) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND target_kind = ? AND target_id = ?", owner, target.Kind, target.ID).
		Delete(&entity.Like{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrLikeNotFound
	}
	return nil
}

// TargetVisible counts the target row. Video targets are restricted to
// published videos or the actor's own.
func (r *likeGorm) TargetVisible(ctx context.Context, actor uuid.UUID, target entity.Target) (bool, error) {
	tx := r.db.WithContext(ctx)
	switch target.Kind {
	case entity.TargetVideo:
		tx = tx.Model(&videoentity.Video{}).Scopes(videoentity.VisibleScope(actor))
	case entity.TargetComment:
		tx = tx.Model(&commententity.Comment{})
	case entity.TargetTweet:
		tx = tx.Model(&tweetentity.Tweet{})
	default:
		return false, entity.ErrInvalidTarget
	}
	var n int64
	if err := tx.Where("id = ?", target.ID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", target.Kind, err)
	}
	return n > 0, nil
}
