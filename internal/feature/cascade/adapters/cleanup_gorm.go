// Package adapters provides the GORM stores behind cascade cleanup.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/cascade/usecase"
	commententity "vidtube_backend/internal/feature/comment/domain/entity"
	like "vidtube_backend/internal/feature/like/domain/entity"
	playlistentity "vidtube_backend/internal/feature/playlist/domain/entity"
)

type cleanupGorm struct {
	db *gorm.DB
}

var _ usecase.CleanupStore = (*cleanupGorm)(nil)

func NewCleanupGorm(db *gorm.DB) *cleanupGorm {
	return &cleanupGorm{db: db}
}

func (r *cleanupGorm) DeleteLikes(ctx context.Context, kind like.TargetKind, targetID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Delete(&like.Like{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete %s likes: %w", kind, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteVideoComments removes the likes on the video's comments first, then
// the comments, in one transaction.
func (r *cleanupGorm) DeleteVideoComments(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&commententity.Comment{}).Select("id").Where("video_id = ?", videoID)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", like.TargetComment, commentIDs).
			Delete(&like.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete comment likes: %w", err)
		}
		res := tx.Where("video_id = ?", videoID).Delete(&commententity.Comment{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete comments: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func (r *cleanupGorm) DeleteWatchEntries(ctx context.Context, videoID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&authentity.WatchEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete watch history entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *cleanupGorm) DeletePlaylistEntries(ctx context.Context, videoID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&playlistentity.PlaylistVideo{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete playlist entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}
