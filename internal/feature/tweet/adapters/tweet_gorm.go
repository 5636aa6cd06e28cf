// Package adapters provides the GORM repository for tweets.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/feature/tweet/domain/entity"
	"vidtube_backend/internal/feature/tweet/usecase"
	platformdb "vidtube_backend/internal/platform/db"
)

type tweetGorm struct {
	db *gorm.DB
}

var _ usecase.TweetRepository = (*tweetGorm)(nil)

func NewTweetGorm(db *gorm.DB) *tweetGorm {
	return &tweetGorm{db: db}
}

func (r *tweetGorm) Create(ctx context.Context, t *entity.Tweet) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *tweetGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tweet, error) {
	var t entity.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrTweetNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *tweetGorm) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Tweet, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Tweet{}).Where("id = ?", id).Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *tweetGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Tweet{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete tweet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTweetNotFound
	}
	return nil
}
