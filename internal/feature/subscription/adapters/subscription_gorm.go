// Package adapters provides the GORM repository for subscriptions.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/subscription/domain/entity"
	"vidtube_backend/internal/feature/subscription/usecase"
	platformdb "vidtube_backend/internal/platform/db"
)

type subscriptionGorm struct {
	db *gorm.DB
}

var _ usecase.SubscriptionRepository = (*subscriptionGorm)(nil)

func NewSubscriptionGorm(db *gorm.DB) *subscriptionGorm {
	return &subscriptionGorm{db: db}
}

func (r *subscriptionGorm) Create(ctx context.Context, s *entity.Subscription) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionGorm) Delete(ctx context.Context, subscriber, channel uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriber, channel).
		Delete(&entity.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return nil
}

// ChannelExists reports whether a user with the id exists. Every user is a channel.
func (r *subscriptionGorm) ChannelExists(ctx context.Context, channel uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&authentity.User{}).Where("id = ?", channel).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up channel: %w", err)
	}
	return n > 0, nil
}
