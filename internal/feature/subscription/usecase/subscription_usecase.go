package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/subscription/domain/entity"
)

// SubscriptionRepository abstracts subscription persistence.
type SubscriptionRepository interface {
	// Create returns ErrAlreadySubscribed when the pair exists.
	Create(ctx context.Context, s *entity.Subscription) error
	// Delete returns ErrSubscriptionNotFound when nothing was removed.
	Delete(ctx context.Context, subscriber, channel uuid.UUID) error
	ChannelExists(ctx context.Context, channel uuid.UUID) (bool, error)
}

// StatsInvalidator drops cached channel statistics.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, channelID uuid.UUID)
}

type subscriptionUsecase struct {
	subs  SubscriptionRepository
	stats StatsInvalidator
}

// NewSubscriptionUsecase wires the usecase. stats may be nil.
func NewSubscriptionUsecase(subs SubscriptionRepository, stats StatsInvalidator) *subscriptionUsecase {
	return &subscriptionUsecase{subs: subs, stats: stats}
}

// Subscribe makes actor a subscriber of channel.
func (u *subscriptionUsecase) Subscribe(ctx context.Context, actor, channel uuid.UUID) (*entity.Subscription, error) {
	if actor == channel {
		return nil, ErrSelfSubscription
	}
	ok, err := u.subs.ChannelExists(ctx, channel)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrChannelNotFound
	}

	s := &entity.Subscription{SubscriberID: actor, ChannelID: channel}
	if err := u.subs.Create(ctx, s); err != nil {
		return nil, err
	}
	u.invalidate(ctx, channel)
	return s, nil
}

func (u *subscriptionUsecase) Unsubscribe(ctx context.Context, actor, channel uuid.UUID) error {
	if err := u.subs.Delete(ctx, actor, channel); err != nil {
		return err
	}
	u.invalidate(ctx, channel)
	return nil
}

// Toggle subscribes when actor is not subscribed yet and unsubscribes
// otherwise. It reports the resulting state.
func (u *subscriptionUsecase) Toggle(ctx context.Context, actor, channel uuid.UUID) (bool, error) {
	err := u.Unsubscribe(ctx, actor, channel)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, ErrSubscriptionNotFound):
		return false, err
	}
	if _, err := u.Subscribe(ctx, actor, channel); err != nil {
		return false, err
	}
	return true, nil
}

func (u *subscriptionUsecase) invalidate(ctx context.Context, channel uuid.UUID) {
	if u.stats != nil {
		u.stats.Invalidate(ctx, channel)
	}
}
