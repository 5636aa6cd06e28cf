package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/subscription/domain/entity"
	"vidtube_backend/internal/feature/subscription/usecase"
	"vidtube_backend/internal/platform/db/dbtest"
	"vidtube_backend/internal/shared/ident"
)

func TestSubscriptionGorm(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewSubscriptionGorm(db)
	ctx := context.Background()

	channel := authentity.User{Username: "chan", Email: "chan@example.com", FullName: "Chan", Avatar: "a", Password: "x"}
	require.NoError(t, db.Create(&channel).Error)
	fan := ident.New()

	ok, err := repo.ChannelExists(ctx, channel.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.ChannelExists(ctx, fan)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, &entity.Subscription{SubscriberID: fan, ChannelID: channel.ID}))
	err = repo.Create(ctx, &entity.Subscription{SubscriberID: fan, ChannelID: channel.ID})
	assert.ErrorIs(t, err, usecase.ErrAlreadySubscribed)

	// the reverse direction is a different pair
	require.NoError(t, repo.Create(ctx, &entity.Subscription{SubscriberID: channel.ID, ChannelID: fan}))

	require.NoError(t, repo.Delete(ctx, fan, channel.ID))
	assert.ErrorIs(t, repo.Delete(ctx, fan, channel.ID), usecase.ErrSubscriptionNotFound)
}
