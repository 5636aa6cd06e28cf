package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/tweet/domain/entity"
	"vidtube_backend/internal/shared/ownership"
)

// TweetRepository abstracts tweet persistence.
type TweetRepository interface {
	Create(ctx context.Context, t *entity.Tweet) error
	// FindByID returns ErrTweetNotFound when no tweet has id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tweet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cascader removes likes on a deleted tweet.
type Cascader interface {
	TweetDeleted(ctx context.Context, tweetID uuid.UUID) *cascade.Report
}

type tweetUsecase struct {
	tweets  TweetRepository
	cascade Cascader
}

func NewTweetUsecase(tweets TweetRepository, cascader Cascader) *tweetUsecase {
	return &tweetUsecase{tweets: tweets, cascade: cascader}
}

func (u *tweetUsecase) Create(ctx context.Context, actor uuid.UUID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	t := &entity.Tweet{Content: content, OwnerID: actor}
	if err := u.tweets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *tweetUsecase) Update(ctx context.Context, actor, id uuid.UUID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	t, err := u.tweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, t); err != nil {
		return nil, err
	}
	return u.tweets.UpdateContent(ctx, id, content)
}

// Delete removes a tweet owned by actor and then its likes.
func (u *tweetUsecase) Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error) {
	t, err := u.tweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, t); err != nil {
		return nil, err
	}
	if err := u.tweets.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u.cascade.TweetDeleted(ctx, id), nil
}
