package adapters

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commententity "vidtube_backend/internal/feature/comment/domain/entity"
	"vidtube_backend/internal/feature/like/domain/entity"
	"vidtube_backend/internal/feature/like/usecase"
	tweetentity "vidtube_backend/internal/feature/tweet/domain/entity"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/platform/db/dbtest"
	"vidtube_backend/internal/shared/ident"
)

func TestLikeGorm_CreateIsUniquePerEdge(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewLikeGorm(db)
	ctx := context.Background()
	owner, target := ident.New(), ident.New()

	require.NoError(t, repo.Create(ctx, &entity.Like{OwnerID: owner, TargetKind: entity.TargetVideo, TargetID: target}))
	err := repo.Create(ctx, &entity.Like{OwnerID: owner, TargetKind: entity.TargetVideo, TargetID: target})
	assert.ErrorIs(t, err, usecase.ErrAlreadyLiked)

	// the same id under another kind is a different edge
	require.NoError(t, repo.Create(ctx, &entity.Like{OwnerID: owner, TargetKind: entity.TargetComment, TargetID: target}))
}

func TestLikeGorm_ConcurrentLikesYieldOneRow(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewLikeGorm(db)
	owner, target := ident.New(), ident.New()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		conflicts int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), &entity.Like{OwnerID: owner, TargetKind: entity.TargetTweet, TargetID: target})
			if err != nil {
				mu.Lock()
				conflicts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, db.Model(&entity.Like{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 7, conflicts)
}

func TestLikeGorm_Delete(t *testing.T) {
	t.Parallel()

	repo := NewLikeGorm(dbtest.New(t))
	ctx := context.Background()
	owner := ident.New()
	target := entity.Target{Kind: entity.TargetTweet, ID: ident.New()}

	assert.ErrorIs(t, repo.Delete(ctx, owner, target), usecase.ErrLikeNotFound)
	require.NoError(t, repo.Create(ctx, &entity.Like{OwnerID: owner, TargetKind: target.Kind, TargetID: target.ID}))
	assert.ErrorIs(t, repo.Delete(ctx, ident.New(), target), usecase.ErrLikeNotFound, "another user's like is untouched")
	require.NoError(t, repo.Delete(ctx, owner, target))
}

func TestLikeGorm_TargetVisible(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewLikeGorm(db)
	ctx := context.Background()
	actor, owner := ident.New(), ident.New()

	video := videoentity.Video{OwnerID: owner, Title: "t", VideoFile: "v", Thumbnail: "t", IsPublished: true}
	require.NoError(t, db.Create(&video).Error)
	draft := videoentity.Video{OwnerID: owner, Title: "d", VideoFile: "v", Thumbnail: "t"}
	require.NoError(t, db.Create(&draft).Error)
	comment := commententity.Comment{Content: "c", VideoID: video.ID, OwnerID: ident.New()}
	require.NoError(t, db.Create(&comment).Error)
	tweet := tweetentity.Tweet{Content: "t", OwnerID: ident.New()}
	require.NoError(t, db.Create(&tweet).Error)

	tests := []struct {
		name   string
		actor  uuid.UUID
		target entity.Target
		want   bool
	}{
		{"video", actor, entity.Target{Kind: entity.TargetVideo, ID: video.ID}, true},
		{"comment", actor, entity.Target{Kind: entity.TargetComment, ID: comment.ID}, true},
		{"tweet", actor, entity.Target{Kind: entity.TargetTweet, ID: tweet.ID}, true},
		{"video id as tweet", actor, entity.Target{Kind: entity.TargetTweet, ID: video.ID}, false},
		{"unknown", actor, entity.Target{Kind: entity.TargetVideo, ID: ident.New()}, false},
		{"draft of another user", actor, entity.Target{Kind: entity.TargetVideo, ID: draft.ID}, false},
		{"own draft", owner, entity.Target{Kind: entity.TargetVideo, ID: draft.ID}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.TargetVisible(ctx, tt.actor, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := repo.TargetVisible(ctx, actor, entity.Target{Kind: "playlist", ID: video.ID})
	assert.ErrorIs(t, err, entity.ErrInvalidTarget)
}
