package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube_backend/internal/feature/playlist/domain/entity"
	"vidtube_backend/internal/feature/playlist/usecase"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/platform/db/dbtest"
	"vidtube_backend/internal/shared/ident"
)

func TestPlaylistGorm_VideosKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewPlaylistGorm(dbtest.New(t))
	ctx := context.Background()
	owner := ident.New()

	p := &entity.Playlist{Name: "mix", Description: "d", OwnerID: owner}
	require.NoError(t, repo.Create(ctx, p))

	a, b, c := ident.New(), ident.New(), ident.New()
	for _, v := range []uuid.UUID{c, a, b, a} {
		require.NoError(t, repo.AddVideo(ctx, p.ID, v))
	}

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, a, b}, got.Videos, "re-adding a video keeps one entry in place")

	require.NoError(t, repo.RemoveVideo(ctx, p.ID, a))
	require.NoError(t, repo.RemoveVideo(ctx, p.ID, a), "removing an absent video is a no-op")
	got, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, b}, got.Videos)
}

func TestPlaylistGorm_ListByOwner(t *testing.T) {
	t.Parallel()

	repo := NewPlaylistGorm(dbtest.New(t))
	ctx := context.Background()
	owner := ident.New()

	empty, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := &entity.Playlist{Name: "one", Description: "d", OwnerID: owner}
	second := &entity.Playlist{Name: "two", Description: "d", OwnerID: owner}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &entity.Playlist{Name: "other", Description: "d", OwnerID: ident.New()}))
	video := ident.New()
	require.NoError(t, repo.AddVideo(ctx, second.ID, video))

	got, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Name)
	assert.Equal(t, []uuid.UUID{}, got[0].Videos)
	assert.Equal(t, []uuid.UUID{video}, got[1].Videos)
}

func TestPlaylistGorm_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewPlaylistGorm(db)
	ctx := context.Background()

	p := &entity.Playlist{Name: "old", Description: "d", OwnerID: ident.New()}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.AddVideo(ctx, p.ID, ident.New()))

	updated, err := repo.Update(ctx, p.ID, map[string]any{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "d", updated.Description)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, usecase.ErrPlaylistNotFound)
	var entries int64
	require.NoError(t, db.Model(&entity.PlaylistVideo{}).Count(&entries).Error)
	assert.Zero(t, entries)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), usecase.ErrPlaylistNotFound)
}

func TestPlaylistGorm_VideoVisible(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)
	repo := NewPlaylistGorm(db)
	ctx := context.Background()
	owner, other := ident.New(), ident.New()

	published := videoentity.Video{OwnerID: owner, Title: "p", VideoFile: "v", Thumbnail: "t", IsPublished: true}
	require.NoError(t, db.Create(&published).Error)
	draft := videoentity.Video{OwnerID: owner, Title: "d", VideoFile: "v", Thumbnail: "t"}
	require.NoError(t, db.Create(&draft).Error)

	tests := []struct {
		name  string
		actor uuid.UUID
		video uuid.UUID
		want  bool
	}{
		{"published", other, published.ID, true},
		{"draft of another user", other, draft.ID, false},
		{"own draft", owner, draft.ID, true},
		{"unknown", owner, ident.New(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.VideoVisible(ctx, tt.actor, tt.video)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
