// Package adapters provides the GORM repository for playlists.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/playlist/domain/entity"
	"vidtube_backend/internal/feature/playlist/usecase"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	platformdb "vidtube_backend/internal/platform/db"
)

type playlistGorm struct {
	db *gorm.DB
}

var _ usecase.PlaylistRepository = (*playlistGorm)(nil)

func NewPlaylistGorm(db *gorm.DB) *playlistGorm {
	return &playlistGorm{db: db}
}

func (r *playlistGorm) Create(ctx context.Context, p *entity.Playlist) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *playlistGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	var p entity.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrPlaylistNotFound
		}
		return nil, err
	}
	if err := r.loadVideos(ctx, []*entity.Playlist{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playlistGorm) ListByOwner(ctx context.Context, owner uuid.UUID) ([]entity.Playlist, error) {
	var out []entity.Playlist
	if err := r.db.WithContext(ctx).Where("owner_id = ?", owner).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	ptrs := make([]*entity.Playlist, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := r.loadVideos(ctx, ptrs); err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Playlist{}
	}
	return out, nil
}

// loadVideos fills Videos in insertion order. Entry ids are time ordered.
func (r *playlistGorm) loadVideos(ctx context.Context, playlists []*entity.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*entity.Playlist, len(playlists))
	ids := make([]uuid.UUID, len(playlists))
	for i, p := range playlists {
		p.Videos = []uuid.UUID{}
		byID[p.ID] = p
		ids[i] = p.ID
	}

	var entries []entity.PlaylistVideo
	if err := r.db.WithContext(ctx).Where("playlist_id IN ?", ids).Order("id ASC").Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to load playlist videos: %w", err)
	}
	for _, e := range entries {
		p := byID[e.PlaylistID]
		p.Videos = append(p.Videos, e.VideoID)
	}
	return nil
}

func (r *playlistGorm) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Playlist, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Playlist{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *playlistGorm) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&entity.PlaylistVideo{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist videos: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&entity.Playlist{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete playlist: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPlaylistNotFound
		}
		return nil
	})
}

// AddVideo inserts the entry unless the pair already exists.
func (r *playlistGorm) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	entry := &entity.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "playlist_id"}, {Name: "video_id"}}, DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return nil
}

func (r *playlistGorm) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&entity.PlaylistVideo{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return nil
}

func (r *playlistGorm) VideoVisible(ctx context.Context, actor, videoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&videoentity.Video{}).
		Scopes(videoentity.VisibleScope(actor)).
		Where("id = ?", videoID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *playlistGorm) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, &authentity.User{}, userID)
}

func (r *playlistGorm) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
