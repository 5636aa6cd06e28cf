package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/playlist/domain/entity"
	"vidtube_backend/internal/shared/ownership"
)

// PlaylistRepository abstracts playlist persistence. Returned playlists carry
// their video ids in insertion order.
type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	// FindByID returns ErrPlaylistNotFound when no playlist has id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]entity.Playlist, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Playlist, error)
	// Delete removes the playlist together with its entries.
	Delete(ctx context.Context, id uuid.UUID) error
	// AddVideo is idempotent.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	// RemoveVideo succeeds when the video is not in the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	// VideoVisible reports whether the video exists and actor may see it.
	VideoVisible(ctx context.Context, actor, videoID uuid.UUID) (bool, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type playlistUsecase struct {
	playlists PlaylistRepository
}

func NewPlaylistUsecase(playlists PlaylistRepository) *playlistUsecase {
	return &playlistUsecase{playlists: playlists}
}

func (u *playlistUsecase) Create(ctx context.Context, actor uuid.UUID, name, description string) (*entity.Playlist, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, ErrMissingFields
	}
	p := &entity.Playlist{Name: name, Description: description, OwnerID: actor, Videos: []uuid.UUID{}}
	if err := u.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *playlistUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	return u.playlists.FindByID(ctx, id)
}

// ListByUser returns every playlist owned by userID.
func (u *playlistUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Playlist, error) {
	ok, err := u.playlists.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.playlists.ListByOwner(ctx, userID)
}

// Update changes the supplied non-blank fields of a playlist owned by actor.
func (u *playlistUsecase) Update(ctx context.Context, actor, id uuid.UUID, name, description *string) (*entity.Playlist, error) {
	fields := map[string]any{}
	if name != nil && strings.TrimSpace(*name) != "" {
		fields["name"] = strings.TrimSpace(*name)
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		fields["description"] = strings.TrimSpace(*description)
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}
	if _, err := u.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return u.playlists.Update(ctx, id, fields)
}

func (u *playlistUsecase) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	return u.playlists.Delete(ctx, id)
}

// AddVideo adds videoID to the playlist. Adding a video twice keeps one entry.
func (u *playlistUsecase) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*entity.Playlist, error) {
	p, err := u.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := u.requireVideo(ctx, actor, videoID); err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, p); err != nil {
		return nil, err
	}
	if p.Contains(videoID) {
		return p, nil
	}
	if err := u.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return u.playlists.FindByID(ctx, playlistID)
}

// RemoveVideo removes videoID from the playlist. The video must exist;
// removing one that is not in the playlist leaves it unchanged. A listed video
// can always be removed, even after its owner unpublished it.
func (u *playlistUsecase) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*entity.Playlist, error) {
	p, err := u.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	listed := p.Contains(videoID)
	if !listed {
		if err := u.requireVideo(ctx, actor, videoID); err != nil {
			return nil, err
		}
	}
	if err := ownership.Authorize(actor, p); err != nil {
		return nil, err
	}
	if !listed {
		return p, nil
	}
	if err := u.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return u.playlists.FindByID(ctx, playlistID)
}

func (u *playlistUsecase) requireVideo(ctx context.Context, actor, videoID uuid.UUID) error {
	ok, err := u.playlists.VideoVisible(ctx, actor, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVideoNotFound
	}
	return nil
}

func (u *playlistUsecase) owned(ctx context.Context, actor, id uuid.UUID) (*entity.Playlist, error) {
	p, err := u.playlists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, p); err != nil {
		return nil, err
	}
	return p, nil
}
