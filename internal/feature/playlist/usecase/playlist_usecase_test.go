package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube_backend/internal/feature/playlist/domain/entity"
	"vidtube_backend/internal/shared/ident"
	"vidtube_backend/internal/shared/ownership"
)

// memPlaylists is an in-memory PlaylistRepository.
type memPlaylists struct {
	rows   map[uuid.UUID]*entity.Playlist
	videos map[uuid.UUID]bool
	users  map[uuid.UUID]bool
	writes int
}

func newMemPlaylists() *memPlaylists {
	return &memPlaylists{rows: map[uuid.UUID]*entity.Playlist{}, videos: map[uuid.UUID]bool{}, users: map[uuid.UUID]bool{}}
}

func (m *memPlaylists) Create(_ context.Context, p *entity.Playlist) error {
	p.ID = ident.New()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPlaylists) FindByID(_ context.Context, id uuid.UUID) (*entity.Playlist, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	cp := *p
	cp.Videos = append([]uuid.UUID{}, p.Videos...)
	return &cp, nil
}

func (m *memPlaylists) ListByOwner(_ context.Context, owner uuid.UUID) ([]entity.Playlist, error) {
	out := []entity.Playlist{}
	for _, p := range m.rows {
		if p.OwnerID == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPlaylists) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Playlist, error) {
	m.writes++
	if v, ok := fields["name"]; ok {
		m.rows[id].Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		m.rows[id].Description = v.(string)
	}
	return m.FindByID(ctx, id)
}

func (m *memPlaylists) Delete(_ context.Context, id uuid.UUID) error {
	m.writes++
	delete(m.rows, id)
	return nil
}

func (m *memPlaylists) AddVideo(_ context.Context, playlistID, videoID uuid.UUID) error {
	m.writes++
	m.rows[playlistID].Videos = append(m.rows[playlistID].Videos, videoID)
	return nil
}

func (m *memPlaylists) RemoveVideo(_ context.Context, playlistID, videoID uuid.UUID) error {
	m.writes++
	p := m.rows[playlistID]
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return nil
}

func (m *memPlaylists) VideoVisible(_ context.Context, _, id uuid.UUID) (bool, error) {
	return m.videos[id], nil
}

func (m *memPlaylists) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.users[id], nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		plName      string
		description string
		wantErr     error
	}{
		{"valid", " Road trip ", "songs", nil},
		{"blank name", " ", "songs", ErrMissingFields},
		{"blank description", "Road trip", "", ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewPlaylistUsecase(newMemPlaylists())
			actor := ident.New()

			p, err := uc.Create(context.Background(), actor, tt.plName, tt.description)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Road trip", p.Name)
			assert.Equal(t, actor, p.OwnerID)
			assert.NotNil(t, p.Videos)
		})
	}
}

func TestAddAndRemoveVideo(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	owner := ident.New()
	v1, v2 := ident.New(), ident.New()
	repo.videos[v1], repo.videos[v2] = true, true

	p, err := uc.Create(ctx, owner, "mix", "d")
	require.NoError(t, err)

	p, err = uc.AddVideo(ctx, owner, p.ID, v1)
	require.NoError(t, err)
	p, err = uc.AddVideo(ctx, owner, p.ID, v2)
	require.NoError(t, err)
	writes := repo.writes
	p, err = uc.AddVideo(ctx, owner, p.ID, v1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{v1, v2}, p.Videos, "add is a set union")
	assert.Equal(t, writes, repo.writes)

	p, err = uc.RemoveVideo(ctx, owner, p.ID, v1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{v2}, p.Videos)

	writes = repo.writes
	p, err = uc.RemoveVideo(ctx, owner, p.ID, v1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{v2}, p.Videos, "removing an absent video is a no-op")
	assert.Equal(t, writes, repo.writes)
}

func TestAddVideo_Errors(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	owner := ident.New()
	video := ident.New()
	repo.videos[video] = true
	p, err := uc.Create(ctx, owner, "mix", "d")
	require.NoError(t, err)

	_, err = uc.AddVideo(ctx, owner, ident.New(), video)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
	_, err = uc.AddVideo(ctx, owner, p.ID, ident.New())
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = uc.AddVideo(ctx, ident.New(), p.ID, video)
	assert.ErrorIs(t, err, ownership.ErrNotOwner)
	assert.Zero(t, repo.writes)
}

func TestRemoveVideo_Errors(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	owner := ident.New()
	video := ident.New()
	repo.videos[video] = true
	p, err := uc.Create(ctx, owner, "mix", "d")
	require.NoError(t, err)
	_, err = uc.AddVideo(ctx, owner, p.ID, video)
	require.NoError(t, err)
	writes := repo.writes

	tests := []struct {
		name       string
		actor      uuid.UUID
		playlistID uuid.UUID
		videoID    uuid.UUID
		wantErr    error
	}{
		{"unknown playlist", owner, ident.New(), video, ErrPlaylistNotFound},
		{"unknown video", owner, p.ID, ident.New(), ErrVideoNotFound},
		{"not the owner", ident.New(), p.ID, video, ownership.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RemoveVideo(ctx, tt.actor, tt.playlistID, tt.videoID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, writes, repo.writes)

	delete(repo.videos, video)
	got, err := uc.RemoveVideo(ctx, owner, p.ID, video)
	require.NoError(t, err, "a listed video can be removed after it is hidden")
	assert.Empty(t, got.Videos)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	owner := ident.New()
	p, err := uc.Create(ctx, owner, "old", "desc")
	require.NoError(t, err)

	blank, name := "  ", "new"

	_, err = uc.Update(ctx, owner, p.ID, nil, &blank)
	assert.ErrorIs(t, err, ErrNothingToUpdate)
	_, err = uc.Update(ctx, ident.New(), p.ID, &name, nil)
	assert.ErrorIs(t, err, ownership.ErrNotOwner)

	got, err := uc.Update(ctx, owner, p.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "desc", got.Description)
}

func TestListByUser(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	user := ident.New()
	repo.users[user] = true

	_, err := uc.ListByUser(ctx, ident.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := uc.ListByUser(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := newMemPlaylists()
	uc := NewPlaylistUsecase(repo)
	ctx := context.Background()
	owner := ident.New()
	p, err := uc.Create(ctx, owner, "n", "d")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, ident.New(), p.ID), ownership.ErrNotOwner)
	require.NoError(t, uc.Delete(ctx, owner, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, owner, p.ID), ErrPlaylistNotFound)
}
