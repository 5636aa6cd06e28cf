package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube_backend/internal/feature/like/domain/entity"
	"vidtube_backend/internal/shared/apperror"
	"vidtube_backend/internal/shared/ident"
)

type edge struct {
	owner  uuid.UUID
	target entity.Target
}

// memLikes is an in-memory LikeRepository that enforces edge uniqueness.
type memLikes struct {
	edges   map[edge]bool
	targets map[entity.Target]bool
}

func newMemLikes(targets ...entity.Target) *memLikes {
	m := &memLikes{edges: map[edge]bool{}, targets: map[entity.Target]bool{}}
	for _, t := range targets {
		m.targets[t] = true
	}
	return m
}

func (m *memLikes) Create(_ context.Context, l *entity.Like) error {
	e := edge{l.OwnerID, l.Target()}
	if m.edges[e] {
		return ErrAlreadyLiked
	}
	m.edges[e] = true
	return nil
}

func (m *memLikes) Delete(_ context.Context, owner uuid.UUID, target entity.Target) error {
	e := edge{owner, target}
	if !m.edges[e] {
		return ErrLikeNotFound
	}
	delete(m.edges, e)
	return nil
}

func (m *memLikes) TargetVisible(_ context.Context, _ uuid.UUID, target entity.Target) (bool, error) {
	return m.targets[target], nil
}

func TestLike(t *testing.T) {
	t.Parallel()

	video := entity.Target{Kind: entity.TargetVideo, ID: ident.New()}
	actor := ident.New()

	tests := []struct {
		name     string
		target   entity.Target
		prelike  bool
		wantKind apperror.Kind
	}{
		{"first like", video, false, -1},
		{"duplicate like conflicts", video, true, apperror.KindConflict},
		{"missing target", entity.Target{Kind: entity.TargetTweet, ID: ident.New()}, false, apperror.KindNotFound},
		{"invalid kind", entity.Target{Kind: "channel", ID: video.ID}, false, apperror.KindValidation},
		{"nil id", entity.Target{Kind: entity.TargetVideo}, false, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMemLikes(video)
			uc := NewLikeUsecase(repo)
			if tt.prelike {
				_, err := uc.Like(context.Background(), actor, tt.target)
				require.NoError(t, err)
			}

			l, err := uc.Like(context.Background(), actor, tt.target)

			if tt.wantKind >= 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, actor, l.OwnerID)
			assert.Equal(t, tt.target, l.Target())
		})
	}
}

func TestUnlike(t *testing.T) {
	t.Parallel()

	target := entity.Target{Kind: entity.TargetComment, ID: ident.New()}
	uc := NewLikeUsecase(newMemLikes(target))
	actor := ident.New()
	ctx := context.Background()

	assert.ErrorIs(t, uc.Unlike(ctx, actor, target), ErrLikeNotFound)

	_, err := uc.Like(ctx, actor, target)
	require.NoError(t, err)
	require.NoError(t, uc.Unlike(ctx, actor, target))
	assert.ErrorIs(t, uc.Unlike(ctx, actor, target), ErrLikeNotFound)
}

func TestToggle(t *testing.T) {
	t.Parallel()

	target := entity.Target{Kind: entity.TargetTweet, ID: ident.New()}
	uc := NewLikeUsecase(newMemLikes(target))
	actor := ident.New()
	ctx := context.Background()

	for _, want := range []bool{true, false, true} {
		liked, err := uc.Toggle(ctx, actor, target)
		require.NoError(t, err)
		assert.Equal(t, want, liked)
	}

	_, err := uc.Toggle(ctx, actor, entity.Target{Kind: entity.TargetTweet, ID: ident.New()})
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
