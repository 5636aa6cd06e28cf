package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/tweet/domain/entity"
	"vidtube_backend/internal/shared/ident"
	"vidtube_backend/internal/shared/ownership"
)

// mockTweetRepository is a mock implementation of TweetRepository.
type mockTweetRepository struct {
	CreateFunc   func(t *entity.Tweet) error
	FindByIDFunc func(id uuid.UUID) (*entity.Tweet, error)
	UpdateFunc   func(id uuid.UUID, content string) (*entity.Tweet, error)
	DeleteFunc   func(id uuid.UUID) error
}

func (m *mockTweetRepository) Create(_ context.Context, t *entity.Tweet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(t)
	}
	return nil
}

func (m *mockTweetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Tweet, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrTweetNotFound
}

func (m *mockTweetRepository) UpdateContent(_ context.Context, id uuid.UUID, content string) (*entity.Tweet, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, content)
	}
	return &entity.Tweet{ID: id, Content: content}, nil
}

func (m *mockTweetRepository) Delete(_ context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type mockCascader struct {
	calls int
}

func (m *mockCascader) TweetDeleted(_ context.Context, id uuid.UUID) *cascade.Report {
	m.calls++
	return &cascade.Report{TargetID: id}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		repoErr  error
		want     string
		wantErr  error
		wantCall bool
	}{
		{"trimmed", "  hi there ", nil, "hi there", nil, true},
		{"blank", "\t ", nil, "", ErrMissingContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			repo := &mockTweetRepository{CreateFunc: func(*entity.Tweet) error {
				called = true
				return tt.repoErr
			}}
			uc := NewTweetUsecase(repo, &mockCascader{})
			actor := ident.New()

			tw, err := uc.Create(context.Background(), actor, tt.content)

			assert.Equal(t, tt.wantCall, called)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tw.Content)
			assert.Equal(t, actor, tw.OwnerID)
		})
	}
}

func TestUpdate_Ownership(t *testing.T) {
	t.Parallel()

	owner := ident.New()
	existing := ident.New()
	repo := &mockTweetRepository{FindByIDFunc: func(id uuid.UUID) (*entity.Tweet, error) {
		if id != existing {
			return nil, ErrTweetNotFound
		}
		return &entity.Tweet{ID: id, OwnerID: owner}, nil
	}}
	uc := NewTweetUsecase(repo, &mockCascader{})
	ctx := context.Background()

	_, err := uc.Update(ctx, ident.New(), ident.New(), "x")
	assert.ErrorIs(t, err, ErrTweetNotFound)
	_, err = uc.Update(ctx, ident.New(), existing, "x")
	assert.ErrorIs(t, err, ownership.ErrNotOwner)

	tw, err := uc.Update(ctx, owner, existing, " new ")
	require.NoError(t, err)
	assert.Equal(t, "new", tw.Content)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	owner := ident.New()
	find := func(id uuid.UUID) (*entity.Tweet, error) { return &entity.Tweet{ID: id, OwnerID: owner}, nil }

	t.Run("owner triggers cascade", func(t *testing.T) {
		cascader := &mockCascader{}
		uc := NewTweetUsecase(&mockTweetRepository{FindByIDFunc: find}, cascader)

		report, err := uc.Delete(context.Background(), owner, ident.New())
		require.NoError(t, err)
		assert.NotNil(t, report)
		assert.Equal(t, 1, cascader.calls)
	})

	t.Run("failed delete skips cascade", func(t *testing.T) {
		cascader := &mockCascader{}
		repo := &mockTweetRepository{FindByIDFunc: find, DeleteFunc: func(uuid.UUID) error { return errors.New("locked") }}
		uc := NewTweetUsecase(repo, cascader)

		_, err := uc.Delete(context.Background(), owner, ident.New())
		assert.Error(t, err)
		assert.Zero(t, cascader.calls)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		cascader := &mockCascader{}
		uc := NewTweetUsecase(&mockTweetRepository{FindByIDFunc: find}, cascader)

		_, err := uc.Delete(context.Background(), ident.New(), ident.New())
		assert.ErrorIs(t, err, ownership.ErrNotOwner)
		assert.Zero(t, cascader.calls)
	})
}
