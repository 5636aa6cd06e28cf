package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/shared/apperror"
	"vidtube_backend/internal/shared/pagination"
)

type mockStore struct {
	runViewFn func(ctx context.Context, p docstore.Plan) ([]docstore.Document, error)
	findOneFn func(ctx context.Context, name string, filter docstore.Filter) (docstore.Document, error)
	plans     []docstore.Plan
}

func (m *mockStore) RunView(ctx context.Context, p docstore.Plan) ([]docstore.Document, error) {
	m.plans = append(m.plans, p)
	if m.runViewFn != nil {
		return m.runViewFn(ctx, p)
	}
	return []docstore.Document{}, nil
}

func (m *mockStore) FindOne(ctx context.Context, name string, filter docstore.Filter) (docstore.Document, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, name, filter)
	}
	return docstore.Document{"id": filter["id"], "isPublished": true}, nil
}

func missing(context.Context, string, docstore.Filter) (docstore.Document, error) {
	return nil, docstore.ErrNoDocument
}

func TestValidatePlan_BuiltPlansAreSafe(t *testing.T) {
	t.Parallel()

	id, actor := uuid.New(), uuid.New()
	plans := map[string]docstore.Plan{
		"channel profile":    channelProfilePlan("alice", actor),
		"channel stats":      channelVideoStatsPlan(id),
		"subscriber count":   channelSubscriberCountPlan(id),
		"channel videos":     channelVideosPlan(id),
		"video comments":     videoCommentsPlan(id, actor, pagination.Parse("", "")),
		"user tweets":        userTweetsPlan(id, actor),
		"watch history":      watchHistoryPlan(id),
		"liked videos":       likedVideosPlan(actor),
		"video detail":       videoDetailPlan(id, actor),
		"channel subscriber": subscriptionEdgesPlan(docstore.Filter{"channel": id}, "subscriber"),
		"subscribed channel": subscriptionEdgesPlan(docstore.Filter{"subscriber": id}, "channel"),
	}

	for name, p := range plans {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, validatePlan(p))
		})
	}
}

func TestValidatePlan_RejectsLeaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan docstore.Plan
	}{
		{
			name: "join onto users without projection",
			plan: docstore.Plan{Source: Videos, Joins: []docstore.Join{
				{From: Users, LocalField: "owner", ForeignField: "id", As: "owner", First: true},
			}},
		},
		{
			name: "join onto users projecting email",
			plan: docstore.Plan{Source: Videos, Joins: []docstore.Join{
				{From: Users, LocalField: "owner", ForeignField: "id", As: "owner", Project: []string{"id", "email"}},
			}},
		},
		{
			name: "nested join onto users",
			plan: docstore.Plan{Source: Likes, Joins: []docstore.Join{{
				From: Videos, LocalField: "targetId", ForeignField: "id", As: "video",
				Joins: []docstore.Join{{From: Users, LocalField: "owner", ForeignField: "id", As: "owner"}},
			}}},
		},
		{
			name: "users source without projection",
			plan: docstore.Plan{Source: Users, Match: docstore.Filter{"username": "alice"}},
		},
		{
			name: "users source projecting a credential",
			plan: docstore.Plan{Source: Users, Project: []string{"username", "password"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, validatePlan(tt.plan), ErrUnsafePlan)
		})
	}
}

func TestViewer_ChannelProfile(t *testing.T) {
	t.Parallel()

	actor := uuid.New()

	t.Run("blank username", func(t *testing.T) {
		t.Parallel()
		v := NewViewer(&mockStore{})
		_, err := v.ChannelProfile(context.Background(), "  ", actor)
		assert.ErrorIs(t, err, ErrMissingUsername)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown channel", func(t *testing.T) {
		t.Parallel()
		v := NewViewer(&mockStore{})
		_, err := v.ChannelProfile(context.Background(), "ghost", actor)
		assert.ErrorIs(t, err, ErrChannelNotFound)
	})

	t.Run("matches the lower-cased username", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{runViewFn: func(_ context.Context, p docstore.Plan) ([]docstore.Document, error) {
			return []docstore.Document{{"username": p.Match["username"]}}, nil
		}}
		v := NewViewer(store)

		doc, err := v.ChannelProfile(context.Background(), " Alice ", actor)

		require.NoError(t, err)
		assert.Equal(t, "alice", doc["username"])
		assert.Equal(t, actor, store.plans[0].Computed[2].Value)
	})
}

func TestViewer_ChannelStats(t *testing.T) {
	t.Parallel()

	channel := uuid.New()

	t.Run("combines video and subscriber totals", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{runViewFn: func(_ context.Context, p docstore.Plan) ([]docstore.Document, error) {
			if p.Source == Subscriptions {
				return []docstore.Document{{"totalSubscribers": int64(4)}}, nil
			}
			return []docstore.Document{{"totalVideos": int64(2), "totalViews": int64(15), "totalLikes": int64(3)}}, nil
		}}
		v := NewViewer(store)

		stats, err := v.ChannelStats(context.Background(), channel)

		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalVideos)
		assert.Equal(t, int64(15), stats.TotalViews)
		assert.Equal(t, int64(3), stats.TotalLikes)
		assert.Equal(t, int64(4), stats.TotalSubscribers)
	})

	t.Run("unknown channel", func(t *testing.T) {
		t.Parallel()
		v := NewViewer(&mockStore{findOneFn: missing})
		_, err := v.ChannelStats(context.Background(), channel)
		assert.ErrorIs(t, err, ErrChannelNotFound)
	})
}

func TestViewer_NotFoundChecks(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		call    func(v *Viewer) error
		wantErr error
	}{
		{"video comments", func(v *Viewer) error {
			_, err := v.VideoComments(context.Background(), id, uuid.Nil, pagination.Parse("1", "10"))
			return err
		}, ErrVideoNotFound},
		{"user tweets", func(v *Viewer) error {
			_, err := v.UserTweets(context.Background(), id, uuid.Nil)
			return err
		}, ErrUserNotFound},
		{"channel subscribers", func(v *Viewer) error {
			_, err := v.ChannelSubscribers(context.Background(), id)
			return err
		}, ErrChannelNotFound},
		{"subscribed channels", func(v *Viewer) error {
			_, err := v.SubscribedChannels(context.Background(), id)
			return err
		}, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &mockStore{findOneFn: missing}
			err := tt.call(NewViewer(store))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
			assert.Empty(t, store.plans, "no view runs for a missing parent")
		})
	}
}

func TestViewer_VideoCommentsWindow(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	v := NewViewer(store)

	_, err := v.VideoComments(context.Background(), uuid.New(), uuid.Nil, pagination.Parse("3", "5"))

	require.NoError(t, err)
	require.Len(t, store.plans, 1)
	assert.Equal(t, &docstore.Window{Skip: 10, Limit: 5}, store.plans[0].Window)
}

func TestViewer_VideoCommentsOnDraft(t *testing.T) {
	t.Parallel()

	owner, video := uuid.New(), uuid.New()
	draft := func(context.Context, string, docstore.Filter) (docstore.Document, error) {
		return docstore.Document{"id": video, "owner": owner, "isPublished": false}, nil
	}

	tests := []struct {
		name    string
		actor   uuid.UUID
		wantErr error
	}{
		{"owner reads the draft", owner, nil},
		{"other user", uuid.New(), ErrVideoNotFound},
		{"anonymous", uuid.Nil, ErrVideoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &mockStore{findOneFn: draft}

			_, err := NewViewer(store).VideoComments(context.Background(), video, tt.actor, pagination.Parse("", ""))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.plans)
				return
			}
			require.NoError(t, err)
			assert.Len(t, store.plans, 1)
		})
	}
}

func TestViewer_WatchHistory(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		_, err := NewViewer(&mockStore{}).WatchHistory(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{runViewFn: func(context.Context, docstore.Plan) ([]docstore.Document, error) {
			return []docstore.Document{{"watchHistory": []docstore.Document{}}}, nil
		}}
		history, err := NewViewer(store).WatchHistory(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, history)
		assert.Empty(t, history)
	})
}

func TestViewer_VideoDetailNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewViewer(&mockStore{}).VideoDetail(context.Background(), uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestViewer_StoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	store := &mockStore{runViewFn: func(context.Context, docstore.Plan) ([]docstore.Document, error) {
		return nil, boom
	}}

	_, err := NewViewer(store).LikedVideos(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestPluck(t *testing.T) {
	t.Parallel()

	docs := []docstore.Document{
		{"video": docstore.Document{"id": "v1"}},
		{"video": nil},
		{"video": docstore.Document{"id": "v2"}},
	}
	assert.Equal(t, []docstore.Document{{"id": "v1"}, {"id": "v2"}}, pluck(docs, "video"))
	assert.Equal(t, []docstore.Document{}, pluck(nil, "video"))
}
