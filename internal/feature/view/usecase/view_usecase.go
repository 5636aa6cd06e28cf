package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/view/domain/entity"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/shared/pagination"
)

// Store runs read plans across the entity collections.
type Store interface {
	RunView(ctx context.Context, p docstore.Plan) ([]docstore.Document, error)
	FindOne(ctx context.Context, name string, filter docstore.Filter) (docstore.Document, error)
}

// Viewer compiles every aggregated read of the platform. It never writes.
type Viewer struct {
	store Store
}

func NewViewer(store Store) *Viewer {
	return &Viewer{store: store}
}

// run validates p before handing it to the store.
func (v *Viewer) run(ctx context.Context, p docstore.Plan) ([]docstore.Document, error) {
	if err := validatePlan(p); err != nil {
		return nil, err
	}
	return v.store.RunView(ctx, p)
}

// exists maps a missing document to notFound.
func (v *Viewer) exists(ctx context.Context, collection string, id uuid.UUID, notFound error) error {
	_, err := v.store.FindOne(ctx, collection, docstore.Filter{"id": id})
	if errors.Is(err, docstore.ErrNoDocument) {
		return notFound
	}
	return err
}

// visibleVideo fails with ErrVideoNotFound unless the video is published or
// owned by actor.
func (v *Viewer) visibleVideo(ctx context.Context, id, actor uuid.UUID) error {
	doc, err := v.store.FindOne(ctx, Videos, docstore.Filter{"id": id})
	if errors.Is(err, docstore.ErrNoDocument) {
		return ErrVideoNotFound
	}
	if err != nil {
		return err
	}
	if published, _ := doc["isPublished"].(bool); published {
		return nil
	}
	if owner, _ := doc["owner"].(uuid.UUID); actor != uuid.Nil && owner == actor {
		return nil
	}
	return ErrVideoNotFound
}

// ChannelProfile returns the public profile of the channel named username with
// its subscriber counts and whether actor subscribes to it.
func (v *Viewer) ChannelProfile(ctx context.Context, username string, actor uuid.UUID) (docstore.Document, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrMissingUsername
	}
	docs, err := v.run(ctx, channelProfilePlan(username, actor))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrChannelNotFound
	}
	return docs[0], nil
}

// ChannelStats aggregates the video, view, like and subscriber totals of a channel.
func (v *Viewer) ChannelStats(ctx context.Context, channelID uuid.UUID) (*entity.ChannelStats, error) {
	if err := v.exists(ctx, Users, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}
	videoStats, err := v.run(ctx, channelVideoStatsPlan(channelID))
	if err != nil {
		return nil, err
	}
	subStats, err := v.run(ctx, channelSubscriberCountPlan(channelID))
	if err != nil {
		return nil, err
	}
	return &entity.ChannelStats{
		TotalVideos:      asInt64(videoStats[0]["totalVideos"]),
		TotalViews:       asInt64(videoStats[0]["totalViews"]),
		TotalLikes:       asInt64(videoStats[0]["totalLikes"]),
		TotalSubscribers: asInt64(subStats[0]["totalSubscribers"]),
	}, nil
}

// ChannelVideos lists every video of a channel, unpublished ones included,
// newest first with its like count.
func (v *Viewer) ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]docstore.Document, error) {
	return v.run(ctx, channelVideosPlan(channelID))
}

// VideoComments returns one page of a video's comments in posting order. Drafts
// are only readable by their owner.
func (v *Viewer) VideoComments(ctx context.Context, videoID, actor uuid.UUID, page pagination.Page) ([]docstore.Document, error) {
	if err := v.visibleVideo(ctx, videoID, actor); err != nil {
		return nil, err
	}
	return v.run(ctx, videoCommentsPlan(videoID, actor, page))
}

// UserTweets lists a user's tweets, each with the author embedded.
func (v *Viewer) UserTweets(ctx context.Context, userID, actor uuid.UUID) ([]docstore.Document, error) {
	if err := v.exists(ctx, Users, userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	return v.run(ctx, userTweetsPlan(userID, actor))
}

// WatchHistory returns the videos userID watched, most recent first. A video
// watched several times appears once, at its latest position.
func (v *Viewer) WatchHistory(ctx context.Context, userID uuid.UUID) ([]docstore.Document, error) {
	docs, err := v.run(ctx, watchHistoryPlan(userID))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound
	}
	history, _ := docs[0]["watchHistory"].([]docstore.Document)
	if history == nil {
		history = []docstore.Document{}
	}
	return history, nil
}

// LikedVideos lists the published videos actor liked, most recent like first.
func (v *Viewer) LikedVideos(ctx context.Context, actor uuid.UUID) ([]docstore.Document, error) {
	docs, err := v.run(ctx, likedVideosPlan(actor))
	if err != nil {
		return nil, err
	}
	return pluck(docs, "video"), nil
}

// VideoDetail returns a video with its owner, like and subscriber counters.
func (v *Viewer) VideoDetail(ctx context.Context, videoID, actor uuid.UUID) (docstore.Document, error) {
	docs, err := v.run(ctx, videoDetailPlan(videoID, actor))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrVideoNotFound
	}
	return docs[0], nil
}

// ChannelSubscribers lists the users subscribed to channelID.
func (v *Viewer) ChannelSubscribers(ctx context.Context, channelID uuid.UUID) ([]docstore.Document, error) {
	if err := v.exists(ctx, Users, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}
	docs, err := v.run(ctx, subscriptionEdgesPlan(docstore.Filter{"channel": channelID}, "subscriber"))
	if err != nil {
		return nil, err
	}
	return pluck(docs, "subscriber"), nil
}

// SubscribedChannels lists the channels subscriberID follows.
func (v *Viewer) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]docstore.Document, error) {
	if err := v.exists(ctx, Users, subscriberID, ErrUserNotFound); err != nil {
		return nil, err
	}
	docs, err := v.run(ctx, subscriptionEdgesPlan(docstore.Filter{"subscriber": subscriberID}, "channel"))
	if err != nil {
		return nil, err
	}
	return pluck(docs, "channel"), nil
}

// pluck replaces each document by its embedded field.
func pluck(docs []docstore.Document, field string) []docstore.Document {
	out := make([]docstore.Document, 0, len(docs))
	for _, d := range docs {
		if inner, ok := d[field].(docstore.Document); ok {
			out = append(out, inner)
		}
	}
	return out
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
