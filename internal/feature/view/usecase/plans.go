package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/shared/pagination"
)

// Collection names registered by the adapters.
const (
	Users         = "users"
	Videos        = "videos"
	Comments      = "comments"
	Tweets        = "tweets"
	Likes         = "likes"
	Subscriptions = "subscriptions"
)

// PublicUserFields is the only user projection a join may expose.
var PublicUserFields = []string{"id", "username", "fullName", "avatar"}

// profileFields may be shown when a user is the view's source document.
var profileFields = []string{"id", "username", "fullName", "avatar", "coverImage", "email", "createdAt"}

func ownerJoin(as string, unwind bool) docstore.Join {
	return docstore.Join{
		From: Users, LocalField: "owner", ForeignField: "id", As: as,
		First: !unwind, Unwind: unwind, Project: PublicUserFields,
	}
}

func likesJoin(kind string) docstore.Join {
	return docstore.Join{
		From: Likes, LocalField: "id", ForeignField: "targetId", As: "likes",
		Match: docstore.Filter{"targetKind": kind},
	}
}

func likeCounters(actor uuid.UUID) []docstore.Computed {
	return []docstore.Computed{
		{Field: "likesCount", Op: docstore.OpSize, Path: "likes"},
		{Field: "isLiked", Op: docstore.OpContains, Path: "likes.likedBy", Value: actor},
	}
}

func channelProfilePlan(username string, actor uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source: Users,
		Match:  docstore.Filter{"username": username},
		Joins: []docstore.Join{
			{From: Subscriptions, LocalField: "id", ForeignField: "channel", As: "subscribers"},
			{From: Subscriptions, LocalField: "id", ForeignField: "subscriber", As: "subscribedTo"},
		},
		Computed: []docstore.Computed{
			{Field: "subscribersCount", Op: docstore.OpSize, Path: "subscribers"},
			{Field: "channelsSubscribedToCount", Op: docstore.OpSize, Path: "subscribedTo"},
			{Field: "isSubscribed", Op: docstore.OpContains, Path: "subscribers.subscriber", Value: actor},
		},
		Project: append(append([]string{}, profileFields...),
			"subscribersCount", "channelsSubscribedToCount", "isSubscribed"),
		Window: &docstore.Window{Limit: 1},
	}
}

func channelVideoStatsPlan(channelID uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source:   Videos,
		Match:    docstore.Filter{"owner": channelID},
		Joins:    []docstore.Join{likesJoin("video")},
		Computed: []docstore.Computed{{Field: "likesCount", Op: docstore.OpSize, Path: "likes"}},
		Group: &docstore.Group{Accumulators: []docstore.Accumulator{
			{Field: "totalLikes", Op: docstore.OpSum, Path: "likesCount"},
			{Field: "totalViews", Op: docstore.OpSum, Path: "views"},
			{Field: "totalVideos", Op: docstore.OpCount},
		}},
	}
}

func channelSubscriberCountPlan(channelID uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source: Subscriptions,
		Match:  docstore.Filter{"channel": channelID},
		Group: &docstore.Group{Accumulators: []docstore.Accumulator{
			{Field: "totalSubscribers", Op: docstore.OpCount},
		}},
	}
}

func channelVideosPlan(channelID uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source:   Videos,
		Match:    docstore.Filter{"owner": channelID},
		Sort:     []docstore.Sort{{Field: "createdAt", Desc: true}},
		Joins:    []docstore.Join{likesJoin("video")},
		Computed: []docstore.Computed{{Field: "likesCount", Op: docstore.OpSize, Path: "likes"}},
		Project: []string{
			"id", "title", "description", "videoFile", "thumbnail", "duration",
			"views", "isPublished", "createdAt", "likesCount",
		},
	}
}

func videoCommentsPlan(videoID, actor uuid.UUID, page pagination.Page) docstore.Plan {
	return docstore.Plan{
		Source:   Comments,
		Match:    docstore.Filter{"video": videoID},
		Joins:    []docstore.Join{ownerJoin("owner", false), likesJoin("comment")},
		Computed: likeCounters(actor),
		Project:  []string{"id", "content", "createdAt", "updatedAt", "owner", "likesCount", "isLiked"},
		Window:   &docstore.Window{Skip: page.Skip(), Limit: page.Limit},
	}
}

func userTweetsPlan(userID, actor uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source:   Tweets,
		Match:    docstore.Filter{"owner": userID},
		Joins:    []docstore.Join{ownerJoin("owner", true), likesJoin("tweet")},
		Computed: likeCounters(actor),
		Project:  []string{"id", "content", "createdAt", "updatedAt", "owner", "likesCount", "isLiked"},
	}
}

func watchHistoryPlan(userID uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source: Users,
		Match:  docstore.Filter{"id": userID},
		Expand: []string{"watchHistory"},
		Joins: []docstore.Join{{
			From: Videos, LocalField: "watchHistory", ForeignField: "id", As: "watchHistory",
			Distinct: true,
			Joins:    []docstore.Join{ownerJoin("owner", false)},
		}},
		Project: []string{"watchHistory"},
	}
}

func likedVideosPlan(actor uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source: Likes,
		Match:  docstore.Filter{"likedBy": actor, "targetKind": "video"},
		Sort:   []docstore.Sort{{Field: "id", Desc: true}},
		Joins: []docstore.Join{{
			From: Videos, LocalField: "targetId", ForeignField: "id", As: "video",
			Match:  docstore.Filter{"isPublished": true},
			Unwind: true,
			Joins:  []docstore.Join{ownerJoin("owner", false)},
		}},
		Project: []string{"video"},
	}
}

// videoDetailPlan counts the owner's subscribers before the owner join
// replaces the owner id with the public user document.
func videoDetailPlan(videoID, actor uuid.UUID) docstore.Plan {
	return docstore.Plan{
		Source: Videos,
		Match:  docstore.Filter{"id": videoID},
		Joins: []docstore.Join{
			likesJoin("video"),
			{From: Subscriptions, LocalField: "owner", ForeignField: "channel", As: "ownerSubscribers"},
			ownerJoin("owner", false),
		},
		Computed: append(likeCounters(actor),
			docstore.Computed{Field: "subscribersCount", Op: docstore.OpSize, Path: "ownerSubscribers"},
			docstore.Computed{Field: "isSubscribed", Op: docstore.OpContains, Path: "ownerSubscribers.subscriber", Value: actor},
		),
		Project: []string{
			"id", "title", "description", "videoFile", "thumbnail", "duration", "views",
			"isPublished", "createdAt", "updatedAt", "owner",
			"likesCount", "isLiked", "subscribersCount", "isSubscribed",
		},
	}
}

func subscriptionEdgesPlan(match docstore.Filter, userField string) docstore.Plan {
	return docstore.Plan{
		Source: Subscriptions,
		Match:  match,
		Joins: []docstore.Join{{
			From: Users, LocalField: userField, ForeignField: "id", As: userField,
			Unwind: true, Project: PublicUserFields,
		}},
		Project: []string{userField},
	}
}

// validatePlan rejects plans that could leak private user fields: every join
// onto users must project a subset of PublicUserFields, and a plan sourced
// from users may only keep profile fields and derived values.
func validatePlan(p docstore.Plan) error {
	if p.Source == Users {
		allowed := toSet(profileFields)
		for _, c := range p.Computed {
			allowed[c.Field] = struct{}{}
		}
		for _, j := range p.Joins {
			allowed[j.As] = struct{}{}
		}
		if err := subset(p.Project, allowed); err != nil {
			return fmt.Errorf("%w: source %s", err, p.Source)
		}
	}
	return validateJoins(p.Joins)
}

func validateJoins(joins []docstore.Join) error {
	public := toSet(PublicUserFields)
	for _, j := range joins {
		if j.From == Users {
			if err := subset(j.Project, public); err != nil {
				return fmt.Errorf("%w: join %s", err, j.As)
			}
		}
		if err := validateJoins(j.Joins); err != nil {
			return err
		}
	}
	return nil
}

func subset(fields []string, allowed map[string]struct{}) error {
	if len(fields) == 0 {
		return ErrUnsafePlan
	}
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			return ErrUnsafePlan
		}
	}
	return nil
}

func toSet(fields []string) map[string]struct{} {
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}
