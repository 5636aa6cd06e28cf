// Package adapters exposes the GORM models of every feature as document collections.
package adapters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	commententity "vidtube_backend/internal/feature/comment/domain/entity"
	likeentity "vidtube_backend/internal/feature/like/domain/entity"
	subentity "vidtube_backend/internal/feature/subscription/domain/entity"
	tweetentity "vidtube_backend/internal/feature/tweet/domain/entity"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/feature/view/usecase"
	"vidtube_backend/internal/platform/docstore"
)

var _ usecase.Store = (*docstore.Store)(nil)

// NewStore registers one collection per entity table. Document fields are
// camelCase; ids stay uuid.UUID so joins compare by value.
func NewStore(db *gorm.DB) *docstore.Store {
	return docstore.NewStore(
		users(db),
		videos(db),
		comments(db),
		tweets(db),
		likes(db),
		subscriptions(db),
	)
}

// users never renders the password hash or refresh token.
func users(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[authentity.User]{
		Name: usecase.Users,
		Columns: map[string]string{
			"id":        "id",
			"username":  "username",
			"email":     "email",
			"createdAt": "created_at",
		},
		ToDocument: func(u *authentity.User) docstore.Document {
			return docstore.Document{
				"id":         u.ID,
				"username":   u.Username,
				"email":      u.Email,
				"fullName":   u.FullName,
				"avatar":     u.Avatar,
				"coverImage": u.CoverImage,
				"createdAt":  u.CreatedAt,
				"updatedAt":  u.UpdatedAt,
			}
		},
		Expanders: map[string]docstore.Expander{"watchHistory": watchHistory},
	})
}

// watchHistory loads each user's watched video ids, most recent first.
func watchHistory(ctx context.Context, db *gorm.DB, docs []docstore.Document) error {
	ids := make([]any, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d["id"])
	}
	var entries []authentity.WatchEntry
	if err := db.WithContext(ctx).Where("user_id IN ?", ids).Order("id DESC").Find(&entries).Error; err != nil {
		return err
	}
	byUser := make(map[uuid.UUID][]any, len(docs))
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e.VideoID)
	}
	for _, d := range docs {
		id, _ := d["id"].(uuid.UUID)
		d["watchHistory"] = append([]any{}, byUser[id]...)
	}
	return nil
}

func videos(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[videoentity.Video]{
		Name: usecase.Videos,
		Columns: map[string]string{
			"id":          "id",
			"owner":       "owner_id",
			"isPublished": "is_published",
			"views":       "views",
			"createdAt":   "created_at",
		},
		ToDocument: func(v *videoentity.Video) docstore.Document {
			return docstore.Document{
				"id":          v.ID,
				"owner":       v.OwnerID,
				"title":       v.Title,
				"description": v.Description,
				"videoFile":   v.VideoFile,
				"thumbnail":   v.Thumbnail,
				"duration":    v.Duration,
				"views":       v.Views,
				"isPublished": v.IsPublished,
				"createdAt":   v.CreatedAt,
				"updatedAt":   v.UpdatedAt,
			}
		},
	})
}

func comments(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[commententity.Comment]{
		Name: usecase.Comments,
		Columns: map[string]string{
			"id":        "id",
			"video":     "video_id",
			"owner":     "owner_id",
			"createdAt": "created_at",
		},
		ToDocument: func(c *commententity.Comment) docstore.Document {
			return docstore.Document{
				"id":        c.ID,
				"content":   c.Content,
				"video":     c.VideoID,
				"owner":     c.OwnerID,
				"createdAt": c.CreatedAt,
				"updatedAt": c.UpdatedAt,
			}
		},
	})
}

func tweets(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[tweetentity.Tweet]{
		Name: usecase.Tweets,
		Columns: map[string]string{
			"id":        "id",
			"owner":     "owner_id",
			"createdAt": "created_at",
		},
		ToDocument: func(t *tweetentity.Tweet) docstore.Document {
			return docstore.Document{
				"id":        t.ID,
				"content":   t.Content,
				"owner":     t.OwnerID,
				"createdAt": t.CreatedAt,
				"updatedAt": t.UpdatedAt,
			}
		},
	})
}

func likes(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[likeentity.Like]{
		Name: usecase.Likes,
		Columns: map[string]string{
			"id":         "id",
			"likedBy":    "owner_id",
			"targetKind": "target_kind",
			"targetId":   "target_id",
		},
		ToDocument: func(l *likeentity.Like) docstore.Document {
			return docstore.Document{
				"id":         l.ID,
				"likedBy":    l.OwnerID,
				"targetKind": string(l.TargetKind),
				"targetId":   l.TargetID,
				"createdAt":  l.CreatedAt,
			}
		},
	})
}

func subscriptions(db *gorm.DB) docstore.Collection {
	return docstore.NewModelCollection(db, docstore.CollectionSpec[subentity.Subscription]{
		Name: usecase.Subscriptions,
		Columns: map[string]string{
			"id":         "id",
			"subscriber": "subscriber_id",
			"channel":    "channel_id",
		},
		ToDocument: func(s *subentity.Subscription) docstore.Document {
			return docstore.Document{
				"id":         s.ID,
				"subscriber": s.SubscriberID,
				"channel":    s.ChannelID,
				"createdAt":  s.CreatedAt,
			}
		},
	})
}
