package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "vidtube_backend/internal/feature/auth/transport/handler"
	commenthandler "vidtube_backend/internal/feature/comment/transport/handler"
	likeentity "vidtube_backend/internal/feature/like/domain/entity"
	likehandler "vidtube_backend/internal/feature/like/transport/handler"
	playlisthandler "vidtube_backend/internal/feature/playlist/transport/handler"
	subscriptionhandler "vidtube_backend/internal/feature/subscription/transport/handler"
	tweethandler "vidtube_backend/internal/feature/tweet/transport/handler"
	videohandler "vidtube_backend/internal/feature/video/transport/handler"
	viewhandler "vidtube_backend/internal/feature/view/transport/handler"
	"vidtube_backend/internal/platform/http/handler"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

// Handlers groups every feature handler mounted by NewRouter.
type Handlers struct {
	Auth         *authhandler.AuthHandler
	Videos       *videohandler.VideoHandler
	Comments     *commenthandler.CommentHandler
	Tweets       *tweethandler.TweetHandler
	Likes        *likehandler.LikeHandler
	Playlists    *playlisthandler.PlaylistHandler
	Subscription *subscriptionhandler.SubscriptionHandler
	Views        *viewhandler.ViewHandler
}

// NewRouter mounts every route under /api/v1. corsOrigin is a comma separated
// list; "*" allows any origin without credentials.
func NewRouter(h Handlers, verifier jwtmw.TokenVerifier, corsOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(corsOrigin)))
	r.HandleMethodNotAllowed = true

	api := r.Group("/api/v1")

	// 認証不要
	api.GET("/healthcheck", handler.Health)
	api.HEAD("/healthcheck", handler.Health)

	users := api.Group("/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.POST("/refresh-token", h.Auth.RefreshToken)
	users.GET("/c/:username", jwtmw.OptionalAuth(verifier), h.Views.ChannelProfile)

	// 認証必須のルート
	auth := api.Group("/")
	auth.Use(jwtmw.AuthRequired(verifier))
	{
		auth.POST("/users/logout", h.Auth.Logout)
		auth.POST("/users/change-password", h.Auth.ChangePassword)
		auth.GET("/users/current-user", h.Auth.CurrentUser)
		auth.PATCH("/users/update-account", h.Auth.UpdateAccount)
		auth.PATCH("/users/avatar", h.Auth.UpdateAvatar)
		auth.PATCH("/users/cover-image", h.Auth.UpdateCoverImage)
		auth.GET("/users/history", h.Views.WatchHistory)

		auth.GET("/videos", h.Videos.List)
		auth.POST("/videos", h.Videos.Publish)
		auth.GET("/videos/:videoId", h.Videos.Get)
		auth.PATCH("/videos/:videoId", h.Videos.Update)
		auth.DELETE("/videos/:videoId", h.Videos.Delete)
		auth.PATCH("/videos/toggle/publish/:videoId", h.Videos.TogglePublish)

		auth.GET("/comments/:videoId", h.Comments.List)
		auth.POST("/comments/:videoId", h.Comments.Add)
		auth.PATCH("/comments/c/:commentId", h.Comments.Update)
		auth.DELETE("/comments/c/:commentId", h.Comments.Delete)

		auth.POST("/tweets", h.Tweets.Create)
		auth.GET("/tweets/user/:userId", h.Tweets.ListByUser)
		auth.PATCH("/tweets/:tweetId", h.Tweets.Update)
		auth.DELETE("/tweets/:tweetId", h.Tweets.Delete)

		for prefix, kind := range map[string]likeentity.TargetKind{
			"v": likeentity.TargetVideo,
			"c": likeentity.TargetComment,
			"t": likeentity.TargetTweet,
		} {
			path := "/likes/" + prefix + "/:" + likehandler.Param[kind]
			auth.POST(path, h.Likes.Like(kind))
			auth.DELETE(path, h.Likes.Unlike(kind))
			auth.POST("/likes/toggle/"+prefix+"/:"+likehandler.Param[kind], h.Likes.Toggle(kind))
		}
		auth.GET("/likes/videos", h.Likes.LikedVideos)

		auth.POST("/playlist", h.Playlists.Create)
		auth.GET("/playlist/:playlistId", h.Playlists.Get)
		auth.PATCH("/playlist/:playlistId", h.Playlists.Update)
		auth.DELETE("/playlist/:playlistId", h.Playlists.Delete)
		auth.PATCH("/playlist/add/:videoId/:playlistId", h.Playlists.AddVideo)
		auth.PATCH("/playlist/remove/:videoId/:playlistId", h.Playlists.RemoveVideo)
		auth.GET("/playlist/user/:userId", h.Playlists.ListByUser)

		auth.POST("/subscriptions/c/:channelId", h.Subscription.Subscribe)
		auth.DELETE("/subscriptions/c/:channelId", h.Subscription.Unsubscribe)
		auth.POST("/subscriptions/toggle/c/:channelId", h.Subscription.Toggle)
		auth.GET("/subscriptions/c/:channelId", h.Subscription.Subscribers)
		auth.GET("/subscriptions/u/:subscriberId", h.Subscription.SubscribedChannels)

		auth.GET("/dashboards/stats", h.Views.Stats)
		auth.GET("/dashboards/videos", h.Views.Videos)
	}

	return r
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
