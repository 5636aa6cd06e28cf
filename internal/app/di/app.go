package di

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vidtube_backend/internal/app/router"
	authadapters "vidtube_backend/internal/feature/auth/adapters"
	authhandler "vidtube_backend/internal/feature/auth/transport/handler"
	authusecase "vidtube_backend/internal/feature/auth/usecase"
	cascadeadapters "vidtube_backend/internal/feature/cascade/adapters"
	cascadeusecase "vidtube_backend/internal/feature/cascade/usecase"
	commentadapters "vidtube_backend/internal/feature/comment/adapters"
	commenthandler "vidtube_backend/internal/feature/comment/transport/handler"
	commentusecase "vidtube_backend/internal/feature/comment/usecase"
	likeadapters "vidtube_backend/internal/feature/like/adapters"
	likehandler "vidtube_backend/internal/feature/like/transport/handler"
	likeusecase "vidtube_backend/internal/feature/like/usecase"
	playlistadapters "vidtube_backend/internal/feature/playlist/adapters"
	playlisthandler "vidtube_backend/internal/feature/playlist/transport/handler"
	playlistusecase "vidtube_backend/internal/feature/playlist/usecase"
	subscriptionadapters "vidtube_backend/internal/feature/subscription/adapters"
	subscriptionhandler "vidtube_backend/internal/feature/subscription/transport/handler"
	subscriptionusecase "vidtube_backend/internal/feature/subscription/usecase"
	tweetadapters "vidtube_backend/internal/feature/tweet/adapters"
	tweethandler "vidtube_backend/internal/feature/tweet/transport/handler"
	tweetusecase "vidtube_backend/internal/feature/tweet/usecase"
	videoadapters "vidtube_backend/internal/feature/video/adapters"
	videohandler "vidtube_backend/internal/feature/video/transport/handler"
	videousecase "vidtube_backend/internal/feature/video/usecase"
	viewadapters "vidtube_backend/internal/feature/view/adapters"
	viewhandler "vidtube_backend/internal/feature/view/transport/handler"
	viewusecase "vidtube_backend/internal/feature/view/usecase"
	"vidtube_backend/internal/platform/cache"
	"vidtube_backend/internal/platform/config"
	"vidtube_backend/internal/shared/ratelimiter"
)

// App is the wired HTTP server and its background cascade worker.
type App struct {
	Router  *gin.Engine
	Cleaner *cascadeusecase.Cleaner
}

// NewCleaner wires the cascade cleaner. Retries are paced by cfg.RatePerMinute.
func NewCleaner(cfg config.CascadeConfig, db *gorm.DB) *cascadeusecase.Cleaner {
	return cascadeusecase.NewCleaner(
		cascadeadapters.NewCleanupGorm(db),
		cascadeadapters.NewTaskGorm(db),
		ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute),
	)
}

// NewApp wires every feature. rdb may be nil, which disables the stats cache.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, media MediaStore, tokens *authusecase.TokenService) *App {
	cleaner := NewCleaner(cfg.Cascade, db)

	viewer := viewusecase.NewViewer(viewadapters.NewStore(db))
	stats := cache.NewCachingStatsViewer(rdb, cfg.Redis.StatsTTL, viewer, "stats")

	users := authadapters.NewUserGorm(db)
	authUC := authusecase.NewAuthUsecase(users, tokens, media)
	videoUC := videousecase.NewVideoUsecase(videoadapters.NewVideoGorm(db), users, media, cleaner, stats)
	commentUC := commentusecase.NewCommentUsecase(commentadapters.NewCommentGorm(db), cleaner)
	tweetUC := tweetusecase.NewTweetUsecase(tweetadapters.NewTweetGorm(db), cleaner)
	likeUC := likeusecase.NewLikeUsecase(likeadapters.NewLikeGorm(db))
	playlistUC := playlistusecase.NewPlaylistUsecase(playlistadapters.NewPlaylistGorm(db))
	subscriptionUC := subscriptionusecase.NewSubscriptionUsecase(subscriptionadapters.NewSubscriptionGorm(db), stats)

	handlers := router.Handlers{
		Auth:         authhandler.NewAuthHandler(authUC, cfg.Server.CookieSecure),
		Videos:       videohandler.NewVideoHandler(videoUC, viewer),
		Comments:     commenthandler.NewCommentHandler(commentUC, viewer),
		Tweets:       tweethandler.NewTweetHandler(tweetUC, viewer),
		Likes:        likehandler.NewLikeHandler(likeUC, viewer),
		Playlists:    playlisthandler.NewPlaylistHandler(playlistUC),
		Subscription: subscriptionhandler.NewSubscriptionHandler(subscriptionUC, viewer),
		Views:        viewhandler.NewViewHandler(viewer, stats),
	}

	return &App{
		Router:  router.NewRouter(handlers, AccessVerifier{Tokens: tokens}, cfg.Server.CORSOrigin),
		Cleaner: cleaner,
	}
}
