// Package handler provides the HTTP handlers of the tweet feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/tweet/domain/entity"
	"vidtube_backend/internal/feature/tweet/transport/http/dto"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

type TweetUsecase interface {
	Create(ctx context.Context, actor uuid.UUID, content string) (*entity.Tweet, error)
	Update(ctx context.Context, actor, id uuid.UUID, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error)
}

// TweetViewer renders a user's tweets with their author embedded.
type TweetViewer interface {
	UserTweets(ctx context.Context, userID, actor uuid.UUID) ([]docstore.Document, error)
}

type TweetHandler struct {
	tweets TweetUsecase
	views  TweetViewer
}

func NewTweetHandler(tweets TweetUsecase, views TweetViewer) *TweetHandler {
	return &TweetHandler{tweets: tweets, views: views}
}

// Create handles POST /tweets.
func (h *TweetHandler) Create(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var req dto.ContentReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	tweet, err := h.tweets.Create(c.Request.Context(), actor, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, tweet, "tweet created successfully")
}

// ListByUser handles GET /tweets/user/:userId.
func (h *TweetHandler) ListByUser(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	userID, err := request.ID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, err := h.views.UserTweets(c.Request.Context(), userID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "tweets fetched successfully")
}

// Update handles PATCH /tweets/:tweetId.
func (h *TweetHandler) Update(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	tweet, err := h.tweets.Update(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, tweet, "tweet updated successfully")
}

// Delete handles DELETE /tweets/:tweetId.
func (h *TweetHandler) Delete(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.tweets.Delete(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if failed := report.Failed(); len(failed) > 0 {
		slog.Warn("tweet deleted with pending cleanup", "tweet_id", id, "steps", failed)
	}
	response.OK(c, http.StatusOK, gin.H{"id": id}, "tweet deleted successfully")
}
