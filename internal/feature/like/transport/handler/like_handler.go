// Package handler provides the HTTP handlers of the like feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/feature/like/domain/entity"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

type LikeUsecase interface {
	Like(ctx context.Context, actor uuid.UUID, target entity.Target) (*entity.Like, error)
	Unlike(ctx context.Context, actor uuid.UUID, target entity.Target) error
	Toggle(ctx context.Context, actor uuid.UUID, target entity.Target) (bool, error)
}

// LikeViewer lists the videos an actor likes.
type LikeViewer interface {
	LikedVideos(ctx context.Context, actor uuid.UUID) ([]docstore.Document, error)
}

// Param is the path parameter that carries the target id for each kind.
var Param = map[entity.TargetKind]string{
	entity.TargetVideo:   "videoId",
	entity.TargetComment: "commentId",
	entity.TargetTweet:   "tweetId",
}

type LikeHandler struct {
	likes LikeUsecase
	views LikeViewer
}

func NewLikeHandler(likes LikeUsecase, views LikeViewer) *LikeHandler {
	return &LikeHandler{likes: likes, views: views}
}

func (h *LikeHandler) target(c *gin.Context, kind entity.TargetKind) (entity.Target, bool) {
	id, err := request.ID(c, Param[kind])
	if err != nil {
		response.Error(c, err)
		return entity.Target{}, false
	}
	return entity.Target{Kind: kind, ID: id}, true
}

// Like returns the POST handler for liking a target of kind.
func (h *LikeHandler) Like(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := jwtmw.RequireActor(c)
		if !ok {
			return
		}
		target, ok := h.target(c, kind)
		if !ok {
			return
		}
		like, err := h.likes.Like(c.Request.Context(), actor, target)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusCreated, like, string(kind)+" liked successfully")
	}
}

// Unlike returns the DELETE handler for a target of kind.
func (h *LikeHandler) Unlike(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := jwtmw.RequireActor(c)
		if !ok {
			return
		}
		target, ok := h.target(c, kind)
		if !ok {
			return
		}
		if err := h.likes.Unlike(c.Request.Context(), actor, target); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, gin.H{"isLiked": false}, string(kind)+" unliked successfully")
	}
}

// Toggle returns the handler that flips the like on a target of kind.
func (h *LikeHandler) Toggle(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := jwtmw.RequireActor(c)
		if !ok {
			return
		}
		target, ok := h.target(c, kind)
		if !ok {
			return
		}
		liked, err := h.likes.Toggle(c.Request.Context(), actor, target)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, gin.H{"isLiked": liked}, "like toggled successfully")
	}
}

// LikedVideos handles GET /likes/videos.
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	docs, err := h.views.LikedVideos(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "liked videos fetched successfully")
}
