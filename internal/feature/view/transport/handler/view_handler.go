// Package handler serves the channel and dashboard views.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/feature/view/domain/entity"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

type ChannelViewer interface {
	ChannelProfile(ctx context.Context, username string, actor uuid.UUID) (docstore.Document, error)
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]docstore.Document, error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]docstore.Document, error)
}

// StatsViewer is usually the cached decorator of the viewer.
type StatsViewer interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*entity.ChannelStats, error)
}

type ViewHandler struct {
	views ChannelViewer
	stats StatsViewer
}

func NewViewHandler(views ChannelViewer, stats StatsViewer) *ViewHandler {
	return &ViewHandler{views: views, stats: stats}
}

// ChannelProfile handles GET /users/c/:username. Anonymous callers are
// never subscribed.
func (h *ViewHandler) ChannelProfile(c *gin.Context) {
	actor, _ := jwtmw.ActorFrom(c)
	doc, err := h.views.ChannelProfile(c.Request.Context(), c.Param("username"), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, doc, "user channel fetched successfully")
}

// WatchHistory handles GET /users/history.
func (h *ViewHandler) WatchHistory(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	docs, err := h.views.WatchHistory(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "watch history fetched successfully")
}

// Stats handles GET /dashboards/stats.
func (h *ViewHandler) Stats(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	stats, err := h.stats.ChannelStats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, stats, "channel stats fetched successfully")
}

// Videos handles GET /dashboards/videos.
func (h *ViewHandler) Videos(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	docs, err := h.views.ChannelVideos(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "channel videos fetched successfully")
}
