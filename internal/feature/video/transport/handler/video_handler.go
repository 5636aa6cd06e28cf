// Package handler provides the HTTP handlers of the video feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/feature/video/transport/http/dto"
	"vidtube_backend/internal/feature/video/usecase"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
	"vidtube_backend/internal/shared/ident"
	"vidtube_backend/internal/shared/pagination"
)

// VideoUsecase is the mutation side of videos.
type VideoUsecase interface {
	Publish(ctx context.Context, actor uuid.UUID, in usecase.PublishInput) (*entity.Video, error)
	Watch(ctx context.Context, actor, id uuid.UUID) (*entity.Video, error)
	List(ctx context.Context, actor uuid.UUID, q usecase.ListQuery) ([]entity.Video, int64, error)
	Update(ctx context.Context, actor, id uuid.UUID, in usecase.UpdateInput) (*entity.Video, error)
	TogglePublish(ctx context.Context, actor, id uuid.UUID) (*entity.Video, error)
	Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error)
}

// VideoViewer renders the watch page of a video.
type VideoViewer interface {
	VideoDetail(ctx context.Context, videoID, actor uuid.UUID) (docstore.Document, error)
}

type VideoHandler struct {
	videos VideoUsecase
	views  VideoViewer
}

func NewVideoHandler(videos VideoUsecase, views VideoViewer) *VideoHandler {
	return &VideoHandler{videos: videos, views: views}
}

// List handles GET /videos.
func (h *VideoHandler) List(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var qs dto.ListQuery
	_ = c.ShouldBindQuery(&qs)

	q := usecase.ListQuery{
		Search: qs.Query,
		SortBy: usecase.ParseSortField(qs.SortBy),
		Desc:   !strings.EqualFold(qs.SortType, "asc"),
		Page:   pagination.Parse(qs.Page, qs.Limit),
	}
	if qs.UserID != "" {
		owner, err := ident.Parse(qs.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		q.OwnerID = owner
	}

	videos, total, err := h.videos.List(c.Request.Context(), actor, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewVideoPage(videos, total, q.Page), "videos fetched successfully")
}

// Publish handles POST /videos (multipart).
func (h *VideoHandler) Publish(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var form dto.PublishForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("publish validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, request.ErrInvalidBody)
		return
	}
	videoFile, closeVideo, err := request.File(c, "videoFile")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeVideo()
	thumb, closeThumb, err := request.File(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	v, err := h.videos.Publish(c.Request.Context(), actor, usecase.PublishInput{
		Title:       form.Title,
		Description: form.Description,
		Duration:    form.Duration,
		VideoFile:   videoFile,
		Thumbnail:   thumb,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	slog.Info("video published", "video_id", v.ID, "owner", actor, "remote_addr", c.ClientIP())
	response.OK(c, http.StatusCreated, v, "video published successfully")
}

// Get handles GET /videos/:videoId. Watching counts as a view.
func (h *VideoHandler) Get(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.videos.Watch(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.views.VideoDetail(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, doc, "video fetched successfully")
}

// Update handles PATCH /videos/:videoId (multipart).
func (h *VideoHandler) Update(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var form dto.UpdateForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, request.ErrInvalidBody)
		return
	}
	thumb, closeThumb, err := request.File(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	v, err := h.videos.Update(c.Request.Context(), actor, id, usecase.UpdateInput{
		Title:       form.Title,
		Description: form.Description,
		Thumbnail:   thumb,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, v, "video updated successfully")
}

// TogglePublish handles PATCH /videos/toggle/publish/:videoId.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	v, err := h.videos.TogglePublish(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"isPublished": v.IsPublished}, "publish status toggled")
}

// Delete handles DELETE /videos/:videoId.
func (h *VideoHandler) Delete(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.videos.Delete(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	pending := []string{}
	for _, step := range report.Failed() {
		pending = append(pending, string(step))
	}
	slog.Info("video deleted", "video_id", id, "pending_cleanup", len(pending), "remote_addr", c.ClientIP())
	response.OK(c, http.StatusOK, dto.DeleteRes{ID: id.String(), PendingCleanup: pending}, "video deleted successfully")
}
