// Package handler provides the HTTP handlers of the comment feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/comment/domain/entity"
	"vidtube_backend/internal/feature/comment/transport/http/dto"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
	"vidtube_backend/internal/shared/pagination"
)

type CommentUsecase interface {
	Add(ctx context.Context, actor, videoID uuid.UUID, content string) (*entity.Comment, error)
	Update(ctx context.Context, actor, id uuid.UUID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error)
}

// CommentViewer renders the comment thread of a video.
type CommentViewer interface {
	VideoComments(ctx context.Context, videoID, actor uuid.UUID, page pagination.Page) ([]docstore.Document, error)
}

type CommentHandler struct {
	comments CommentUsecase
	views    CommentViewer
}

func NewCommentHandler(comments CommentUsecase, views CommentViewer) *CommentHandler {
	return &CommentHandler{comments: comments, views: views}
}

// List handles GET /comments/:videoId.
func (h *CommentHandler) List(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	videoID, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var q dto.PageQuery
	_ = c.ShouldBindQuery(&q)

	docs, err := h.views.VideoComments(c.Request.Context(), videoID, actor, pagination.Parse(q.Page, q.Limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "comments fetched successfully")
}

// Add handles POST /comments/:videoId.
func (h *CommentHandler) Add(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	videoID, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), actor, videoID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, comment, "comment added successfully")
}

// Update handles PATCH /comments/c/:commentId.
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, comment, "comment updated successfully")
}

// Delete handles DELETE /comments/c/:commentId.
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.comments.Delete(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if failed := report.Failed(); len(failed) > 0 {
		slog.Warn("comment deleted with pending cleanup", "comment_id", id, "steps", failed)
	}
	response.OK(c, http.StatusOK, gin.H{"id": id}, "comment deleted successfully")
}
