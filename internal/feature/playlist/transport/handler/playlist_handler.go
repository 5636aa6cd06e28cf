// Package handler provides the HTTP handlers of the playlist feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/feature/playlist/domain/entity"
	"vidtube_backend/internal/feature/playlist/transport/http/dto"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

type PlaylistUsecase interface {
	Create(ctx context.Context, actor uuid.UUID, name, description string) (*entity.Playlist, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Playlist, error)
	Update(ctx context.Context, actor, id uuid.UUID, name, description *string) (*entity.Playlist, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
	AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*entity.Playlist, error)
}

type PlaylistHandler struct {
	playlists PlaylistUsecase
}

func NewPlaylistHandler(playlists PlaylistUsecase) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// Create handles POST /playlist.
func (h *PlaylistHandler) Create(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var req dto.CreateReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.playlists.Create(c.Request.Context(), actor, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, p, "playlist created successfully")
}

// Get handles GET /playlist/:playlistId.
func (h *PlaylistHandler) Get(c *gin.Context) {
	id, err := request.ID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.playlists.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "playlist fetched successfully")
}

// ListByUser handles GET /playlist/user/:userId.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, err := request.ID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.playlists.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, list, "playlists fetched successfully")
}

// Update handles PATCH /playlist/:playlistId.
func (h *PlaylistHandler) Update(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.playlists.Update(c.Request.Context(), actor, id, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "playlist updated successfully")
}

// Delete handles DELETE /playlist/:playlistId.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	id, err := request.ID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.playlists.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": id}, "playlist deleted successfully")
}

// AddVideo handles PATCH /playlist/add/:videoId/:playlistId.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	h.editVideos(c, h.playlists.AddVideo, "video added to playlist successfully")
}

// RemoveVideo handles PATCH /playlist/remove/:videoId/:playlistId.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	h.editVideos(c, h.playlists.RemoveVideo, "video removed from playlist successfully")
}

type videoEdit func(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*entity.Playlist, error)

func (h *PlaylistHandler) editVideos(c *gin.Context, edit videoEdit, msg string) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	videoID, err := request.ID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	playlistID, err := request.ID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := edit(c.Request.Context(), actor, playlistID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, msg)
}
