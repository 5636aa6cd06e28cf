// Package dto defines data transfer objects for the video feature's HTTP transport layer.
package dto

import (
	"vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/shared/pagination"
)

// PublishForm is the multipart form of POST /videos.
type PublishForm struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Duration    float64 `form:"duration"`
}

// UpdateForm is the multipart form of PATCH /videos/:videoId. Absent fields are unchanged.
type UpdateForm struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

// ListQuery is the query string of GET /videos.
type ListQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// VideoPage is one page of GET /videos.
type VideoPage struct {
	Videos     []entity.Video `json:"videos"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"totalVideos"`
	TotalPages int64          `json:"totalPages"`
}

// NewVideoPage builds the page envelope. videos is never nil in the output.
func NewVideoPage(videos []entity.Video, total int64, p pagination.Page) VideoPage {
	if videos == nil {
		videos = []entity.Video{}
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return VideoPage{Videos: videos, Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// DeleteRes reports the deleted id and any cleanup steps queued for retry.
type DeleteRes struct {
	ID             string   `json:"id"`
	PendingCleanup []string `json:"pendingCleanup"`
}
