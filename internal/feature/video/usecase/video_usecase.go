package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/shared/media"
	"vidtube_backend/internal/shared/ownership"
	"vidtube_backend/internal/shared/pagination"
)

const (
	videoFolder     = "videos"
	thumbnailFolder = "thumbnails"
)

// VideoRepository abstracts video persistence.
type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	// FindByID returns ErrVideoNotFound when no video has id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	List(ctx context.Context, q ListQuery) ([]entity.Video, int64, error)
	// Update sets the given columns and returns the updated video.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Video, error)
	// Delete returns ErrVideoNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

// HistoryRecorder appends to a user's watch history.
type HistoryRecorder interface {
	AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

// MediaStore uploads files and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, folder string, f *media.File) (string, error)
	Delete(ctx context.Context, url string) error
}

// Cascader removes records that reference a deleted video.
type Cascader interface {
	VideoDeleted(ctx context.Context, videoID uuid.UUID) *cascade.Report
}

// StatsInvalidator drops cached channel statistics.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, channelID uuid.UUID)
}

// SortField is a sortable video column.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortViews     SortField = "views"
	SortDuration  SortField = "duration"
	SortTitle     SortField = "title"
)

// ParseSortField maps a client value to a SortField, falling back to SortCreatedAt.
func ParseSortField(s string) SortField {
	switch f := SortField(strings.TrimSpace(s)); f {
	case SortViews, SortDuration, SortTitle, SortCreatedAt:
		return f
	}
	return SortCreatedAt
}

// ListQuery selects a page of videos.
type ListQuery struct {
	// Search matches title or description, case-insensitively.
	Search string
	// OwnerID restricts the list to one channel when set.
	OwnerID uuid.UUID
	// IncludeUnpublished is only honoured for the owner's own channel.
	IncludeUnpublished bool
	SortBy             SortField
	Desc               bool
	Page               pagination.Page
}

// PublishInput carries a new video.
type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *media.File
	Thumbnail   *media.File
}

// UpdateInput carries the fields to change. nil means unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Thumbnail   *media.File
}

type videoUsecase struct {
	videos  VideoRepository
	history HistoryRecorder
	media   MediaStore
	cascade Cascader
	stats   StatsInvalidator
}

// NewVideoUsecase wires the video usecase. stats may be nil.
func NewVideoUsecase(videos VideoRepository, history HistoryRecorder, mediaStore MediaStore, cascader Cascader, stats StatsInvalidator) *videoUsecase {
	return &videoUsecase{
		videos:  videos,
		history: history,
		media:   mediaStore,
		cascade: cascader,
		stats:   stats,
	}
}

// Publish uploads the files and stores a published video owned by actor.
func (u *videoUsecase) Publish(ctx context.Context, actor uuid.UUID, in PublishInput) (*entity.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, ErrMissingFields
	}
	if in.Duration < 0 {
		return nil, ErrInvalidDuration
	}
	if in.VideoFile == nil {
		return nil, ErrVideoFileRequired
	}
	if in.Thumbnail == nil {
		return nil, ErrThumbnailRequired
	}

	videoURL, err := u.media.Upload(ctx, videoFolder, in.VideoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	thumbURL, err := u.media.Upload(ctx, thumbnailFolder, in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	v := &entity.Video{
		OwnerID:     actor,
		Title:       in.Title,
		Description: in.Description,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    in.Duration,
		IsPublished: true,
	}
	if err := u.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	u.invalidate(ctx, actor)
	return v, nil
}

// Watch loads a video for playback. An authenticated view increments the
// view count and is appended to the actor's watch history.
func (u *videoUsecase) Watch(ctx context.Context, actor, id uuid.UUID) (*entity.Video, error) {
	v, err := u.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.VisibleTo(actor) {
		return nil, ErrVideoNotFound
	}
	if actor == uuid.Nil {
		return v, nil
	}

	if err := u.videos.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	v.Views++
	if err := u.history.AppendWatchHistory(ctx, actor, id); err != nil {
		// the view itself succeeded
		slog.Error("failed to append watch history", "user_id", actor, "video_id", id, "error", err)
	}
	return v, nil
}

// List returns a page of videos and the total count.
func (u *videoUsecase) List(ctx context.Context, actor uuid.UUID, q ListQuery) ([]entity.Video, int64, error) {
	q.Search = strings.TrimSpace(q.Search)
	q.IncludeUnpublished = q.OwnerID != uuid.Nil && q.OwnerID == actor
	if q.SortBy == "" {
		q.SortBy = SortCreatedAt
	}
	return u.videos.List(ctx, q)
}

// Update changes the supplied fields of a video owned by actor.
func (u *videoUsecase) Update(ctx context.Context, actor, id uuid.UUID, in UpdateInput) (*entity.Video, error) {
	fields := map[string]any{}
	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t != "" {
			fields["title"] = t
		}
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			fields["description"] = d
		}
	}
	if len(fields) == 0 && in.Thumbnail == nil {
		return nil, ErrNothingToUpdate
	}

	v, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	oldThumb := ""
	if in.Thumbnail != nil {
		url, err := u.media.Upload(ctx, thumbnailFolder, in.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		fields["thumbnail"] = url
		oldThumb = v.Thumbnail
	}

	updated, err := u.videos.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if oldThumb != "" {
		u.deleteMedia(ctx, oldThumb)
	}
	return updated, nil
}

// TogglePublish flips the publish flag of a video owned by actor.
func (u *videoUsecase) TogglePublish(ctx context.Context, actor, id uuid.UUID) (*entity.Video, error) {
	v, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	updated, err := u.videos.Update(ctx, id, map[string]any{"is_published": !v.IsPublished})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx, actor)
	return updated, nil
}

// Delete removes a video owned by actor, then cleans up likes, comments,
// watch histories and playlists. Cleanup failures are queued for retry and
// never fail the delete.
func (u *videoUsecase) Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error) {
	v, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := u.videos.Delete(ctx, id); err != nil {
		return nil, err
	}

	report := u.cascade.VideoDeleted(ctx, id)
	u.deleteMedia(ctx, v.VideoFile)
	u.deleteMedia(ctx, v.Thumbnail)
	u.invalidate(ctx, actor)
	return report, nil
}

// owned loads the video and checks that actor owns it. A missing video is
// reported before ownership.
func (u *videoUsecase) owned(ctx context.Context, actor, id uuid.UUID) (*entity.Video, error) {
	v, err := u.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (u *videoUsecase) deleteMedia(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := u.media.Delete(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("failed to delete media", "url", url, "error", err)
	}
}

func (u *videoUsecase) invalidate(ctx context.Context, channelID uuid.UUID) {
	if u.stats != nil {
		u.stats.Invalidate(ctx, channelID)
	}
}
