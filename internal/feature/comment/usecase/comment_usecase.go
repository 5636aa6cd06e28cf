package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	cascade "vidtube_backend/internal/feature/cascade/domain/entity"
	"vidtube_backend/internal/feature/comment/domain/entity"
	"vidtube_backend/internal/shared/ownership"
)

// CommentRepository abstracts comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	// FindByID returns ErrCommentNotFound when no comment has id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// VideoVisible reports whether the video exists and actor may see it.
	VideoVisible(ctx context.Context, actor, videoID uuid.UUID) (bool, error)
}

// Cascader removes likes on a deleted comment.
type Cascader interface {
	CommentDeleted(ctx context.Context, commentID uuid.UUID) *cascade.Report
}

type commentUsecase struct {
	comments CommentRepository
	cascade  Cascader
}

func NewCommentUsecase(comments CommentRepository, cascader Cascader) *commentUsecase {
	return &commentUsecase{comments: comments, cascade: cascader}
}

// Add posts a comment by actor on a video actor can see.
func (u *commentUsecase) Add(ctx context.Context, actor, videoID uuid.UUID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	ok, err := u.comments.VideoVisible(ctx, actor, videoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVideoNotFound
	}

	c := &entity.Comment{Content: content, VideoID: videoID, OwnerID: actor}
	if err := u.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the content of a comment owned by actor.
func (u *commentUsecase) Update(ctx context.Context, actor, id uuid.UUID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	if _, err := u.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return u.comments.UpdateContent(ctx, id, content)
}

// Delete removes a comment owned by actor and then its likes.
func (u *commentUsecase) Delete(ctx context.Context, actor, id uuid.UUID) (*cascade.Report, error) {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := u.comments.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u.cascade.CommentDeleted(ctx, id), nil
}

func (u *commentUsecase) owned(ctx context.Context, actor, id uuid.UUID) (*entity.Comment, error) {
	c, err := u.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actor, c); err != nil {
		return nil, err
	}
	return c, nil
}
