package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/like/domain/entity"
)

// LikeRepository abstracts like persistence.
type LikeRepository interface {
	// Create returns ErrAlreadyLiked when the edge exists.
	Create(ctx context.Context, l *entity.Like) error
	// Delete returns ErrLikeNotFound when nothing was removed.
	Delete(ctx context.Context, owner uuid.UUID, target entity.Target) error
	// TargetVisible reports whether target exists and actor may see it.
	// Unpublished videos are visible to their owner only.
	TargetVisible(ctx context.Context, actor uuid.UUID, target entity.Target) (bool, error)
}

type likeUsecase struct {
	likes LikeRepository
}

func NewLikeUsecase(likes LikeRepository) *likeUsecase {
	return &likeUsecase{likes: likes}
}

// Like records that actor likes target. A second like is a conflict.
func (u *likeUsecase) Like(ctx context.Context, actor uuid.UUID, target entity.Target) (*entity.Like, error) {
	if _, err := entity.NewTarget(target.Kind, target.ID); err != nil {
		return nil, err
	}
	ok, err := u.likes.TargetVisible(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTargetNotFound
	}

	l := &entity.Like{OwnerID: actor, TargetKind: target.Kind, TargetID: target.ID}
	if err := u.likes.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Unlike removes actor's like on target.
func (u *likeUsecase) Unlike(ctx context.Context, actor uuid.UUID, target entity.Target) error {
	if _, err := entity.NewTarget(target.Kind, target.ID); err != nil {
		return err
	}
	return u.likes.Delete(ctx, actor, target)
}

// Toggle likes target when actor does not like it yet and unlikes it
// otherwise. It reports the resulting state.
func (u *likeUsecase) Toggle(ctx context.Context, actor uuid.UUID, target entity.Target) (bool, error) {
	err := u.Unlike(ctx, actor, target)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, ErrLikeNotFound):
		return false, err
	}
	if _, err := u.Like(ctx, actor, target); err != nil {
		return false, err
	}
	return true, nil
}
