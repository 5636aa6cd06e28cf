// Package usecase implements likes on videos, comments and tweets.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	// ErrAlreadyLiked is returned when the actor already likes the target.
	ErrAlreadyLiked = apperror.New(apperror.KindConflict, "already liked")
	// ErrLikeNotFound is returned when unliking a target the actor does not like.
	ErrLikeNotFound = apperror.New(apperror.KindNotFound, "like not found")
	// ErrTargetNotFound is returned when the liked video, comment or tweet does not exist.
	ErrTargetNotFound = apperror.New(apperror.KindNotFound, "like target not found")
)
