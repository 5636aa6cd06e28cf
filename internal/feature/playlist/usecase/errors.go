// Package usecase implements playlists: ordered sets of videos owned by a user.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	ErrPlaylistNotFound = apperror.New(apperror.KindNotFound, "playlist not found")
	ErrVideoNotFound    = apperror.New(apperror.KindNotFound, "video not found")
	ErrUserNotFound     = apperror.New(apperror.KindNotFound, "user not found")
	ErrMissingFields    = apperror.Validation("name and description are required")
	ErrNothingToUpdate  = apperror.Validation("provide at least name or description")
)
