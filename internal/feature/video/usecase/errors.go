// Package usecase implements the business logic for the video feature.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	// ErrVideoNotFound is returned when no video has the id, or when the
	// video is unpublished and the actor is not its owner.
	ErrVideoNotFound = apperror.New(apperror.KindNotFound, "video not found")

	// ErrMissingFields is returned when the title or description is blank.
	ErrMissingFields = apperror.Validation("title and description are required")

	// ErrVideoFileRequired is returned when publishing without a video file.
	ErrVideoFileRequired = apperror.Validation("video file is required")

	// ErrThumbnailRequired is returned when publishing without a thumbnail.
	ErrThumbnailRequired = apperror.Validation("thumbnail is required")

	// ErrInvalidDuration is returned for a negative duration.
	ErrInvalidDuration = apperror.Validation("duration must not be negative")

	// ErrNothingToUpdate is returned when an update carries no field.
	ErrNothingToUpdate = apperror.Validation("at least one field is required")
)
