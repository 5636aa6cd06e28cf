// Package usecase implements the business logic for video comments.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	ErrCommentNotFound = apperror.New(apperror.KindNotFound, "comment not found")
	ErrVideoNotFound   = apperror.New(apperror.KindNotFound, "video not found")
	ErrMissingContent  = apperror.Validation("content is required")
)
