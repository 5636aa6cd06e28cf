// Package usecase implements the business logic for tweets.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	ErrTweetNotFound  = apperror.New(apperror.KindNotFound, "tweet not found")
	ErrMissingContent = apperror.Validation("content is required")
)
