// Package usecase compiles the read views of the platform into document plans.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	ErrMissingUsername = apperror.Validation("username is missing")
	ErrChannelNotFound = apperror.New(apperror.KindNotFound, "channel does not exist")
	ErrUserNotFound    = apperror.New(apperror.KindNotFound, "user not found")
	ErrVideoNotFound   = apperror.New(apperror.KindNotFound, "video not found")

	// ErrUnsafePlan is returned when a plan would expose private user fields.
	ErrUnsafePlan = apperror.New(apperror.KindInternal, "view exposes private user fields")
)
