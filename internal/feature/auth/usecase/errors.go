// Package usecase implements the business logic for the auth feature.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	// ErrUserNotFound is returned when a user cannot be found by id, username or email.
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "user does not exist")

	// ErrUserExists is returned when the username or email is already registered.
	ErrUserExists = apperror.New(apperror.KindConflict, "user with email or username already exists")

	// ErrMissingFields is returned when a required field is blank after trimming.
	ErrMissingFields = apperror.Validation("all fields are required")

	// ErrWeakPassword is returned when the password is shorter than minPasswordLength.
	ErrWeakPassword = apperror.Validation("password must be at least 8 characters long")

	// ErrAvatarRequired is returned when registration has no avatar file.
	ErrAvatarRequired = apperror.Validation("avatar file is required")

	// ErrLoginRequired is returned when neither username nor email is given.
	ErrLoginRequired = apperror.Validation("username or email is required")

	// ErrMissingFile is returned when an image update carries no file.
	ErrMissingFile = apperror.Validation("image file is missing")

	// ErrNothingToUpdate is returned when an update carries no field.
	ErrNothingToUpdate = apperror.Validation("at least one field is required")

	// ErrInvalidCredentials is returned for an unknown login or a wrong password.
	// Both cases share one error so callers cannot enumerate accounts.
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid user credentials")

	// ErrWrongPassword is returned by ChangePassword when the old password does not match.
	ErrWrongPassword = apperror.Validation("invalid old password")

	// ErrUnauthenticated is returned for a missing, forged or expired access token.
	ErrUnauthenticated = apperror.New(apperror.KindUnauthorized, "invalid access token")

	// ErrInvalidSession is returned when a refresh token is forged, expired,
	// superseded by a rotation, or revoked. The cases are indistinguishable.
	ErrInvalidSession = apperror.New(apperror.KindUnauthorized, "refresh token is expired or used")
)
