// Package usecase implements channel subscriptions.
package usecase

import "vidtube_backend/internal/shared/apperror"

var (
	ErrSelfSubscription     = apperror.Validation("cannot subscribe to your own channel")
	ErrChannelNotFound      = apperror.New(apperror.KindNotFound, "channel not found")
	ErrAlreadySubscribed    = apperror.New(apperror.KindConflict, "already subscribed")
	ErrSubscriptionNotFound = apperror.New(apperror.KindNotFound, "subscription not found")
)
