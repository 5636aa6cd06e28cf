// Package ownership decides whether an actor may mutate an owned resource.
package ownership

import (
	"github.com/google/uuid"

	"vidtube_backend/internal/shared/apperror"
)

// ErrNotOwner is returned when the actor does not own the resource.
var ErrNotOwner = apperror.New(apperror.KindUnauthorized, "you are not the owner of this resource")

// Owned is implemented by every entity with a single owning user.
type Owned interface {
	OwnedBy() uuid.UUID
}

// Authorize reports whether actor owns resource. Callers load the resource
// first, so a missing resource surfaces as NotFound before this is reached.
// Identifiers are compared by value.
func Authorize(actor uuid.UUID, resource Owned) error {
	if actor == uuid.Nil || resource == nil {
		return ErrNotOwner
	}
	if resource.OwnedBy() != actor {
		return ErrNotOwner
	}
	return nil
}
