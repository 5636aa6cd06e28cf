// Package ident generates and parses entity identifiers.
package ident

import (
	"strings"

	"github.com/google/uuid"

	"vidtube_backend/internal/shared/apperror"
)

// ErrMalformedID is returned when a path or body identifier cannot be parsed.
var ErrMalformedID = apperror.Validation("malformed identifier")

// New returns a time-ordered (v7) identifier, so ordering by id follows insertion order.
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Parse parses a client-supplied identifier. Empty or nil identifiers are rejected.
func Parse(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrMalformedID
	}
	return id, nil
}
