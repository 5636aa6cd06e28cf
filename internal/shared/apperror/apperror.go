// Package apperror defines the error kinds surfaced by every feature.
// Features declare their sentinel errors with New so the transport layer can
// map any wrapped error to a status code through KindOf.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the caller.
type Kind int

const (
	// KindInternal is an unexpected failure (store, signing). The message is hidden from callers.
	KindInternal Kind = iota
	// KindValidation is a missing or malformed input.
	KindValidation
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindUnauthorized is a failed ownership check or an invalid credential.
	KindUnauthorized
	// KindConflict is a duplicate edge or a resource already in the requested state.
	KindConflict
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus returns the status code used for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Sentinels created with New compare by identity,
// so errors.Is works through fmt.Errorf wrapping.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns a classified error with the given message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err, keeping it reachable through errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for a KindValidation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in the chain,
// or KindInternal when none is present.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err. Internal errors get a
// generic message.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	return "internal server error"
}
