// Package apperr classifies use-case failures into a small set of kinds the transport
// adapters translate into their own status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a missing or malformed required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals a disabled entity or an actor acting on something it does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals that the requested change clashes with the current state.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized signals credentials that do not match any active account.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a classified failure. errors.Is matches it against its Kind.
type Error struct {
	Kind    error
	Entity  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// InvalidInput builds an ErrInvalidInput failure.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound failure for the given entity kind, e.g. "Musician".
func NotFound(entity string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, Message: entity + " not found"}
}

// Forbidden builds an ErrForbidden failure carrying reason.
func Forbidden(entity, reason string) error {
	return &Error{Kind: ErrForbidden, Entity: entity, Message: reason}
}

// Conflict builds an ErrConflict failure.
func Conflict(entity, format string, args ...any) error {
	return &Error{Kind: ErrConflict, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an ErrUnauthorized failure.
func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// KindOf returns the classified kind of err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
