// Package checks holds the predicates every use case runs before it touches data:
// required fields, existence, disabled state and ownership.
package checks

import (
	"fmt"
	"strings"

	"musicroot/internal/app/apperr"
)

// Disableable is implemented by every soft-deletable entity.
type Disableable interface {
	IsDisabled() bool
}

// Required fails with apperr.ErrInvalidInput when v is the zero value of its type.
// desc is a human-readable name for the field, e.g. "Musician id".
func Required[T comparable](desc string, v T) error {
	var zero T
	if v == zero {
		return apperr.InvalidInput("%s can't be empty", desc)
	}
	return nil
}

// RequiredText is Required for free text, ignoring surrounding whitespace.
func RequiredText(desc, v string) error {
	return Required(desc, strings.TrimSpace(v))
}

// Exist converts a provider lookup into an apperr.ErrNotFound failure when the entity is
// absent. Provider errors are wrapped and passed through.
func Exist[T any](kind string, v *T, err error) (*T, error) {
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", strings.ToLower(kind), err)
	}
	if v == nil {
		return nil, apperr.NotFound(kind)
	}
	return v, nil
}

// NotDisabled fails with apperr.ErrForbidden when entity is soft-deleted.
func NotDisabled(kind string, entity Disableable) error {
	if entity.IsDisabled() {
		return apperr.Forbidden(kind, kind+" is disabled")
	}
	return nil
}

// Owns fails with apperr.ErrForbidden unless actorID is the recorded owner.
func Owns(kind string, actorID, ownerID int64) error {
	if actorID == 0 || actorID != ownerID {
		return apperr.Forbidden(kind, kind+" does not belong to this account")
	}
	return nil
}
