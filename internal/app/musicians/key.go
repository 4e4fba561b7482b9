package musicians

import (
	"strings"

	"musicroot/internal/app/apperr"
)

type keyKind int

const (
	keyByID keyKind = iota + 1
	keyByName
)

// Key identifies a musician either by id or by name.
type Key struct {
	kind keyKind
	id   int64
	name string
}

// ByID builds a Key that resolves a musician by id.
func ByID(id int64) Key { return Key{kind: keyByID, id: id} }

// ByName builds a Key that resolves a musician by name.
func ByName(name string) Key { return Key{kind: keyByName, name: name} }

// KeyOf picks the lookup key from optional request parameters. The id wins when both are
// present; blank names count as absent.
func KeyOf(id *int64, name *string) (Key, error) {
	if id != nil && *id != 0 {
		return ByID(*id), nil
	}
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			return ByName(trimmed), nil
		}
	}
	return Key{}, apperr.InvalidInput("Musician id or name can't be empty")
}
