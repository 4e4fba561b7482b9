package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a listener account that curates playlists.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	Disabled  bool
	CreatedAt time.Time
}

// IsDisabled reports the soft-delete flag.
func (u *User) IsDisabled() bool { return u.Disabled }

// Playlist captures a user-curated, ordered list of tracks.
type Playlist struct {
	ID         uuid.UUID
	Name       string
	CoverImage string
	Order      int
	Disabled   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User   *User
	Musics []*PlaylistMusic
}

// IsDisabled reports the soft-delete flag.
func (p *Playlist) IsDisabled() bool { return p.Disabled }

// OwnerID returns the id of the owning user, or zero when unknown.
func (p *Playlist) OwnerID() int64 {
	if p.User == nil {
		return 0
	}
	return p.User.ID
}

// PositionTaken reports whether any entry already occupies position.
func (p *Playlist) PositionTaken(position int) bool {
	for _, entry := range p.Musics {
		if entry.Position == position {
			return true
		}
	}
	return false
}

// NextPosition returns the slot right after the highest occupied position.
func (p *Playlist) NextPosition() int {
	next := 0
	for _, entry := range p.Musics {
		if entry.Position >= next {
			next = entry.Position + 1
		}
	}
	return next
}

// PlaylistMusic is one slot of a playlist pointing at a track.
type PlaylistMusic struct {
	ID         uuid.UUID
	PlaylistID uuid.UUID
	Position   int
	Disabled   bool
	CreatedAt  time.Time

	Music *Music
}

// IsDisabled reports the soft-delete flag.
func (e *PlaylistMusic) IsDisabled() bool { return e.Disabled }
