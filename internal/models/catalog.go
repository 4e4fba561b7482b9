package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the kind of account behind an actor.
type Role string

const (
	RoleMusician Role = "MUSICIAN"
	RoleUser     Role = "USER"
)

// CategoryName is the fixed genre taxonomy a track is filed under.
type CategoryName string

const (
	CategoryBlues      CategoryName = "BLUES"
	CategoryClassical  CategoryName = "CLASSICAL"
	CategoryCountry    CategoryName = "COUNTRY"
	CategoryElectronic CategoryName = "ELECTRONIC"
	CategoryHipHop     CategoryName = "HIPHOP"
	CategoryJazz       CategoryName = "JAZZ"
	CategoryMetal      CategoryName = "METAL"
	CategoryPop        CategoryName = "POP"
	CategoryReggae     CategoryName = "REGGAE"
	CategoryRock       CategoryName = "ROCK"
)

// CategoryNames lists the taxonomy in display order.
var CategoryNames = []CategoryName{
	CategoryBlues,
	CategoryClassical,
	CategoryCountry,
	CategoryElectronic,
	CategoryHipHop,
	CategoryJazz,
	CategoryMetal,
	CategoryPop,
	CategoryReggae,
	CategoryRock,
}

// Valid reports whether n belongs to the taxonomy.
func (n CategoryName) Valid() bool {
	for _, name := range CategoryNames {
		if name == n {
			return true
		}
	}
	return false
}

// Category is a genre bucket.
type Category struct {
	ID   uuid.UUID
	Name CategoryName
}

// Musician publishes tracks and owns albums.
type Musician struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	Disabled  bool
	CreatedAt time.Time

	Albums []*Album
	Musics []*Music
}

// IsDisabled reports the soft-delete flag.
func (m *Musician) IsDisabled() bool { return m.Disabled }

// Music is a single published track.
type Music struct {
	ID        uuid.UUID
	Name      string
	Duration  int // seconds
	IsSingle  bool
	Disabled  bool
	CreatedAt time.Time

	Category *Category
	Musician *Musician
	// Album is nil until the track joins an album.
	Album *Album
}

// IsDisabled reports the soft-delete flag.
func (m *Music) IsDisabled() bool { return m.Disabled }

// OwnerID returns the id of the authoring musician, or zero when unknown.
func (m *Music) OwnerID() int64 {
	if m.Musician == nil {
		return 0
	}
	return m.Musician.ID
}

// AlbumID returns the id of the album the track belongs to, if any.
func (m *Music) AlbumID() (uuid.UUID, bool) {
	if m.Album == nil {
		return uuid.Nil, false
	}
	return m.Album.ID, true
}

// Album groups tracks of a single musician.
type Album struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time

	Musician *Musician
	Musics   []*Music
}

// OwnerID returns the id of the owning musician, or zero when unknown.
func (a *Album) OwnerID() int64 {
	if a.Musician == nil {
		return 0
	}
	return a.Musician.ID
}
