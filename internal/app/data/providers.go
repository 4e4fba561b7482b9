// Package data declares the persistence contracts the use cases depend on.
//
// Identity lookups (FindByID, FindByName, ...) return (nil, nil) when nothing matches;
// an error always means the lookup itself failed. Register returns the stored entity with
// its generated id and timestamps. Entities come back with their associations loaded:
// a Music carries its Category, Musician and Album (the Album with its track list), a
// Musician carries its Albums (each with its track list), a Playlist carries its User and
// entries (each entry with its Music and the Music's Category).
package data

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"musicroot/internal/app/paging"
	"musicroot/internal/models"
)

// ErrDuplicate is returned by Register when a uniqueness constraint of the backing store
// rejects the row, e.g. two signups racing for the same email.
var ErrDuplicate = errors.New("record already exists")

// MusicianProvider exposes musician persistence.
type MusicianProvider interface {
	FindByID(ctx context.Context, id int64) (*models.Musician, error)
	FindByName(ctx context.Context, name string) (*models.Musician, error)
	FindByEmail(ctx context.Context, email string) (*models.Musician, error)
	FindByEmailOrName(ctx context.Context, email, name string) (*models.Musician, error)
	Register(ctx context.Context, musician *models.Musician) (*models.Musician, error)
	Update(ctx context.Context, musician *models.Musician) (*models.Musician, error)
}

// MusicFilter narrows paged music listings. Empty text fields are ignored; set fields
// combine with AND.
type MusicFilter struct {
	// Name matches a substring of the track name, case-insensitively.
	Name string
	// Album matches a substring of the album name, case-insensitively.
	Album      string
	MusicianID int64
	// IncludeDisabled keeps soft-deleted tracks in the result.
	IncludeDisabled bool
}

// MusicProvider exposes track persistence.
type MusicProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Music, error)
	FindByAlbumAndName(ctx context.Context, albumID uuid.UUID, name string) (*models.Music, error)
	FindAll(ctx context.Context, req paging.Request, filter MusicFilter) (paging.Page[*models.Music], error)
	Register(ctx context.Context, music *models.Music) (*models.Music, error)
	Update(ctx context.Context, music *models.Music) (*models.Music, error)
}

// AlbumProvider exposes album persistence.
type AlbumProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error)
	FindByNameAndMusician(ctx context.Context, name string, musicianID int64) (*models.Album, error)
	// FindAllByMusician lists a musician's albums; a non-empty name filters by substring.
	FindAllByMusician(ctx context.Context, req paging.Request, musicianID int64, name string) (paging.Page[*models.Album], error)
	Register(ctx context.Context, album *models.Album) (*models.Album, error)
}

// CategoryProvider exposes the fixed genre taxonomy.
type CategoryProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// UserProvider exposes listener accounts.
type UserProvider interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, user *models.User) (*models.User, error)
}

// PlaylistProvider exposes playlist persistence.
type PlaylistProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	Register(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error)
}

// PlaylistMusicProvider exposes playlist entries.
type PlaylistMusicProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PlaylistMusic, error)
	Register(ctx context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error)
	Update(ctx context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error)
}
