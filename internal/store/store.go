// Package store implements the catalog data providers on Postgres.
package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"musicroot/internal/app/data"
)

var (
	// ErrNotFound signals that an update targeted a missing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = data.ErrDuplicate
)

var (
	_ data.MusicianProvider      = (*Musicians)(nil)
	_ data.MusicProvider         = (*Musics)(nil)
	_ data.AlbumProvider         = (*Albums)(nil)
	_ data.CategoryProvider      = (*Categories)(nil)
	_ data.UserProvider          = (*Users)(nil)
	_ data.PlaylistProvider      = (*Playlists)(nil)
	_ data.PlaylistMusicProvider = (*PlaylistMusics)(nil)
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Musicians returns the musician provider.
func (s *Store) Musicians() *Musicians { return &Musicians{s: s} }

// Musics returns the music provider.
func (s *Store) Musics() *Musics { return &Musics{s: s} }

// Albums returns the album provider.
func (s *Store) Albums() *Albums { return &Albums{s: s} }

// Categories returns the category provider.
func (s *Store) Categories() *Categories { return &Categories{s: s} }

// Users returns the user provider.
func (s *Store) Users() *Users { return &Users{s: s} }

// Playlists returns the playlist provider.
func (s *Store) Playlists() *Playlists { return &Playlists{s: s} }

// PlaylistMusics returns the playlist entry provider.
func (s *Store) PlaylistMusics() *PlaylistMusics { return &PlaylistMusics{s: s} }

type scanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally anywhere in the value.
// Callers pair it with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
