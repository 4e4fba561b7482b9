// Package memory implements the data providers on in-process maps. It backs the demo
// mode of the server and the use-case tests.
package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"musicroot/internal/models"
)

// ErrNotFound is returned by Update calls whose target does not exist.
var ErrNotFound = errors.New("record not found")

type albumRow struct {
	id         uuid.UUID
	seq        int64
	name       string
	createdAt  time.Time
	musicianID int64
}

type musicRow struct {
	id         uuid.UUID
	seq        int64
	name       string
	duration   int
	isSingle   bool
	disabled   bool
	createdAt  time.Time
	categoryID uuid.UUID
	musicianID int64
	albumID    uuid.UUID
}

type playlistRow struct {
	id         uuid.UUID
	name       string
	coverImage string
	order      int
	disabled   bool
	createdAt  time.Time
	updatedAt  time.Time
	userID     int64
}

type entryRow struct {
	id         uuid.UUID
	playlistID uuid.UUID
	musicID    uuid.UUID
	position   int
	disabled   bool
	createdAt  time.Time
}

// Store keeps every catalog table in memory. Entities handed out are freshly assembled
// copies; mutating them never touches the stored rows.
type Store struct {
	mu sync.RWMutex

	musicians  map[int64]models.Musician
	users      map[int64]models.User
	categories map[uuid.UUID]models.Category
	albums     map[uuid.UUID]albumRow
	musics     map[uuid.UUID]musicRow
	playlists  map[uuid.UUID]playlistRow
	entries    map[uuid.UUID]entryRow

	nextMusicianID int64
	nextUserID     int64
	seq            int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		musicians:      make(map[int64]models.Musician),
		users:          make(map[int64]models.User),
		categories:     make(map[uuid.UUID]models.Category),
		albums:         make(map[uuid.UUID]albumRow),
		musics:         make(map[uuid.UUID]musicRow),
		playlists:      make(map[uuid.UUID]playlistRow),
		entries:        make(map[uuid.UUID]entryRow),
		nextMusicianID: 1,
		nextUserID:     1,
	}
}

// SeedCategories inserts the whole genre taxonomy and returns it keyed by name.
func (s *Store) SeedCategories() map[models.CategoryName]models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := make(map[models.CategoryName]models.Category, len(models.CategoryNames))
	for _, existing := range s.categories {
		seeded[existing.Name] = existing
	}
	for _, name := range models.CategoryNames {
		if _, ok := seeded[name]; ok {
			continue
		}
		c := models.Category{ID: uuid.New(), Name: name}
		s.categories[c.ID] = c
		seeded[name] = c
	}
	return seeded
}

// DisableUser flags a listener account as disabled. It reports whether the user exists.
func (s *Store) DisableUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return false
	}
	u.Disabled = true
	s.users[id] = u
	return true
}

// Musicians returns the musician provider view.
func (s *Store) Musicians() *Musicians { return &Musicians{s: s} }

// Musics returns the music provider view.
func (s *Store) Musics() *Musics { return &Musics{s: s} }

// Albums returns the album provider view.
func (s *Store) Albums() *Albums { return &Albums{s: s} }

// Categories returns the category provider view.
func (s *Store) Categories() *Categories { return &Categories{s: s} }

// Users returns the user provider view.
func (s *Store) Users() *Users { return &Users{s: s} }

// Playlists returns the playlist provider view.
func (s *Store) Playlists() *Playlists { return &Playlists{s: s} }

// PlaylistMusics returns the playlist entry provider view.
func (s *Store) PlaylistMusics() *PlaylistMusics { return &PlaylistMusics{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func now() time.Time {
	return time.Now().UTC()
}

// The assemble helpers expect s.mu to be held.

func (s *Store) musicianShallow(id int64) *models.Musician {
	m, ok := s.musicians[id]
	if !ok {
		return nil
	}
	m.Albums = nil
	m.Musics = nil
	return &m
}

func (s *Store) category(id uuid.UUID) *models.Category {
	c, ok := s.categories[id]
	if !ok {
		return nil
	}
	return &c
}

func (s *Store) musicFlat(row musicRow) *models.Music {
	return &models.Music{
		ID:        row.id,
		Name:      row.name,
		Duration:  row.duration,
		IsSingle:  row.isSingle,
		Disabled:  row.disabled,
		CreatedAt: row.createdAt,
		Category:  s.category(row.categoryID),
	}
}

func (s *Store) album(id uuid.UUID) *models.Album {
	row, ok := s.albums[id]
	if !ok {
		return nil
	}

	album := &models.Album{
		ID:        row.id,
		Name:      row.name,
		CreatedAt: row.createdAt,
		Musician:  s.musicianShallow(row.musicianID),
	}
	for _, m := range s.sortedMusics() {
		if m.albumID == id {
			album.Musics = append(album.Musics, s.musicFlat(m))
		}
	}
	return album
}

func (s *Store) music(id uuid.UUID) *models.Music {
	row, ok := s.musics[id]
	if !ok {
		return nil
	}

	music := s.musicFlat(row)
	music.Musician = s.musicianShallow(row.musicianID)
	if row.albumID != uuid.Nil {
		music.Album = s.album(row.albumID)
	}
	return music
}

func (s *Store) musician(id int64) *models.Musician {
	m := s.musicianShallow(id)
	if m == nil {
		return nil
	}

	for _, row := range s.sortedAlbums() {
		if row.musicianID == id {
			m.Albums = append(m.Albums, s.album(row.id))
		}
	}
	for _, row := range s.sortedMusics() {
		if row.musicianID == id {
			m.Musics = append(m.Musics, s.musicFlat(row))
		}
	}
	return m
}

func (s *Store) user(id int64) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *Store) entry(row entryRow) *models.PlaylistMusic {
	return &models.PlaylistMusic{
		ID:         row.id,
		PlaylistID: row.playlistID,
		Position:   row.position,
		Disabled:   row.disabled,
		CreatedAt:  row.createdAt,
		Music:      s.music(row.musicID),
	}
}

func (s *Store) playlist(id uuid.UUID) *models.Playlist {
	row, ok := s.playlists[id]
	if !ok {
		return nil
	}

	playlist := &models.Playlist{
		ID:         row.id,
		Name:       row.name,
		CoverImage: row.coverImage,
		Order:      row.order,
		Disabled:   row.disabled,
		CreatedAt:  row.createdAt,
		UpdatedAt:  row.updatedAt,
		User:       s.user(row.userID),
	}

	var entries []entryRow
	for _, e := range s.entries {
		if e.playlistID == id {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].position < entries[j].position
	})
	for _, e := range entries {
		playlist.Musics = append(playlist.Musics, s.entry(e))
	}
	return playlist
}

// sortedMusics returns the rows newest first.
func (s *Store) sortedMusics() []musicRow {
	rows := make([]musicRow, 0, len(s.musics))
	for _, row := range s.musics {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return rows
}

// sortedAlbums returns the rows newest first.
func (s *Store) sortedAlbums() []albumRow {
	rows := make([]albumRow, 0, len(s.albums))
	for _, row := range s.albums {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return rows
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func window[T any](items []T, offset, size int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
