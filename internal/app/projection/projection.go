// Package projection maps domain entities into the read models returned to callers.
// Every function is pure: it reads the entity graph and builds fresh values.
package projection

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"musicroot/internal/app/paging"
	"musicroot/internal/models"
)

// CategoryOutput is the public shape of a genre.
type CategoryOutput struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MusicianOutput is the public shape of a musician.
type MusicianOutput struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserOutput is the public shape of a listener.
type UserOutput struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AlbumOutput summarises an album.
type AlbumOutput struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalMusics int       `json:"totalMusics"`
}

// MusicOutput describes a track as seen by its owner or inside a playlist.
type MusicOutput struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Duration  int             `json:"duration"`
	IsSingle  bool            `json:"isSingle"`
	Disabled  bool            `json:"disabled"`
	CreatedAt time.Time       `json:"createdAt"`
	Category  *CategoryOutput `json:"category"`
	Album     *AlbumOutput    `json:"album"`
}

// FilterMusicOutput describes a track in public listings, including its author.
type FilterMusicOutput struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Duration  int             `json:"duration"`
	IsSingle  bool            `json:"isSingle"`
	Disabled  bool            `json:"disabled"`
	CreatedAt time.Time       `json:"createdAt"`
	Category  *CategoryOutput `json:"category"`
	Musician  *MusicianOutput `json:"musician"`
	Album     *AlbumOutput    `json:"album"`
}

// ListMusicOutput is a page of tracks. Page is one-based.
type ListMusicOutput struct {
	Page       int                 `json:"page"`
	PerPage    int                 `json:"perPage"`
	TotalItems int64               `json:"totalItems"`
	Musics     []FilterMusicOutput `json:"musics"`
}

// ListAlbumOutput is a page of albums. Page is one-based.
type ListAlbumOutput struct {
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalItems int64         `json:"totalItems"`
	Albums     []AlbumOutput `json:"albums"`
}

// FilterMusicianOutput is a musician's public profile.
type FilterMusicianOutput struct {
	MusicianOutput
	Albums []AlbumOutput `json:"albums"`
}

// PlaylistMusicOutput is one playlist slot. Disabled is the slot's own flag; the track's
// flag lives in Music.Disabled.
type PlaylistMusicOutput struct {
	ID        uuid.UUID   `json:"id"`
	Position  int         `json:"position"`
	Disabled  bool        `json:"disabled"`
	CreatedAt time.Time   `json:"createdAt"`
	Music     MusicOutput `json:"music"`
}

// PlaylistOutput is a playlist with its ordered entries.
type PlaylistOutput struct {
	ID         uuid.UUID             `json:"id"`
	Name       string                `json:"name"`
	CoverImage string                `json:"coverImage"`
	Order      int                   `json:"order"`
	Disabled   bool                  `json:"disabled"`
	User       *UserOutput           `json:"user"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	Musics     []PlaylistMusicOutput `json:"musics"`
}

// Category projects c; nil stays nil.
func Category(c *models.Category) *CategoryOutput {
	if c == nil {
		return nil
	}
	return &CategoryOutput{ID: c.ID, Name: string(c.Name)}
}

// Musician projects m without credentials; nil stays nil.
func Musician(m *models.Musician) *MusicianOutput {
	if m == nil {
		return nil
	}
	return &MusicianOutput{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

// User projects u without credentials; nil stays nil.
func User(u *models.User) *UserOutput {
	if u == nil {
		return nil
	}
	return &UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Album projects a; the track count is taken from the loaded association.
func Album(a *models.Album) *AlbumOutput {
	if a == nil {
		return nil
	}
	return &AlbumOutput{
		ID:          a.ID,
		Name:        a.Name,
		CreatedAt:   a.CreatedAt,
		TotalMusics: len(a.Musics),
	}
}

// Music projects m for its owner.
func Music(m *models.Music) MusicOutput {
	return MusicOutput{
		ID:        m.ID,
		Name:      m.Name,
		Duration:  m.Duration,
		IsSingle:  m.IsSingle,
		Disabled:  m.Disabled,
		CreatedAt: m.CreatedAt,
		Category:  Category(m.Category),
		Album:     Album(m.Album),
	}
}

// FilterMusic projects m for public listings.
func FilterMusic(m *models.Music) FilterMusicOutput {
	return FilterMusicOutput{
		ID:        m.ID,
		Name:      m.Name,
		Duration:  m.Duration,
		IsSingle:  m.IsSingle,
		Disabled:  m.Disabled,
		CreatedAt: m.CreatedAt,
		Category:  Category(m.Category),
		Musician:  Musician(m.Musician),
		Album:     Album(m.Album),
	}
}

// MusicPage projects a page of tracks.
func MusicPage(page paging.Page[*models.Music], perPage int) ListMusicOutput {
	out := ListMusicOutput{
		Page:       page.Number + 1,
		PerPage:    perPage,
		TotalItems: page.Total,
		Musics:     make([]FilterMusicOutput, 0, len(page.Items)),
	}
	for _, m := range page.Items {
		out.Musics = append(out.Musics, FilterMusic(m))
	}
	return out
}

// AlbumPage projects a page of albums.
func AlbumPage(page paging.Page[*models.Album], perPage int) ListAlbumOutput {
	out := ListAlbumOutput{
		Page:       page.Number + 1,
		PerPage:    perPage,
		TotalItems: page.Total,
		Albums:     make([]AlbumOutput, 0, len(page.Items)),
	}
	for _, a := range page.Items {
		out.Albums = append(out.Albums, *Album(a))
	}
	return out
}

// FilterMusician projects a musician's public profile with album summaries.
func FilterMusician(m *models.Musician) FilterMusicianOutput {
	out := FilterMusicianOutput{
		MusicianOutput: *Musician(m),
		Albums:         make([]AlbumOutput, 0, len(m.Albums)),
	}
	for _, a := range m.Albums {
		out.Albums = append(out.Albums, *Album(a))
	}
	return out
}

// PlaylistMusic projects a single playlist entry.
func PlaylistMusic(e *models.PlaylistMusic) PlaylistMusicOutput {
	out := PlaylistMusicOutput{
		ID:        e.ID,
		Position:  e.Position,
		Disabled:  e.Disabled,
		CreatedAt: e.CreatedAt,
	}
	if e.Music != nil {
		out.Music = Music(e.Music)
	}
	return out
}

// Playlist projects p with its entries ordered by position.
func Playlist(p *models.Playlist) PlaylistOutput {
	entries := make([]*models.PlaylistMusic, len(p.Musics))
	copy(entries, p.Musics)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})

	out := PlaylistOutput{
		ID:         p.ID,
		Name:       p.Name,
		CoverImage: p.CoverImage,
		Order:      p.Order,
		Disabled:   p.Disabled,
		User:       User(p.User),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Musics:     make([]PlaylistMusicOutput, 0, len(entries)),
	}
	for _, e := range entries {
		out.Musics = append(out.Musics, PlaylistMusic(e))
	}
	return out
}
