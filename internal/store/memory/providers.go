package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"musicroot/internal/app/data"
	"musicroot/internal/app/paging"
	"musicroot/internal/models"
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

// Musicians implements data.MusicianProvider.
type Musicians struct{ s *Store }

func (p *Musicians) FindByID(_ context.Context, id int64) (*models.Musician, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.musician(id), nil
}

func (p *Musicians) FindByName(_ context.Context, name string) (*models.Musician, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for id, m := range p.s.musicians {
		if strings.EqualFold(m.Name, name) {
			return p.s.musician(id), nil
		}
	}
	return nil, nil
}

func (p *Musicians) FindByEmail(_ context.Context, email string) (*models.Musician, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for id, m := range p.s.musicians {
		if strings.EqualFold(m.Email, email) {
			return p.s.musician(id), nil
		}
	}
	return nil, nil
}

func (p *Musicians) FindByEmailOrName(_ context.Context, email, name string) (*models.Musician, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for id, m := range p.s.musicians {
		if strings.EqualFold(m.Email, email) || strings.EqualFold(m.Name, name) {
			return p.s.musician(id), nil
		}
	}
	return nil, nil
}

func (p *Musicians) Register(_ context.Context, musician *models.Musician) (*models.Musician, error) {
	if musician == nil {
		return nil, errors.New("musician is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row := *musician
	row.ID = p.s.nextMusicianID
	p.s.nextMusicianID++
	row.CreatedAt = now()
	row.Albums = nil
	row.Musics = nil
	p.s.musicians[row.ID] = row

	return p.s.musician(row.ID), nil
}

func (p *Musicians) Update(_ context.Context, musician *models.Musician) (*models.Musician, error) {
	if musician == nil {
		return nil, errors.New("musician is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row, ok := p.s.musicians[musician.ID]
	if !ok {
		return nil, ErrNotFound
	}
	row.Name = musician.Name
	row.Email = musician.Email
	row.Password = musician.Password
	row.Role = musician.Role
	row.Disabled = musician.Disabled
	p.s.musicians[row.ID] = row

	return p.s.musician(row.ID), nil
}

// Musics implements data.MusicProvider.
type Musics struct{ s *Store }

func (p *Musics) FindByID(_ context.Context, id uuid.UUID) (*models.Music, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.music(id), nil
}

func (p *Musics) FindByAlbumAndName(_ context.Context, albumID uuid.UUID, name string) (*models.Music, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for _, row := range p.s.sortedMusics() {
		if row.albumID == albumID && row.name == name {
			return p.s.music(row.id), nil
		}
	}
	return nil, nil
}

func (p *Musics) FindAll(_ context.Context, req paging.Request, filter data.MusicFilter) (paging.Page[*models.Music], error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var matched []musicRow
	for _, row := range p.s.sortedMusics() {
		if !filter.IncludeDisabled && row.disabled {
			continue
		}
		if filter.MusicianID != 0 && row.musicianID != filter.MusicianID {
			continue
		}
		if filter.Name != "" && !containsFold(row.name, filter.Name) {
			continue
		}
		if filter.Album != "" {
			album, ok := p.s.albums[row.albumID]
			if !ok || !containsFold(album.name, filter.Album) {
				continue
			}
		}
		matched = append(matched, row)
	}

	page := paging.Page[*models.Music]{Total: int64(len(matched)), Number: req.Page}
	for _, row := range window(matched, req.Offset(), req.Size) {
		page.Items = append(page.Items, p.s.music(row.id))
	}
	return page, nil
}

func (p *Musics) Register(_ context.Context, music *models.Music) (*models.Music, error) {
	if music == nil {
		return nil, errors.New("music is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row := musicRowFrom(music)
	row.id = uuid.New()
	row.seq = p.s.nextSeq()
	row.createdAt = now()
	p.s.musics[row.id] = row

	return p.s.music(row.id), nil
}

func (p *Musics) Update(_ context.Context, music *models.Music) (*models.Music, error) {
	if music == nil {
		return nil, errors.New("music is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.musics[music.ID]
	if !ok {
		return nil, ErrNotFound
	}
	row := musicRowFrom(music)
	row.id = existing.id
	row.seq = existing.seq
	row.createdAt = existing.createdAt
	p.s.musics[row.id] = row

	return p.s.music(row.id), nil
}

func musicRowFrom(m *models.Music) musicRow {
	row := musicRow{
		name:       m.Name,
		duration:   m.Duration,
		isSingle:   m.IsSingle,
		disabled:   m.Disabled,
		musicianID: m.OwnerID(),
	}
	if m.Category != nil {
		row.categoryID = m.Category.ID
	}
	if albumID, ok := m.AlbumID(); ok {
		row.albumID = albumID
	}
	return row
}

// Albums implements data.AlbumProvider.
type Albums struct{ s *Store }

func (p *Albums) FindByID(_ context.Context, id uuid.UUID) (*models.Album, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.album(id), nil
}

func (p *Albums) FindByNameAndMusician(_ context.Context, name string, musicianID int64) (*models.Album, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for _, row := range p.s.albums {
		if row.musicianID == musicianID && row.name == name {
			return p.s.album(row.id), nil
		}
	}
	return nil, nil
}

func (p *Albums) FindAllByMusician(_ context.Context, req paging.Request, musicianID int64, name string) (paging.Page[*models.Album], error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var matched []albumRow
	for _, row := range p.s.sortedAlbums() {
		if row.musicianID != musicianID {
			continue
		}
		if name != "" && !containsFold(row.name, name) {
			continue
		}
		matched = append(matched, row)
	}

	page := paging.Page[*models.Album]{Total: int64(len(matched)), Number: req.Page}
	for _, row := range window(matched, req.Offset(), req.Size) {
		page.Items = append(page.Items, p.s.album(row.id))
	}
	return page, nil
}

func (p *Albums) Register(_ context.Context, album *models.Album) (*models.Album, error) {
	if album == nil {
		return nil, errors.New("album is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row := albumRow{
		id:         uuid.New(),
		seq:        p.s.nextSeq(),
		name:       album.Name,
		createdAt:  now(),
		musicianID: album.OwnerID(),
	}
	p.s.albums[row.id] = row

	return p.s.album(row.id), nil
}

// Categories implements data.CategoryProvider.
type Categories struct{ s *Store }

func (p *Categories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.category(id), nil
}

// Users implements data.UserProvider.
type Users struct{ s *Store }

func (p *Users) FindByID(_ context.Context, id int64) (*models.User, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.user(id), nil
}

func (p *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for id, u := range p.s.users {
		if strings.EqualFold(u.Email, email) {
			return p.s.user(id), nil
		}
	}
	return nil, nil
}

func (p *Users) Register(_ context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row := *user
	row.ID = p.s.nextUserID
	p.s.nextUserID++
	row.CreatedAt = now()
	p.s.users[row.ID] = row

	return p.s.user(row.ID), nil
}

// Playlists implements data.PlaylistProvider.
type Playlists struct{ s *Store }

func (p *Playlists) FindByID(_ context.Context, id uuid.UUID) (*models.Playlist, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.playlist(id), nil
}

func (p *Playlists) Register(_ context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if playlist == nil {
		return nil, errors.New("playlist is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	ts := now()
	row := playlistRow{
		id:         uuid.New(),
		name:       playlist.Name,
		coverImage: playlist.CoverImage,
		order:      playlist.Order,
		disabled:   playlist.Disabled,
		createdAt:  ts,
		updatedAt:  ts,
		userID:     playlist.OwnerID(),
	}
	p.s.playlists[row.id] = row

	return p.s.playlist(row.id), nil
}

func (p *Playlists) Update(_ context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if playlist == nil {
		return nil, errors.New("playlist is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row, ok := p.s.playlists[playlist.ID]
	if !ok {
		return nil, ErrNotFound
	}
	row.name = playlist.Name
	row.coverImage = playlist.CoverImage
	row.order = playlist.Order
	row.disabled = playlist.Disabled
	row.updatedAt = now()
	p.s.playlists[row.id] = row

	return p.s.playlist(row.id), nil
}

// PlaylistMusics implements data.PlaylistMusicProvider.
type PlaylistMusics struct{ s *Store }

func (p *PlaylistMusics) FindByID(_ context.Context, id uuid.UUID) (*models.PlaylistMusic, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	row, ok := p.s.entries[id]
	if !ok {
		return nil, nil
	}
	return p.s.entry(row), nil
}

func (p *PlaylistMusics) Register(_ context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error) {
	if entry == nil || entry.Music == nil {
		return nil, errors.New("playlist entry with music is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row := entryRow{
		id:         uuid.New(),
		playlistID: entry.PlaylistID,
		musicID:    entry.Music.ID,
		position:   entry.Position,
		disabled:   entry.Disabled,
		createdAt:  now(),
	}
	p.s.entries[row.id] = row

	return p.s.entry(row), nil
}

func (p *PlaylistMusics) Update(_ context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error) {
	if entry == nil {
		return nil, errors.New("playlist entry is required")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	row, ok := p.s.entries[entry.ID]
	if !ok {
		return nil, ErrNotFound
	}
	row.position = entry.Position
	row.disabled = entry.Disabled
	p.s.entries[row.id] = row

	return p.s.entry(row), nil
}
