package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"musicroot/internal/models"
)

const (
	selectPlaylistByID = `
		SELECT p.id, p.name, p.cover_image, p.sort_order, p.disabled, p.created_at, p.updated_at,
		       u.id, u.name, u.email, u.password_hash, u.role, u.disabled, u.created_at
		FROM playlists p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	selectPlaylistEntries = `
		SELECT id, playlist_id, music_id, position, disabled, created_at
		FROM playlist_musics
		WHERE playlist_id = $1
		ORDER BY position ASC
	`
	selectPlaylistEntryByID = `
		SELECT id, playlist_id, music_id, position, disabled, created_at
		FROM playlist_musics
		WHERE id = $1
	`
	insertPlaylist = `
		INSERT INTO playlists (id, name, cover_image, sort_order, disabled, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	updatePlaylist = `
		UPDATE playlists
		SET name = $2, cover_image = $3, sort_order = $4, disabled = $5, updated_at = NOW()
		WHERE id = $1
	`
	insertPlaylistEntry = `
		INSERT INTO playlist_musics (id, playlist_id, music_id, position, disabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	updatePlaylistEntry = `
		UPDATE playlist_musics
		SET position = $2, disabled = $3
		WHERE id = $1
	`
)

// Playlists implements data.PlaylistProvider.
type Playlists struct{ s *Store }

func (p *Playlists) FindByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var (
		pl   models.Playlist
		u    models.User
		role string
	)
	err := p.s.db.QueryRowContext(ctx, selectPlaylistByID, id).Scan(
		&pl.ID, &pl.Name, &pl.CoverImage, &pl.Order, &pl.Disabled, &pl.CreatedAt, &pl.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.Disabled, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select playlist: %w", err)
	}
	u.Role = models.Role(role)
	pl.User = &u

	entries, err := p.s.PlaylistMusics().forPlaylist(ctx, pl.ID)
	if err != nil {
		return nil, err
	}
	pl.Musics = entries
	return &pl, nil
}

func (p *Playlists) Register(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if playlist == nil {
		return nil, errors.New("playlist is required")
	}

	created := &models.Playlist{
		ID:         uuid.New(),
		Name:       playlist.Name,
		CoverImage: playlist.CoverImage,
		Order:      playlist.Order,
		Disabled:   playlist.Disabled,
		User:       playlist.User,
	}
	err := p.s.db.QueryRowContext(ctx, insertPlaylist,
		created.ID, created.Name, created.CoverImage, created.Order, created.Disabled, playlist.OwnerID(),
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return created, nil
}

func (p *Playlists) Update(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if playlist == nil {
		return nil, errors.New("playlist is required")
	}

	res, err := p.s.db.ExecContext(ctx, updatePlaylist,
		playlist.ID, playlist.Name, playlist.CoverImage, playlist.Order, playlist.Disabled,
	)
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return p.FindByID(ctx, playlist.ID)
}

// PlaylistMusics implements data.PlaylistMusicProvider.
type PlaylistMusics struct{ s *Store }

func (p *PlaylistMusics) FindByID(ctx context.Context, id uuid.UUID) (*models.PlaylistMusic, error) {
	e, musicID, err := scanEntry(p.s.db.QueryRowContext(ctx, selectPlaylistEntryByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select playlist music: %w", err)
	}

	if e.Music, err = p.s.Musics().FindByID(ctx, musicID); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *PlaylistMusics) Register(ctx context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error) {
	if entry == nil || entry.Music == nil {
		return nil, errors.New("playlist entry with music is required")
	}

	created := &models.PlaylistMusic{
		ID:         uuid.New(),
		PlaylistID: entry.PlaylistID,
		Position:   entry.Position,
		Disabled:   entry.Disabled,
		Music:      entry.Music,
	}
	err := p.s.db.QueryRowContext(ctx, insertPlaylistEntry,
		created.ID, created.PlaylistID, entry.Music.ID, created.Position, created.Disabled,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert playlist music: %w", err)
	}
	return created, nil
}

func (p *PlaylistMusics) Update(ctx context.Context, entry *models.PlaylistMusic) (*models.PlaylistMusic, error) {
	if entry == nil {
		return nil, errors.New("playlist entry is required")
	}

	res, err := p.s.db.ExecContext(ctx, updatePlaylistEntry, entry.ID, entry.Position, entry.Disabled)
	if err != nil {
		return nil, fmt.Errorf("update playlist music: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return p.FindByID(ctx, entry.ID)
}

// forPlaylist loads the entries of a playlist ordered by position, each with its track.
func (p *PlaylistMusics) forPlaylist(ctx context.Context, playlistID uuid.UUID) ([]*models.PlaylistMusic, error) {
	rows, err := p.s.db.QueryContext(ctx, selectPlaylistEntries, playlistID)
	if err != nil {
		return nil, fmt.Errorf("select playlist musics: %w", err)
	}

	var (
		entries  []*models.PlaylistMusic
		musicIDs []uuid.UUID
	)
	for rows.Next() {
		e, musicID, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan playlist music: %w", err)
		}
		entries = append(entries, e)
		musicIDs = append(musicIDs, musicID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate playlist musics: %w", err)
	}
	rows.Close()

	for i, id := range musicIDs {
		if entries[i].Music, err = p.s.Musics().FindByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func scanEntry(row scanner) (*models.PlaylistMusic, uuid.UUID, error) {
	var (
		e       models.PlaylistMusic
		musicID uuid.UUID
	)
	if err := row.Scan(&e.ID, &e.PlaylistID, &musicID, &e.Position, &e.Disabled, &e.CreatedAt); err != nil {
		return nil, musicID, err
	}
	return &e, musicID, nil
}
