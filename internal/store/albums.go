package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"musicroot/internal/app/paging"
	"musicroot/internal/models"
)

const (
	selectAlbums = `
		SELECT a.id, a.name, a.created_at,
		       mu.id, mu.name, mu.email, mu.password_hash, mu.role, mu.disabled, mu.created_at
		FROM albums a
		JOIN musicians mu ON mu.id = a.musician_id
	`
	selectAlbumTracks = `
		SELECT m.id, m.name, m.duration, m.is_single, m.disabled, m.created_at, m.album_id,
		       c.id, c.name
		FROM musics m
		JOIN categories c ON c.id = m.category_id
		WHERE m.album_id = ANY($1)
		ORDER BY m.created_at DESC
	`
	insertAlbum = `
		INSERT INTO albums (id, name, musician_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
)

// Albums implements data.AlbumProvider.
type Albums struct{ s *Store }

func (p *Albums) FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	return p.first(ctx, "a.id = $1", id)
}

func (p *Albums) FindByNameAndMusician(ctx context.Context, name string, musicianID int64) (*models.Album, error) {
	return p.first(ctx, "a.name = $1 AND a.musician_id = $2", name, musicianID)
}

func (p *Albums) FindAllByMusician(ctx context.Context, req paging.Request, musicianID int64, name string) (paging.Page[*models.Album], error) {
	clauses := []string{"a.musician_id = $1"}
	args := []any{musicianID}
	if name = strings.TrimSpace(name); name != "" {
		args = append(args, containsPattern(name))
		clauses = append(clauses, fmt.Sprintf("a.name ILIKE $%d ESCAPE '\\'", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	page := paging.Page[*models.Album]{Number: req.Page}
	if err := p.s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM albums a WHERE "+where, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count albums: %w", err)
	}

	args = append(args, req.Size, req.Offset())
	limit := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	albums, err := p.where(ctx, where, limit, args...)
	if err != nil {
		return page, err
	}
	page.Items = albums
	return page, nil
}

func (p *Albums) Register(ctx context.Context, album *models.Album) (*models.Album, error) {
	if album == nil {
		return nil, errors.New("album is required")
	}

	created := &models.Album{
		ID:       uuid.New(),
		Name:     album.Name,
		Musician: album.Musician,
	}
	if err := p.s.db.QueryRowContext(ctx, insertAlbum, created.ID, created.Name, album.OwnerID()).Scan(&created.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert album: %w", err)
	}
	return created, nil
}

func (p *Albums) first(ctx context.Context, clause string, args ...any) (*models.Album, error) {
	albums, err := p.where(ctx, clause, " LIMIT 1", args...)
	if err != nil || len(albums) == 0 {
		return nil, err
	}
	return albums[0], nil
}

// where loads albums matching clause, newest first, each with its owner and track list.
func (p *Albums) where(ctx context.Context, clause, suffix string, args ...any) ([]*models.Album, error) {
	rows, err := p.s.db.QueryContext(ctx, selectAlbums+"WHERE "+clause+" ORDER BY a.created_at DESC"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	var albums []*models.Album
	for rows.Next() {
		var (
			a    models.Album
			m    models.Musician
			role string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt,
			&m.ID, &m.Name, &m.Email, &m.Password, &role, &m.Disabled, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		m.Role = models.Role(role)
		a.Musician = &m
		albums = append(albums, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}

	if err := p.attachTracks(ctx, albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// byIDs loads the albums with the given ids keyed by id.
func (p *Albums) byIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Album, error) {
	out := make(map[uuid.UUID]*models.Album, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	albums, err := p.where(ctx, "a.id = ANY($1)", "", pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, err
	}
	for _, a := range albums {
		out[a.ID] = a
	}
	return out, nil
}

func (p *Albums) attachTracks(ctx context.Context, albums []*models.Album) error {
	if len(albums) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]*models.Album, len(albums))
	ids := make([]uuid.UUID, 0, len(albums))
	for _, a := range albums {
		index[a.ID] = a
		ids = append(ids, a.ID)
	}

	rows, err := p.s.db.QueryContext(ctx, selectAlbumTracks, pq.Array(uuidStrings(ids)))
	if err != nil {
		return fmt.Errorf("select album tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m       models.Music
			c       models.Category
			albumID uuid.UUID
			catName string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Duration, &m.IsSingle, &m.Disabled, &m.CreatedAt, &albumID,
			&c.ID, &catName); err != nil {
			return fmt.Errorf("scan album track: %w", err)
		}
		c.Name = models.CategoryName(catName)
		m.Category = &c
		if a, ok := index[albumID]; ok {
			a.Musics = append(a.Musics, &m)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate album tracks: %w", err)
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
