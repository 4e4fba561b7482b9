package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"musicroot/internal/app/data"
	"musicroot/internal/app/paging"
	"musicroot/internal/models"
)

const (
	selectMusics = `
		SELECT m.id, m.name, m.duration, m.is_single, m.disabled, m.created_at, m.album_id,
		       c.id, c.name,
		       mu.id, mu.name, mu.email, mu.password_hash, mu.role, mu.disabled, mu.created_at
		FROM musics m
		JOIN categories c ON c.id = m.category_id
		JOIN musicians mu ON mu.id = m.musician_id
		LEFT JOIN albums al ON al.id = m.album_id
	`
	countMusics = `
		SELECT COUNT(*)
		FROM musics m
		LEFT JOIN albums al ON al.id = m.album_id
	`
	insertMusic = `
		INSERT INTO musics (id, name, duration, is_single, disabled, category_id, musician_id, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	updateMusic = `
		UPDATE musics
		SET name = $2, duration = $3, is_single = $4, disabled = $5, category_id = $6, album_id = $7
		WHERE id = $1
	`
)

// Musics implements data.MusicProvider.
type Musics struct{ s *Store }

func (p *Musics) FindByID(ctx context.Context, id uuid.UUID) (*models.Music, error) {
	return p.first(ctx, "m.id = $1", id)
}

func (p *Musics) FindByAlbumAndName(ctx context.Context, albumID uuid.UUID, name string) (*models.Music, error) {
	return p.first(ctx, "m.album_id = $1 AND m.name = $2", albumID, name)
}

func (p *Musics) FindAll(ctx context.Context, req paging.Request, filter data.MusicFilter) (paging.Page[*models.Music], error) {
	var (
		clauses []string
		args    []any
	)

	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, containsPattern(name))
		clauses = append(clauses, fmt.Sprintf("m.name ILIKE $%d ESCAPE '\\'", len(args)))
	}
	if album := strings.TrimSpace(filter.Album); album != "" {
		args = append(args, containsPattern(album))
		clauses = append(clauses, fmt.Sprintf("al.name ILIKE $%d ESCAPE '\\'", len(args)))
	}
	if filter.MusicianID != 0 {
		args = append(args, filter.MusicianID)
		clauses = append(clauses, fmt.Sprintf("m.musician_id = $%d", len(args)))
	}
	if !filter.IncludeDisabled {
		clauses = append(clauses, "m.disabled = FALSE")
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	page := paging.Page[*models.Music]{Number: req.Page}
	if err := p.s.db.QueryRowContext(ctx, countMusics+where, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count musics: %w", err)
	}

	args = append(args, req.Size, req.Offset())
	query := selectMusics + where + fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	musics, err := p.query(ctx, query, args...)
	if err != nil {
		return page, err
	}
	page.Items = musics
	return page, nil
}

func (p *Musics) Register(ctx context.Context, music *models.Music) (*models.Music, error) {
	if music == nil || music.Category == nil {
		return nil, errors.New("music with category is required")
	}

	id := uuid.New()
	if _, err := p.s.db.ExecContext(ctx, insertMusic,
		id, music.Name, music.Duration, music.IsSingle, music.Disabled,
		music.Category.ID, music.OwnerID(), albumRef(music),
	); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert music: %w", err)
	}

	return p.FindByID(ctx, id)
}

func (p *Musics) Update(ctx context.Context, music *models.Music) (*models.Music, error) {
	if music == nil || music.Category == nil {
		return nil, errors.New("music with category is required")
	}

	res, err := p.s.db.ExecContext(ctx, updateMusic,
		music.ID, music.Name, music.Duration, music.IsSingle, music.Disabled,
		music.Category.ID, albumRef(music),
	)
	if err != nil {
		return nil, fmt.Errorf("update music: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return p.FindByID(ctx, music.ID)
}

func (p *Musics) first(ctx context.Context, clause string, args ...any) (*models.Music, error) {
	musics, err := p.query(ctx, selectMusics+"WHERE "+clause+" ORDER BY m.created_at DESC LIMIT 1", args...)
	if err != nil || len(musics) == 0 {
		return nil, err
	}
	return musics[0], nil
}

// query runs a selectMusics statement and attaches each track's album.
func (p *Musics) query(ctx context.Context, query string, args ...any) ([]*models.Music, error) {
	rows, err := p.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select musics: %w", err)
	}
	defer rows.Close()

	var (
		musics   []*models.Music
		albumIDs []uuid.UUID
		refs     []uuid.NullUUID
		seen     = make(map[uuid.UUID]bool)
	)
	for rows.Next() {
		m, ref, err := scanMusic(rows)
		if err != nil {
			return nil, err
		}
		musics = append(musics, m)
		refs = append(refs, ref)
		if ref.Valid && !seen[ref.UUID] {
			seen[ref.UUID] = true
			albumIDs = append(albumIDs, ref.UUID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate musics: %w", err)
	}

	albums, err := p.s.Albums().byIDs(ctx, albumIDs)
	if err != nil {
		return nil, err
	}
	for i, ref := range refs {
		if ref.Valid {
			musics[i].Album = albums[ref.UUID]
		}
	}
	return musics, nil
}

func scanMusic(row scanner) (*models.Music, uuid.NullUUID, error) {
	var (
		m       models.Music
		c       models.Category
		mu      models.Musician
		ref     uuid.NullUUID
		catName string
		role    string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Duration, &m.IsSingle, &m.Disabled, &m.CreatedAt, &ref,
		&c.ID, &catName,
		&mu.ID, &mu.Name, &mu.Email, &mu.Password, &role, &mu.Disabled, &mu.CreatedAt); err != nil {
		return nil, ref, fmt.Errorf("scan music: %w", err)
	}
	c.Name = models.CategoryName(catName)
	mu.Role = models.Role(role)
	m.Category = &c
	m.Musician = &mu
	return &m, ref, nil
}

func albumRef(m *models.Music) uuid.NullUUID {
	id, ok := m.AlbumID()
	return uuid.NullUUID{UUID: id, Valid: ok}
}
