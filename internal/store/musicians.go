package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"musicroot/internal/models"
)

const (
	musicianColumns = `id, name, email, password_hash, role, disabled, created_at`

	selectMusicianByID = `
		SELECT ` + musicianColumns + `
		FROM musicians
		WHERE id = $1
	`
	selectMusicianByName = `
		SELECT ` + musicianColumns + `
		FROM musicians
		WHERE LOWER(name) = LOWER($1)
	`
	selectMusicianByEmail = `
		SELECT ` + musicianColumns + `
		FROM musicians
		WHERE LOWER(email) = LOWER($1)
	`
	selectMusicianByEmailOrName = `
		SELECT ` + musicianColumns + `
		FROM musicians
		WHERE LOWER(email) = LOWER($1) OR LOWER(name) = LOWER($2)
		ORDER BY id
		LIMIT 1
	`
	insertMusician = `
		INSERT INTO musicians (name, email, password_hash, role, disabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	updateMusician = `
		UPDATE musicians
		SET name = $2, email = $3, password_hash = $4, role = $5, disabled = $6
		WHERE id = $1
	`
)

// Musicians implements data.MusicianProvider.
type Musicians struct{ s *Store }

func (p *Musicians) FindByID(ctx context.Context, id int64) (*models.Musician, error) {
	return p.findOne(ctx, selectMusicianByID, id)
}

func (p *Musicians) FindByName(ctx context.Context, name string) (*models.Musician, error) {
	return p.findOne(ctx, selectMusicianByName, name)
}

func (p *Musicians) FindByEmail(ctx context.Context, email string) (*models.Musician, error) {
	return p.findOne(ctx, selectMusicianByEmail, email)
}

func (p *Musicians) FindByEmailOrName(ctx context.Context, email, name string) (*models.Musician, error) {
	return p.findOne(ctx, selectMusicianByEmailOrName, email, name)
}

func (p *Musicians) findOne(ctx context.Context, query string, args ...any) (*models.Musician, error) {
	m, err := scanMusician(p.s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select musician: %w", err)
	}

	albums, err := p.s.Albums().where(ctx, "a.musician_id = $1", "", m.ID)
	if err != nil {
		return nil, err
	}
	m.Albums = albums
	return m, nil
}

func (p *Musicians) Register(ctx context.Context, musician *models.Musician) (*models.Musician, error) {
	if musician == nil {
		return nil, errors.New("musician is required")
	}

	created := *musician
	err := p.s.db.QueryRowContext(ctx, insertMusician,
		musician.Name, musician.Email, musician.Password, string(musician.Role), musician.Disabled,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert musician: %w", err)
	}

	created.Albums = nil
	created.Musics = nil
	return &created, nil
}

func (p *Musicians) Update(ctx context.Context, musician *models.Musician) (*models.Musician, error) {
	if musician == nil {
		return nil, errors.New("musician is required")
	}

	res, err := p.s.db.ExecContext(ctx, updateMusician,
		musician.ID, musician.Name, musician.Email, musician.Password, string(musician.Role), musician.Disabled,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update musician: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return p.FindByID(ctx, musician.ID)
}

func scanMusician(row scanner) (*models.Musician, error) {
	var (
		m    models.Musician
		role string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Password, &role, &m.Disabled, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Role = models.Role(role)
	return &m, nil
}
