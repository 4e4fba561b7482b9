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
	userColumns = `id, name, email, password_hash, role, disabled, created_at`

	selectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	selectUserByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	insertUser = `
		INSERT INTO users (name, email, password_hash, role, disabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	selectCategoryByID = `
		SELECT id, name
		FROM categories
		WHERE id = $1
	`
)

// Users implements data.UserProvider.
type Users struct{ s *Store }

func (p *Users) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return p.findOne(ctx, selectUserByID, id)
}

func (p *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.findOne(ctx, selectUserByEmail, email)
}

func (p *Users) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(p.s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (p *Users) Register(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is required")
	}

	created := *user
	err := p.s.db.QueryRowContext(ctx, insertUser,
		user.Name, user.Email, user.Password, string(user.Role), user.Disabled,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.Disabled, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

// Categories implements data.CategoryProvider.
type Categories struct{ s *Store }

func (p *Categories) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var (
		c    models.Category
		name string
	)
	err := p.s.db.QueryRowContext(ctx, selectCategoryByID, id).Scan(&c.ID, &name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	c.Name = models.CategoryName(name)
	return &c, nil
}
