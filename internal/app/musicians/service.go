// Package musicians implements the musician account use cases: signup, credential checks,
// public profiles and account deactivation.
package musicians

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"musicroot/internal/app/apperr"
	"musicroot/internal/app/checks"
	"musicroot/internal/app/data"
	"musicroot/internal/app/projection"
	"musicroot/internal/auth"
	"musicroot/internal/models"
)

// NewMusician is the signup input.
type NewMusician struct {
	Name     string
	Email    string
	Password string
}

// Service coordinates musician-related operations.
type Service interface {
	Filter(ctx context.Context, id *int64, name *string) (projection.FilterMusicianOutput, error)
	Register(ctx context.Context, in NewMusician) (projection.MusicianOutput, error)
	Authenticate(ctx context.Context, email, password string) (projection.MusicianOutput, error)
	Disable(ctx context.Context, actorID int64) (projection.MusicianOutput, error)
}

type service struct {
	musicians data.MusicianProvider
}

// New constructs a Service backed by the provided MusicianProvider.
func New(musicians data.MusicianProvider) Service {
	return &service{musicians: musicians}
}

func (s *service) Filter(ctx context.Context, id *int64, name *string) (projection.FilterMusicianOutput, error) {
	key, err := KeyOf(id, name)
	if err != nil {
		return projection.FilterMusicianOutput{}, err
	}

	found, err := s.resolve(ctx, key)
	musician, err := checks.Exist("Musician", found, err)
	if err != nil {
		return projection.FilterMusicianOutput{}, err
	}
	if err := checks.NotDisabled("Musician", musician); err != nil {
		return projection.FilterMusicianOutput{}, err
	}

	return projection.FilterMusician(musician), nil
}

func (s *service) resolve(ctx context.Context, key Key) (*models.Musician, error) {
	switch key.kind {
	case keyByID:
		return s.musicians.FindByID(ctx, key.id)
	case keyByName:
		return s.musicians.FindByName(ctx, key.name)
	default:
		return nil, errors.New("empty musician key")
	}
}

func (s *service) Register(ctx context.Context, in NewMusician) (projection.MusicianOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := checks.Required("Musician name", name); err != nil {
		return projection.MusicianOutput{}, err
	}
	if err := checks.Required("Musician email", email); err != nil {
		return projection.MusicianOutput{}, err
	}
	if !strings.Contains(email, "@") {
		return projection.MusicianOutput{}, apperr.InvalidInput("Musician email is malformed")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return projection.MusicianOutput{}, apperr.InvalidInput("Password must have at least %d characters", auth.MinPasswordLength)
	}

	existing, err := s.musicians.FindByEmailOrName(ctx, email, name)
	if err != nil {
		return projection.MusicianOutput{}, fmt.Errorf("find musician by email or name: %w", err)
	}
	if existing != nil {
		return projection.MusicianOutput{}, apperr.Conflict("Musician", "Musician name or email already in use")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return projection.MusicianOutput{}, err
	}

	created, err := s.musicians.Register(ctx, &models.Musician{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleMusician,
	})
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return projection.MusicianOutput{}, apperr.Conflict("Musician", "Musician name or email already in use")
		}
		return projection.MusicianOutput{}, fmt.Errorf("register musician: %w", err)
	}

	return *projection.Musician(created), nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (projection.MusicianOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := checks.Required("Musician email", email); err != nil {
		return projection.MusicianOutput{}, err
	}
	if err := checks.Required("Password", password); err != nil {
		return projection.MusicianOutput{}, err
	}

	musician, err := s.musicians.FindByEmail(ctx, email)
	if err != nil {
		return projection.MusicianOutput{}, fmt.Errorf("find musician by email: %w", err)
	}

	var hash string
	if musician != nil {
		hash = musician.Password
	}
	if err := auth.ComparePassword(hash, password); err != nil {
		return projection.MusicianOutput{}, apperr.Unauthorized("invalid email or password")
	}
	if err := checks.NotDisabled("Musician", musician); err != nil {
		return projection.MusicianOutput{}, err
	}

	return *projection.Musician(musician), nil
}

func (s *service) Disable(ctx context.Context, actorID int64) (projection.MusicianOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicianOutput{}, err
	}

	found, err := s.musicians.FindByID(ctx, actorID)
	musician, err := checks.Exist("Musician", found, err)
	if err != nil {
		return projection.MusicianOutput{}, err
	}

	if musician.Disabled {
		return *projection.Musician(musician), nil
	}

	musician.Disabled = true
	updated, err := s.musicians.Update(ctx, musician)
	if err != nil {
		return projection.MusicianOutput{}, fmt.Errorf("disable musician: %w", err)
	}

	return *projection.Musician(updated), nil
}
