package users

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

// NewUser is the listener signup input.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// Service exposes listener account workflows.
type Service interface {
	Register(ctx context.Context, in NewUser) (projection.UserOutput, error)
	Authenticate(ctx context.Context, email, password string) (projection.UserOutput, error)
}

type service struct {
	users data.UserProvider
}

// New wires a Service backed by the provided UserProvider.
func New(users data.UserProvider) Service {
	return &service{users: users}
}

func (s *service) Register(ctx context.Context, in NewUser) (projection.UserOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := checks.Required("User name", name); err != nil {
		return projection.UserOutput{}, err
	}
	if err := checks.Required("User email", email); err != nil {
		return projection.UserOutput{}, err
	}
	if !strings.Contains(email, "@") {
		return projection.UserOutput{}, apperr.InvalidInput("User email is malformed")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return projection.UserOutput{}, apperr.InvalidInput("Password must have at least %d characters", auth.MinPasswordLength)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return projection.UserOutput{}, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return projection.UserOutput{}, apperr.Conflict("User", "User email already in use")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return projection.UserOutput{}, err
	}

	created, err := s.users.Register(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return projection.UserOutput{}, apperr.Conflict("User", "User email already in use")
		}
		return projection.UserOutput{}, fmt.Errorf("register user: %w", err)
	}

	return *projection.User(created), nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (projection.UserOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := checks.Required("User email", email); err != nil {
		return projection.UserOutput{}, err
	}
	if err := checks.Required("Password", password); err != nil {
		return projection.UserOutput{}, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return projection.UserOutput{}, fmt.Errorf("find user by email: %w", err)
	}

	var hash string
	if user != nil {
		hash = user.Password
	}
	if err := auth.ComparePassword(hash, password); err != nil {
		return projection.UserOutput{}, apperr.Unauthorized("invalid email or password")
	}
	if err := checks.NotDisabled("User", user); err != nil {
		return projection.UserOutput{}, err
	}

	return *projection.User(user), nil
}
