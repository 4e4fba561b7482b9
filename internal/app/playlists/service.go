package playlists

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"musicroot/internal/app/apperr"
	"musicroot/internal/app/checks"
	"musicroot/internal/app/data"
	"musicroot/internal/app/projection"
	"musicroot/internal/models"
)

// NewPlaylist is the input for Register.
type NewPlaylist struct {
	Name       string
	CoverImage string
	Order      int
}

// Service coordinates playlist-related operations.
type Service interface {
	Get(ctx context.Context, playlistID uuid.UUID) (projection.PlaylistOutput, error)
	Register(ctx context.Context, actorID int64, in NewPlaylist) (projection.PlaylistOutput, error)
	// AddMusic places a track on the playlist. A nil position appends after the last slot.
	AddMusic(ctx context.Context, actorID int64, playlistID, musicID uuid.UUID, position *int) (projection.PlaylistOutput, error)
	DisableMusic(ctx context.Context, actorID int64, playlistID, entryID uuid.UUID) (projection.PlaylistOutput, error)
	Disable(ctx context.Context, actorID int64, playlistID uuid.UUID) (projection.PlaylistOutput, error)
}

type service struct {
	users     data.UserProvider
	playlists data.PlaylistProvider
	entries   data.PlaylistMusicProvider
	musics    data.MusicProvider
}

// New constructs a Service backed by the provided data providers.
func New(users data.UserProvider, playlists data.PlaylistProvider, entries data.PlaylistMusicProvider, musics data.MusicProvider) Service {
	return &service{users: users, playlists: playlists, entries: entries, musics: musics}
}

func (s *service) Get(ctx context.Context, playlistID uuid.UUID) (projection.PlaylistOutput, error) {
	if err := checks.Required("Playlist id", playlistID); err != nil {
		return projection.PlaylistOutput{}, err
	}

	playlist, err := s.playlist(ctx, playlistID)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.NotDisabled("Playlist", playlist); err != nil {
		return projection.PlaylistOutput{}, err
	}

	return projection.Playlist(playlist), nil
}

func (s *service) Register(ctx context.Context, actorID int64, in NewPlaylist) (projection.PlaylistOutput, error) {
	name := strings.TrimSpace(in.Name)
	if err := checks.Required("User id", actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Playlist name", name); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if in.Order < 0 {
		return projection.PlaylistOutput{}, apperr.InvalidInput("Playlist order can't be negative")
	}

	user, err := s.activeUser(ctx, actorID)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}

	created, err := s.playlists.Register(ctx, &models.Playlist{
		Name:       name,
		CoverImage: strings.TrimSpace(in.CoverImage),
		Order:      in.Order,
		User:       user,
	})
	if err != nil {
		return projection.PlaylistOutput{}, fmt.Errorf("register playlist: %w", err)
	}

	return projection.Playlist(created), nil
}

func (s *service) AddMusic(ctx context.Context, actorID int64, playlistID, musicID uuid.UUID, position *int) (projection.PlaylistOutput, error) {
	if err := checks.Required("User id", actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Playlist id", playlistID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Music id", musicID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if position != nil && *position < 0 {
		return projection.PlaylistOutput{}, apperr.InvalidInput("Playlist position can't be negative")
	}

	if _, err := s.activeUser(ctx, actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}

	found, err := s.musics.FindByID(ctx, musicID)
	music, err := checks.Exist("Music", found, err)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.NotDisabled("Music", music); err != nil {
		return projection.PlaylistOutput{}, err
	}

	slot := playlist.NextPosition()
	if position != nil {
		slot = *position
	}
	if playlist.PositionTaken(slot) {
		return projection.PlaylistOutput{}, apperr.Conflict("Playlist", "Position %d is already taken", slot)
	}

	if _, err := s.entries.Register(ctx, &models.PlaylistMusic{
		PlaylistID: playlist.ID,
		Position:   slot,
		Music:      music,
	}); err != nil {
		return projection.PlaylistOutput{}, fmt.Errorf("register playlist music: %w", err)
	}

	return s.reload(ctx, playlist.ID)
}

func (s *service) DisableMusic(ctx context.Context, actorID int64, playlistID, entryID uuid.UUID) (projection.PlaylistOutput, error) {
	if err := checks.Required("User id", actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Playlist id", playlistID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Playlist music id", entryID); err != nil {
		return projection.PlaylistOutput{}, err
	}

	if _, err := s.activeUser(ctx, actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}

	found, err := s.entries.FindByID(ctx, entryID)
	entry, err := checks.Exist("Playlist music", found, err)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}
	if entry.PlaylistID != playlist.ID {
		return projection.PlaylistOutput{}, apperr.NotFound("Playlist music")
	}

	if entry.Disabled {
		return projection.Playlist(playlist), nil
	}

	entry.Disabled = true
	if _, err := s.entries.Update(ctx, entry); err != nil {
		return projection.PlaylistOutput{}, fmt.Errorf("disable playlist music: %w", err)
	}

	return s.reload(ctx, playlist.ID)
}

func (s *service) Disable(ctx context.Context, actorID int64, playlistID uuid.UUID) (projection.PlaylistOutput, error) {
	if err := checks.Required("User id", actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Required("Playlist id", playlistID); err != nil {
		return projection.PlaylistOutput{}, err
	}

	if _, err := s.activeUser(ctx, actorID); err != nil {
		return projection.PlaylistOutput{}, err
	}
	found, err := s.playlists.FindByID(ctx, playlistID)
	playlist, err := checks.Exist("Playlist", found, err)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}
	if err := checks.Owns("Playlist", actorID, playlist.OwnerID()); err != nil {
		return projection.PlaylistOutput{}, err
	}

	if playlist.Disabled {
		return projection.Playlist(playlist), nil
	}

	playlist.Disabled = true
	updated, err := s.playlists.Update(ctx, playlist)
	if err != nil {
		return projection.PlaylistOutput{}, fmt.Errorf("disable playlist: %w", err)
	}

	return projection.Playlist(updated), nil
}

func (s *service) activeUser(ctx context.Context, id int64) (*models.User, error) {
	found, err := s.users.FindByID(ctx, id)
	user, err := checks.Exist("User", found, err)
	if err != nil {
		return nil, err
	}
	if err := checks.NotDisabled("User", user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) playlist(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	found, err := s.playlists.FindByID(ctx, id)
	return checks.Exist("Playlist", found, err)
}

// ownedPlaylist resolves an enabled playlist belonging to actorID.
func (s *service) ownedPlaylist(ctx context.Context, actorID int64, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlist(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checks.Owns("Playlist", actorID, playlist.OwnerID()); err != nil {
		return nil, err
	}
	if err := checks.NotDisabled("Playlist", playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (projection.PlaylistOutput, error) {
	playlist, err := s.playlist(ctx, id)
	if err != nil {
		return projection.PlaylistOutput{}, err
	}
	return projection.Playlist(playlist), nil
}
