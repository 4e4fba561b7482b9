package albums

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"musicroot/internal/app/apperr"
	"musicroot/internal/app/checks"
	"musicroot/internal/app/data"
	"musicroot/internal/app/paging"
	"musicroot/internal/app/projection"
	"musicroot/internal/models"
)

// Service coordinates album-related operations.
type Service interface {
	Register(ctx context.Context, actorID int64, name string) (projection.AlbumOutput, error)
	ListOwn(ctx context.Context, actorID int64, name string, page, perPage int) (projection.ListAlbumOutput, error)
	InsertMusic(ctx context.Context, actorID int64, albumID, musicID uuid.UUID) (projection.MusicOutput, error)
	RemoveMusic(ctx context.Context, actorID int64, musicID uuid.UUID) (projection.MusicOutput, error)
}

type service struct {
	musicians data.MusicianProvider
	albums    data.AlbumProvider
	musics    data.MusicProvider
}

// New constructs a Service backed by the provided data providers.
func New(musicians data.MusicianProvider, albums data.AlbumProvider, musics data.MusicProvider) Service {
	return &service{musicians: musicians, albums: albums, musics: musics}
}

func (s *service) Register(ctx context.Context, actorID int64, name string) (projection.AlbumOutput, error) {
	name = strings.TrimSpace(name)
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.AlbumOutput{}, err
	}
	if err := checks.Required("Album name", name); err != nil {
		return projection.AlbumOutput{}, err
	}

	musician, err := s.activeMusician(ctx, actorID)
	if err != nil {
		return projection.AlbumOutput{}, err
	}

	existing, err := s.albums.FindByNameAndMusician(ctx, name, actorID)
	if err != nil {
		return projection.AlbumOutput{}, fmt.Errorf("find album by name: %w", err)
	}
	if existing != nil {
		return projection.AlbumOutput{}, apperr.Conflict("Album", "Album %q already exists", name)
	}

	created, err := s.albums.Register(ctx, &models.Album{Name: name, Musician: musician})
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return projection.AlbumOutput{}, apperr.Conflict("Album", "Album %q already exists", name)
		}
		return projection.AlbumOutput{}, fmt.Errorf("register album: %w", err)
	}

	return *projection.Album(created), nil
}

func (s *service) ListOwn(ctx context.Context, actorID int64, name string, page, perPage int) (projection.ListAlbumOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.ListAlbumOutput{}, err
	}

	found, err := s.musicians.FindByID(ctx, actorID)
	if _, err := checks.Exist("Musician", found, err); err != nil {
		return projection.ListAlbumOutput{}, err
	}

	req := paging.Normalize(page, perPage)
	result, err := s.albums.FindAllByMusician(ctx, req, actorID, strings.TrimSpace(name))
	if err != nil {
		return projection.ListAlbumOutput{}, fmt.Errorf("list own albums: %w", err)
	}

	return projection.AlbumPage(result, req.Size), nil
}

func (s *service) InsertMusic(ctx context.Context, actorID int64, albumID, musicID uuid.UUID) (projection.MusicOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Album id", albumID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Music id", musicID); err != nil {
		return projection.MusicOutput{}, err
	}

	if _, err := s.activeMusician(ctx, actorID); err != nil {
		return projection.MusicOutput{}, err
	}

	foundAlbum, err := s.albums.FindByID(ctx, albumID)
	album, err := checks.Exist("Album", foundAlbum, err)
	if err != nil {
		return projection.MusicOutput{}, err
	}
	foundMusic, err := s.musics.FindByID(ctx, musicID)
	music, err := checks.Exist("Music", foundMusic, err)
	if err != nil {
		return projection.MusicOutput{}, err
	}

	if err := checks.Owns("Music", actorID, music.OwnerID()); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Owns("Album", actorID, album.OwnerID()); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.NotDisabled("Music", music); err != nil {
		return projection.MusicOutput{}, err
	}

	if current, ok := music.AlbumID(); ok {
		if current == album.ID {
			return projection.Music(music), nil
		}
		return projection.MusicOutput{}, apperr.Conflict("Music", "Music already belongs to another album")
	}

	existing, err := s.musics.FindByAlbumAndName(ctx, album.ID, music.Name)
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("find music by album and name: %w", err)
	}
	if existing != nil {
		return projection.MusicOutput{}, apperr.Conflict("Music", "Music %q already exists in album %q", music.Name, album.Name)
	}

	music.Album = album
	updated, err := s.musics.Update(ctx, music)
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("insert music on album: %w", err)
	}

	return projection.Music(updated), nil
}

func (s *service) RemoveMusic(ctx context.Context, actorID int64, musicID uuid.UUID) (projection.MusicOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Music id", musicID); err != nil {
		return projection.MusicOutput{}, err
	}

	if _, err := s.activeMusician(ctx, actorID); err != nil {
		return projection.MusicOutput{}, err
	}

	found, err := s.musics.FindByID(ctx, musicID)
	music, err := checks.Exist("Music", found, err)
	if err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Owns("Music", actorID, music.OwnerID()); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.NotDisabled("Music", music); err != nil {
		return projection.MusicOutput{}, err
	}

	if music.Album == nil {
		return projection.MusicOutput{}, apperr.Conflict("Music", "Music does not belong to an album")
	}

	music.Album = nil
	updated, err := s.musics.Update(ctx, music)
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("remove music from album: %w", err)
	}

	return projection.Music(updated), nil
}

func (s *service) activeMusician(ctx context.Context, id int64) (*models.Musician, error) {
	found, err := s.musicians.FindByID(ctx, id)
	musician, err := checks.Exist("Musician", found, err)
	if err != nil {
		return nil, err
	}
	if err := checks.NotDisabled("Musician", musician); err != nil {
		return nil, err
	}
	return musician, nil
}
