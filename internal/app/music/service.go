// Package music implements the use cases around published tracks: registering, public
// search, owner listings, soft deletion and partial updates.
package music

import (
	"context"
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

// NewMusic is the input for Register. A zero AlbumID registers the track without album.
type NewMusic struct {
	Name       string
	Duration   int
	IsSingle   bool
	CategoryID uuid.UUID
	AlbumID    uuid.UUID
}

// UpdateMusic is the input for Update. Nil fields keep their current value.
type UpdateMusic struct {
	MusicID    uuid.UUID
	Name       *string
	Duration   *int
	IsSingle   *bool
	CategoryID *uuid.UUID
	AlbumID    *uuid.UUID
}

// OwnFilter narrows ListOwn. Empty fields are ignored.
type OwnFilter struct {
	Name  string
	Album string
}

// Service coordinates track-related operations.
type Service interface {
	Register(ctx context.Context, actorID int64, in NewMusic) (projection.MusicOutput, error)
	FilterByName(ctx context.Context, name string, page, perPage int) (projection.ListMusicOutput, error)
	FilterOne(ctx context.Context, musicID uuid.UUID) (projection.FilterMusicOutput, error)
	FilterByMusician(ctx context.Context, musicianID int64, page, perPage int) (projection.ListMusicOutput, error)
	ListOwn(ctx context.Context, actorID int64, filter OwnFilter, page, perPage int) (projection.ListMusicOutput, error)
	Disable(ctx context.Context, actorID int64, musicID uuid.UUID) (projection.MusicOutput, error)
	Update(ctx context.Context, actorID int64, in UpdateMusic) (projection.MusicOutput, error)
}

type service struct {
	musicians  data.MusicianProvider
	musics     data.MusicProvider
	albums     data.AlbumProvider
	categories data.CategoryProvider
}

// New constructs a Service backed by the provided data providers.
func New(musicians data.MusicianProvider, musics data.MusicProvider, albums data.AlbumProvider, categories data.CategoryProvider) Service {
	return &service{
		musicians:  musicians,
		musics:     musics,
		albums:     albums,
		categories: categories,
	}
}

func (s *service) Register(ctx context.Context, actorID int64, in NewMusic) (projection.MusicOutput, error) {
	name := strings.TrimSpace(in.Name)
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Music name", name); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Category id", in.CategoryID); err != nil {
		return projection.MusicOutput{}, err
	}
	if in.Duration < 0 {
		return projection.MusicOutput{}, apperr.InvalidInput("Music duration can't be negative")
	}

	musician, err := s.activeMusician(ctx, actorID)
	if err != nil {
		return projection.MusicOutput{}, err
	}
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return projection.MusicOutput{}, err
	}

	var album *models.Album
	if in.AlbumID != uuid.Nil {
		if album, err = s.ownedAlbum(ctx, actorID, in.AlbumID); err != nil {
			return projection.MusicOutput{}, err
		}
		if err := s.ensureUniqueInAlbum(ctx, album, name, uuid.Nil); err != nil {
			return projection.MusicOutput{}, err
		}
	}

	created, err := s.musics.Register(ctx, &models.Music{
		Name:     name,
		Duration: in.Duration,
		IsSingle: in.IsSingle,
		Category: category,
		Musician: musician,
		Album:    album,
	})
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("register music: %w", err)
	}

	return projection.Music(created), nil
}

func (s *service) FilterByName(ctx context.Context, name string, page, perPage int) (projection.ListMusicOutput, error) {
	name = strings.TrimSpace(name)
	if err := checks.Required("Music name", name); err != nil {
		return projection.ListMusicOutput{}, err
	}

	req := paging.Normalize(page, perPage)
	result, err := s.musics.FindAll(ctx, req, data.MusicFilter{Name: name})
	if err != nil {
		return projection.ListMusicOutput{}, fmt.Errorf("list musics: %w", err)
	}

	return projection.MusicPage(result, req.Size), nil
}

func (s *service) FilterOne(ctx context.Context, musicID uuid.UUID) (projection.FilterMusicOutput, error) {
	if err := checks.Required("Music id", musicID); err != nil {
		return projection.FilterMusicOutput{}, err
	}

	found, err := s.musics.FindByID(ctx, musicID)
	music, err := checks.Exist("Music", found, err)
	if err != nil {
		return projection.FilterMusicOutput{}, err
	}

	return projection.FilterMusic(music), nil
}

func (s *service) FilterByMusician(ctx context.Context, musicianID int64, page, perPage int) (projection.ListMusicOutput, error) {
	if err := checks.Required("Musician id", musicianID); err != nil {
		return projection.ListMusicOutput{}, err
	}

	if _, err := s.activeMusician(ctx, musicianID); err != nil {
		return projection.ListMusicOutput{}, err
	}

	req := paging.Normalize(page, perPage)
	result, err := s.musics.FindAll(ctx, req, data.MusicFilter{MusicianID: musicianID})
	if err != nil {
		return projection.ListMusicOutput{}, fmt.Errorf("list musician musics: %w", err)
	}

	return projection.MusicPage(result, req.Size), nil
}

func (s *service) ListOwn(ctx context.Context, actorID int64, filter OwnFilter, page, perPage int) (projection.ListMusicOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.ListMusicOutput{}, err
	}

	// Owners may inspect their data even after disabling the account.
	found, err := s.musicians.FindByID(ctx, actorID)
	if _, err := checks.Exist("Musician", found, err); err != nil {
		return projection.ListMusicOutput{}, err
	}

	req := paging.Normalize(page, perPage)
	result, err := s.musics.FindAll(ctx, req, data.MusicFilter{
		Name:            strings.TrimSpace(filter.Name),
		Album:           strings.TrimSpace(filter.Album),
		MusicianID:      actorID,
		IncludeDisabled: true,
	})
	if err != nil {
		return projection.ListMusicOutput{}, fmt.Errorf("list own musics: %w", err)
	}

	return projection.MusicPage(result, req.Size), nil
}

func (s *service) Disable(ctx context.Context, actorID int64, musicID uuid.UUID) (projection.MusicOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Music id", musicID); err != nil {
		return projection.MusicOutput{}, err
	}

	if _, err := s.activeMusician(ctx, actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	music, err := s.ownedMusic(ctx, actorID, musicID)
	if err != nil {
		return projection.MusicOutput{}, err
	}

	if music.Disabled {
		return projection.Music(music), nil
	}

	music.Disabled = true
	updated, err := s.musics.Update(ctx, music)
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("disable music: %w", err)
	}

	return projection.Music(updated), nil
}

func (s *service) Update(ctx context.Context, actorID int64, in UpdateMusic) (projection.MusicOutput, error) {
	if err := checks.Required("Musician id", actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.Required("Music id", in.MusicID); err != nil {
		return projection.MusicOutput{}, err
	}
	if in.Name != nil {
		if err := checks.RequiredText("Music name", *in.Name); err != nil {
			return projection.MusicOutput{}, err
		}
	}
	if in.Duration != nil && *in.Duration < 0 {
		return projection.MusicOutput{}, apperr.InvalidInput("Music duration can't be negative")
	}
	if in.CategoryID != nil {
		if err := checks.Required("Category id", *in.CategoryID); err != nil {
			return projection.MusicOutput{}, err
		}
	}
	if in.AlbumID != nil {
		if err := checks.Required("Album id", *in.AlbumID); err != nil {
			return projection.MusicOutput{}, err
		}
	}

	if _, err := s.activeMusician(ctx, actorID); err != nil {
		return projection.MusicOutput{}, err
	}
	music, err := s.ownedMusic(ctx, actorID, in.MusicID)
	if err != nil {
		return projection.MusicOutput{}, err
	}
	if err := checks.NotDisabled("Music", music); err != nil {
		return projection.MusicOutput{}, err
	}

	// Resolve every new reference before touching the entity.
	category := music.Category
	if in.CategoryID != nil {
		if category, err = s.category(ctx, *in.CategoryID); err != nil {
			return projection.MusicOutput{}, err
		}
	}

	album := music.Album
	if in.AlbumID != nil {
		current, hasAlbum := music.AlbumID()
		if !hasAlbum || current != *in.AlbumID {
			target, err := s.ownedAlbum(ctx, actorID, *in.AlbumID)
			if err != nil {
				return projection.MusicOutput{}, err
			}
			if hasAlbum {
				return projection.MusicOutput{}, apperr.Conflict("Music", "Music already belongs to another album")
			}
			album = target
		}
	}

	name := music.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if album != nil && (name != music.Name || album != music.Album) {
		if err := s.ensureUniqueInAlbum(ctx, album, name, music.ID); err != nil {
			return projection.MusicOutput{}, err
		}
	}

	music.Name = name
	music.Category = category
	music.Album = album
	if in.Duration != nil {
		music.Duration = *in.Duration
	}
	if in.IsSingle != nil {
		music.IsSingle = *in.IsSingle
	}

	updated, err := s.musics.Update(ctx, music)
	if err != nil {
		return projection.MusicOutput{}, fmt.Errorf("update music: %w", err)
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

func (s *service) category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	found, err := s.categories.FindByID(ctx, id)
	return checks.Exist("Category", found, err)
}

func (s *service) ownedAlbum(ctx context.Context, actorID int64, id uuid.UUID) (*models.Album, error) {
	found, err := s.albums.FindByID(ctx, id)
	album, err := checks.Exist("Album", found, err)
	if err != nil {
		return nil, err
	}
	if err := checks.Owns("Album", actorID, album.OwnerID()); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *service) ownedMusic(ctx context.Context, actorID int64, id uuid.UUID) (*models.Music, error) {
	found, err := s.musics.FindByID(ctx, id)
	music, err := checks.Exist("Music", found, err)
	if err != nil {
		return nil, err
	}
	if err := checks.Owns("Music", actorID, music.OwnerID()); err != nil {
		return nil, err
	}
	return music, nil
}

// ensureUniqueInAlbum fails when another track of album already uses name. self is the
// track being renamed or moved, or uuid.Nil for a new one.
func (s *service) ensureUniqueInAlbum(ctx context.Context, album *models.Album, name string, self uuid.UUID) error {
	existing, err := s.musics.FindByAlbumAndName(ctx, album.ID, name)
	if err != nil {
		return fmt.Errorf("find music by album and name: %w", err)
	}
	if existing != nil && existing.ID != self {
		return apperr.Conflict("Music", "Music %q already exists in album %q", name, album.Name)
	}
	return nil
}
