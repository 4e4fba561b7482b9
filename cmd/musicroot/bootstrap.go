package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"musicroot/internal/app/apperr"
	"musicroot/internal/app/music"
	"musicroot/internal/app/musicians"
	"musicroot/internal/models"
)

const (
	demoEmail    = "demo@musicroot.local"
	demoPassword = "demo-password"
)

type seedTrack struct {
	Name     string
	Duration int
	Category models.CategoryName
}

var demoCatalog = []struct {
	Album  string
	Tracks []seedTrack
}{
	{
		Album: "Kind of Blue",
		Tracks: []seedTrack{
			{Name: "So What", Duration: 562, Category: models.CategoryJazz},
			{Name: "Freddie Freeloader", Duration: 589, Category: models.CategoryJazz},
			{Name: "Blue in Green", Duration: 337, Category: models.CategoryJazz},
		},
	},
	{
		Album: "Mezzanine",
		Tracks: []seedTrack{
			{Name: "Angel", Duration: 379, Category: models.CategoryElectronic},
			{Name: "Teardrop", Duration: 330, Category: models.CategoryElectronic},
		},
	},
}

// bootstrapDemoData registers a demo musician with a small catalog. An existing demo
// account leaves everything untouched.
func bootstrapDemoData(ctx context.Context, categories map[models.CategoryName]models.Category, svc services) error {
	account, err := svc.musicians.Register(ctx, musicians.NewMusician{
		Name:     "Demo Musician",
		Email:    demoEmail,
		Password: demoPassword,
	})
	if errors.Is(err, apperr.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap demo musician: %w", err)
	}

	for _, entry := range demoCatalog {
		album, err := svc.albums.Register(ctx, account.ID, entry.Album)
		if err != nil {
			return fmt.Errorf("bootstrap demo album %q: %w", entry.Album, err)
		}
		for _, track := range entry.Tracks {
			if _, err := svc.music.Register(ctx, account.ID, music.NewMusic{
				Name:       track.Name,
				Duration:   track.Duration,
				CategoryID: categories[track.Category].ID,
				AlbumID:    album.ID,
			}); err != nil {
				return fmt.Errorf("bootstrap demo music %q: %w", track.Name, err)
			}
		}
	}

	if _, err := svc.music.Register(ctx, account.ID, music.NewMusic{
		Name:       "Midnight Single",
		Duration:   201,
		IsSingle:   true,
		CategoryID: categories[models.CategoryPop].ID,
		AlbumID:    uuid.Nil,
	}); err != nil {
		return fmt.Errorf("bootstrap demo single: %w", err)
	}

	return nil
}
