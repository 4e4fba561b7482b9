package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"musicroot/internal/app/data"
	"musicroot/internal/cache"
	"musicroot/internal/config"
	"musicroot/internal/models"
	"musicroot/internal/store"
	"musicroot/internal/store/memory"
)

// backend bundles the providers the use cases run against.
type backend struct {
	musicians      data.MusicianProvider
	musics         data.MusicProvider
	albums         data.AlbumProvider
	categories     data.CategoryProvider
	users          data.UserProvider
	playlists      data.PlaylistProvider
	playlistMusics data.PlaylistMusicProvider

	// demoCategories is set when the providers start empty and need demo data.
	demoCategories map[models.CategoryName]models.Category
	closers        []func() error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Warn().Err(err).Msg("close backend resource")
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		mem := memory.New()
		b.demoCategories = mem.SeedCategories()
		b.musicians = mem.Musicians()
		b.musics = mem.Musics()
		b.albums = mem.Albums()
		b.categories = mem.Categories()
		b.users = mem.Users()
		b.playlists = mem.Playlists()
		b.playlistMusics = mem.PlaylistMusics()
	default:
		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)

		pg := store.New(db)
		b.musicians = pg.Musicians()
		b.musics = pg.Musics()
		b.albums = pg.Albums()
		b.categories = pg.Categories()
		b.users = pg.Users()
		b.playlists = pg.Playlists()
		b.playlistMusics = pg.PlaylistMusics()
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			b.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		b.closers = append(b.closers, rdb.Close)
		b.categories = cache.NewCategories(rdb, b.categories, cfg.Redis.CategoryTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	}

	return b, nil
}
