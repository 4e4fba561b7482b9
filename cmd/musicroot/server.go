package main

import (
	"net/http"

	"musicroot/internal/app/albums"
	"musicroot/internal/app/music"
	"musicroot/internal/app/musicians"
	"musicroot/internal/app/playlists"
	"musicroot/internal/app/users"
	"musicroot/internal/auth"
	"musicroot/internal/config"
	"musicroot/internal/http/middleware"
	"musicroot/internal/httpapi"
)

type services struct {
	music     music.Service
	albums    albums.Service
	musicians musicians.Service
	users     users.Service
	playlists playlists.Service
}

func newServices(b *backend) services {
	return services{
		music:     music.New(b.musicians, b.musics, b.albums, b.categories),
		albums:    albums.New(b.musicians, b.albums, b.musics),
		musicians: musicians.New(b.musicians),
		users:     users.New(b.users),
		playlists: playlists.New(b.users, b.playlists, b.playlistMusics, b.musics),
	}
}

func newHTTPHandler(cfg *config.Config, svc services) http.Handler {
	api := httpapi.New(httpapi.Services{
		Music:     svc.music,
		Albums:    svc.albums,
		Musicians: svc.musicians,
		Users:     svc.users,
		Playlists: svc.playlists,
	}, auth.NewTokens(cfg.Security.JWTSecret, cfg.Security.TokenTTL))

	return middleware.Chain(api.Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
}
