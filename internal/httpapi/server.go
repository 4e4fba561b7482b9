// Package httpapi exposes the catalog use cases over JSON/HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"musicroot/internal/app/albums"
	"musicroot/internal/app/apperr"
	"musicroot/internal/app/music"
	"musicroot/internal/app/musicians"
	"musicroot/internal/app/playlists"
	"musicroot/internal/app/users"
	"musicroot/internal/auth"
	"musicroot/internal/logging"
	"musicroot/internal/models"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(actor auth.Actor) (string, error)
	Parse(raw string) (auth.Actor, error)
}

// Services groups the use cases the handlers call.
type Services struct {
	Music     music.Service
	Albums    albums.Service
	Musicians musicians.Service
	Users     users.Service
	Playlists playlists.Service
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	music     music.Service
	albums    albums.Service
	musicians musicians.Service
	users     users.Service
	playlists playlists.Service
	tokens    TokenService
}

// New configures a Server.
func New(services Services, tokens TokenService) *Server {
	return &Server{
		music:     services.Music,
		albums:    services.Albums,
		musicians: services.Musicians,
		users:     services.Users,
		playlists: services.Playlists,
		tokens:    tokens,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /api/v1/auth/musicians/signup", s.handleMusicianSignup)
	mux.HandleFunc("POST /api/v1/auth/musicians/login", s.handleMusicianLogin)
	mux.HandleFunc("POST /api/v1/auth/users/signup", s.handleUserSignup)
	mux.HandleFunc("POST /api/v1/auth/users/login", s.handleUserLogin)

	// Musicians
	mux.HandleFunc("GET /api/v1/musicians", s.handleFilterMusician)
	mux.Handle("PATCH /api/v1/me/disable", s.require(models.RoleMusician, s.handleDisableMusician))

	// Musics
	mux.HandleFunc("GET /api/v1/musics", s.handleFilterMusics)
	mux.HandleFunc("GET /api/v1/musics/{musicId}", s.handleFilterMusic)
	mux.HandleFunc("GET /api/v1/musicians/{musicianId}/musics", s.handleMusicianMusics)
	mux.Handle("POST /api/v1/categories/{categoryId}/musics", s.require(models.RoleMusician, s.handleRegisterMusic))
	mux.Handle("GET /api/v1/me/musics", s.require(models.RoleMusician, s.handleOwnMusics))
	mux.Handle("PATCH /api/v1/musics/{musicId}", s.require(models.RoleMusician, s.handleUpdateMusic))
	mux.Handle("PATCH /api/v1/musics/{musicId}/disable", s.require(models.RoleMusician, s.handleDisableMusic))

	// Albums
	mux.Handle("POST /api/v1/albums", s.require(models.RoleMusician, s.handleRegisterAlbum))
	mux.Handle("GET /api/v1/me/albums", s.require(models.RoleMusician, s.handleOwnAlbums))
	mux.Handle("POST /api/v1/albums/{albumId}/musics/{musicId}", s.require(models.RoleMusician, s.handleInsertMusic))
	mux.Handle("DELETE /api/v1/musics/{musicId}/album", s.require(models.RoleMusician, s.handleRemoveMusic))

	// Playlists
	mux.HandleFunc("GET /api/v1/playlists/{playlistId}", s.handleGetPlaylist)
	mux.Handle("POST /api/v1/playlists", s.require(models.RoleUser, s.handleRegisterPlaylist))
	mux.Handle("PATCH /api/v1/playlists/{playlistId}/disable", s.require(models.RoleUser, s.handleDisablePlaylist))
	mux.Handle("POST /api/v1/playlists/{playlistId}/musics", s.require(models.RoleUser, s.handleAddPlaylistMusic))
	mux.Handle("PATCH /api/v1/playlists/{playlistId}/musics/{entryId}/disable", s.require(models.RoleUser, s.handleDisablePlaylistMusic))

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type actorKey struct{}

// require authenticates the bearer token and admits only actors with role.
func (s *Server) require(role models.Role, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		actor, err := s.tokens.Parse(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}
		if actor.Role != role {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "operation not allowed for this account"})
			return
		}

		ctx := context.WithValue(r.Context(), actorKey{}, actor)
		ctx = logging.WithActorID(ctx, actor.ID)
		next(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) auth.Actor {
	actor, _ := ctx.Value(actorKey{}).(auth.Actor)
	return actor
}

// writeError maps classified failures onto status codes. Anything unclassified is logged
// and reported as a 500 without leaking its message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.ErrInvalidInput:
		status = http.StatusBadRequest
	case apperr.ErrNotFound:
		status = http.StatusNotFound
	case apperr.ErrForbidden:
		status = http.StatusForbidden
	case apperr.ErrConflict:
		status = http.StatusConflict
	case apperr.ErrUnauthorized:
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeJSON(w, status, errorResponse{Error: appErr.Message})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + label + " id"})
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and size. Absent values are zero and left to the use case to
// normalise.
func pageParams(w http.ResponseWriter, r *http.Request) (page, size int, ok bool) {
	query := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *int
	}{{"page", &page}, {"size", &size}} {
		raw := query.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + p.key + " parameter"})
			return 0, 0, false
		}
		*p.dst = v
	}
	return page, size, true
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
