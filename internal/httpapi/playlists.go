package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"musicroot/internal/app/playlists"
)

type registerPlaylistRequest struct {
	Name       string `json:"name"`
	CoverImage string `json:"coverImage"`
	Order      int    `json:"order"`
}

type addPlaylistMusicRequest struct {
	MusicID  uuid.UUID `json:"musicId"`
	Position *int      `json:"position"`
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathUUID(w, r, "playlistId", "playlist")
	if !ok {
		return
	}

	out, err := s.playlists.Get(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRegisterPlaylist(w http.ResponseWriter, r *http.Request) {
	var req registerPlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.playlists.Register(r.Context(), actorFrom(r.Context()).ID, playlists.NewPlaylist{
		Name:       req.Name,
		CoverImage: req.CoverImage,
		Order:      req.Order,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDisablePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathUUID(w, r, "playlistId", "playlist")
	if !ok {
		return
	}

	out, err := s.playlists.Disable(r.Context(), actorFrom(r.Context()).ID, playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddPlaylistMusic(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathUUID(w, r, "playlistId", "playlist")
	if !ok {
		return
	}

	var req addPlaylistMusicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.playlists.AddMusic(r.Context(), actorFrom(r.Context()).ID, playlistID, req.MusicID, req.Position)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDisablePlaylistMusic(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathUUID(w, r, "playlistId", "playlist")
	if !ok {
		return
	}
	entryID, ok := pathUUID(w, r, "entryId", "entry")
	if !ok {
		return
	}

	out, err := s.playlists.DisableMusic(r.Context(), actorFrom(r.Context()).ID, playlistID, entryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
