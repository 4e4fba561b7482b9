package httpapi

import (
	"net/http"
)

type registerAlbumRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRegisterAlbum(w http.ResponseWriter, r *http.Request) {
	var req registerAlbumRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.albums.Register(r.Context(), actorFrom(r.Context()).ID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleOwnAlbums(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}

	out, err := s.albums.ListOwn(r.Context(), actorFrom(r.Context()).ID, r.URL.Query().Get("name"), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInsertMusic(w http.ResponseWriter, r *http.Request) {
	albumID, ok := pathUUID(w, r, "albumId", "album")
	if !ok {
		return
	}
	musicID, ok := pathUUID(w, r, "musicId", "music")
	if !ok {
		return
	}

	out, err := s.albums.InsertMusic(r.Context(), actorFrom(r.Context()).ID, albumID, musicID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRemoveMusic(w http.ResponseWriter, r *http.Request) {
	musicID, ok := pathUUID(w, r, "musicId", "music")
	if !ok {
		return
	}

	out, err := s.albums.RemoveMusic(r.Context(), actorFrom(r.Context()).ID, musicID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
