package httpapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"musicroot/internal/app/music"
)

type registerMusicRequest struct {
	Name     string     `json:"name"`
	Duration int        `json:"duration"`
	IsSingle bool       `json:"isSingle"`
	AlbumID  *uuid.UUID `json:"albumId"`
}

type updateMusicRequest struct {
	Name       *string    `json:"name"`
	Duration   *int       `json:"duration"`
	IsSingle   *bool      `json:"isSingle"`
	CategoryID *uuid.UUID `json:"categoryId"`
	AlbumID    *uuid.UUID `json:"albumId"`
}

func (s *Server) handleRegisterMusic(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "categoryId", "category")
	if !ok {
		return
	}

	var req registerMusicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := music.NewMusic{
		Name:       req.Name,
		Duration:   req.Duration,
		IsSingle:   req.IsSingle,
		CategoryID: categoryID,
	}
	if req.AlbumID != nil {
		in.AlbumID = *req.AlbumID
	}

	out, err := s.music.Register(r.Context(), actorFrom(r.Context()).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleFilterMusics(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}

	out, err := s.music.FilterByName(r.Context(), r.URL.Query().Get("name"), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFilterMusic(w http.ResponseWriter, r *http.Request) {
	musicID, ok := pathUUID(w, r, "musicId", "music")
	if !ok {
		return
	}

	out, err := s.music.FilterOne(r.Context(), musicID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMusicianMusics(w http.ResponseWriter, r *http.Request) {
	musicianID, err := parseInt64(r.PathValue("musicianId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid musician id"})
		return
	}
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}

	out, err := s.music.FilterByMusician(r.Context(), musicianID, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOwnMusics(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := music.OwnFilter{Name: query.Get("name"), Album: query.Get("album")}

	out, err := s.music.ListOwn(r.Context(), actorFrom(r.Context()).ID, filter, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateMusic(w http.ResponseWriter, r *http.Request) {
	musicID, ok := pathUUID(w, r, "musicId", "music")
	if !ok {
		return
	}

	var req updateMusicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.music.Update(r.Context(), actorFrom(r.Context()).ID, music.UpdateMusic{
		MusicID:    musicID,
		Name:       req.Name,
		Duration:   req.Duration,
		IsSingle:   req.IsSingle,
		CategoryID: req.CategoryID,
		AlbumID:    req.AlbumID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDisableMusic(w http.ResponseWriter, r *http.Request) {
	musicID, ok := pathUUID(w, r, "musicId", "music")
	if !ok {
		return
	}

	out, err := s.music.Disable(r.Context(), actorFrom(r.Context()).ID, musicID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
