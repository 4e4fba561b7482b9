package httpapi

import (
	"net/http"

	"musicroot/internal/app/musicians"
	"musicroot/internal/app/users"
	"musicroot/internal/auth"
	"musicroot/internal/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string `json:"token"`
	Account any    `json:"account"`
}

func (s *Server) handleMusicianSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.musicians.Register(r.Context(), musicians.NewMusician{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.writeSession(w, r, http.StatusCreated, auth.Actor{ID: out.ID, Role: models.RoleMusician}, out)
}

func (s *Server) handleMusicianLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.musicians.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.writeSession(w, r, http.StatusOK, auth.Actor{ID: out.ID, Role: models.RoleMusician}, out)
}

func (s *Server) handleUserSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.users.Register(r.Context(), users.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.writeSession(w, r, http.StatusCreated, auth.Actor{ID: out.ID, Role: models.RoleUser}, out)
}

func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.writeSession(w, r, http.StatusOK, auth.Actor{ID: out.ID, Role: models.RoleUser}, out)
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, actor auth.Actor, account any) {
	token, err := s.tokens.Issue(actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, sessionResponse{Token: token, Account: account})
}

func (s *Server) handleFilterMusician(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var id *int64
	if raw := query.Get("id"); raw != "" {
		parsed, err := parseInt64(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id parameter"})
			return
		}
		id = &parsed
	}

	var name *string
	if query.Has("name") {
		v := query.Get("name")
		name = &v
	}

	out, err := s.musicians.Filter(r.Context(), id, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDisableMusician(w http.ResponseWriter, r *http.Request) {
	out, err := s.musicians.Disable(r.Context(), actorFrom(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
