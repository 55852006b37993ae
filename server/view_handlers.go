package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/training-portal/internal/errors"
	"github.com/jrsteele09/training-portal/navigation"
	"github.com/jrsteele09/training-portal/users"
)

// viewResponse describes a rendered view to JSON clients.
type viewResponse struct {
	Name   string             `json:"name"`
	Title  string             `json:"title"`
	Path   string             `json:"path"`
	Viewer *users.User        `json:"viewer"`
	Menu   []navigation.Entry `json:"menu"`
}

// ViewHandler renders a protected view. It only runs after RequireRoute has
// returned Render.
func (s *Server) ViewHandler(route navigation.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r)
		data.Route = route

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, viewResponse{
				Name:   route.Name,
				Title:  route.Title,
				Path:   route.Path,
				Viewer: data.User,
				Menu:   data.Menu,
			})
			return
		}
		s.renderPage(w, http.StatusOK, "view.html", data)
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeAppError(w, apperrors.Wrapf(apperrors.ErrNotFound, "%s", r.URL.Path))
			return
		}
		s.renderPage(w, http.StatusNotFound, "notfound.html", s.pageData(r))
	}
}
