package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/training-portal/navigation"
	"github.com/jrsteele09/training-portal/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

// pageTemplates are rendered inside the layout.
var pageTemplates = []string{"login.html", "view.html", "denied.html", "notfound.html"}

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplates parses every page together with the shared layout.
func ParseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.New(name).ParseFS(TemplateFilesFS(), layoutTemplate, name)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", name)
		}
		pages[name] = t
	}
	return pages, nil
}

// PageData is what every page template receives.
type PageData struct {
	AppName    string
	User       *users.User
	Menu       []navigation.Entry
	Route      navigation.Route
	Step       string
	Error      string
	Identifier string
}

func (s *Server) pageData(r *http.Request) PageData {
	data := PageData{AppName: s.config.GetAppName()}
	if store, ok := StoreFromContext(r.Context()); ok {
		session := store.Session()
		data.User = session.User()
		data.Menu = navigation.Visible(session)
	}
	return data
}

func (s *Server) renderPage(w http.ResponseWriter, statusCode int, name string, data PageData) {
	t, ok := s.pages[name]
	if !ok {
		log.Error().Str("template", name).Msg("unknown page template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("template", name).Msg("Failed to render page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}
