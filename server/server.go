package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/training-portal/auth"
	"github.com/jrsteele09/training-portal/internal/config"
	"github.com/jrsteele09/training-portal/server/loginflow"
	"github.com/jrsteele09/training-portal/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	stores  *auth.Stores
	devices *token.DeviceTokens
	flows   loginflow.Repo
	pages   map[string]*template.Template
}

func New(config config.Config, stores *auth.Stores, devices *token.DeviceTokens, flows loginflow.Repo) (*Server, error) {
	if stores == nil {
		return nil, errors.New("[Server New] session stores are required")
	}
	if devices == nil {
		return nil, errors.New("[Server New] device tokens are required")
	}
	if flows == nil {
		return nil, errors.New("[Server New] login flow repo is required")
	}

	pages, err := ParseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to parse page templates")
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		stores:  stores,
		devices: devices,
		flows:   flows,
		pages:   pages,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// SweepLoginFlows drops abandoned login flows every interval until ctx is done.
func (s *Server) SweepLoginFlows(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.flows.DeleteExpired(now.Add(-s.config.GetOTPFlowTTL())); n > 0 {
				log.Debug().Int("count", n).Msg("swept expired login flows")
			}
		}
	}
}

func (s *Server) logRoutes() {
	if !config.IsDev(s.env) {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
