package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/training-portal/auth"
	apperrors "github.com/jrsteele09/training-portal/internal/errors"
	"github.com/jrsteele09/training-portal/navigation"
	"github.com/jrsteele09/training-portal/token"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyDeviceID stores the device id taken from the device cookie
	ContextKeyDeviceID ContextKey = "device_id"
	// ContextKeyStore stores the device's session store
	ContextKeyStore ContextKey = "session_store"
)

// DeviceMiddleware binds the request to the session store of its device. A
// missing or invalid device cookie gets a fresh device, which starts Anonymous.
func (s *Server) DeviceMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var deviceID string
		if cookie, err := r.Cookie(deviceCookieName); err == nil && cookie.Value != "" {
			id, err := s.devices.Parse(cookie.Value)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("ignoring invalid device cookie")
			} else {
				deviceID = id
			}
		}

		if deviceID == "" {
			deviceID = token.NewDeviceID()
			signed, err := s.devices.Issue(deviceID)
			if err != nil {
				log.Err(err).Msg("failed to issue device token")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}
			s.setDeviceCookie(w, r, signed)
		}

		store, err := s.stores.Get(r.Context(), deviceID)
		if err != nil {
			log.Err(err).Str("device_id", deviceID).Msg("failed to open session store")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyDeviceID, deviceID)
		ctx = context.WithValue(ctx, ContextKeyStore, store)
		next(w, r.WithContext(ctx))
	}
}

// RequireRoute runs the route guard for route on every request. Render lets
// the view through; PromptLogin and Deny answer without calling next.
func (s *Server) RequireRoute(route navigation.Route) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			store, ok := StoreFromContext(r.Context())
			if !ok {
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}

			switch decision := store.Authorize(route.Required); decision {
			case auth.Render:
				next(w, r)
			case auth.PromptLogin:
				s.promptLogin(w, r)
			default:
				log.Info().Str("slot", store.Slot()).Str("path", route.Path).Str("decision", decision.String()).Msg("access denied")
				s.denyAccess(w, r)
			}
		}
	}
}

func (s *Server) promptLogin(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeAppError(w, apperrors.ErrLoginRequired)
		return
	}
	redirectSuccess(w, r, RouteLogin)
}

func (s *Server) denyAccess(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeAppError(w, apperrors.ErrUnauthorized)
		return
	}
	s.renderPage(w, http.StatusForbidden, "denied.html", s.pageData(r))
}

// StoreFromContext returns the session store attached by DeviceMiddleware.
func StoreFromContext(ctx context.Context) (*auth.Store, bool) {
	store, ok := ctx.Value(ContextKeyStore).(*auth.Store)
	return store, ok && store != nil
}

func deviceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyDeviceID).(string)
	return id
}
