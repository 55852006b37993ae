package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/training-portal/internal/errors"
	"github.com/jrsteele09/training-portal/navigation"
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/rs/zerolog/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// loginRequest is the single-step JSON login body.
type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Passcode   string `json:"passcode" validate:"required"`
}

// APILoginHandler logs in with identifier, password and passcode in one call.
func (s *Server) APILoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			writeAppError(w, apperrors.ErrInternal)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeAppError(w, apperrors.Wrapf(apperrors.ErrInvalidBody, "decode"))
			return
		}
		if err := validate.Struct(req); err != nil {
			writeAppError(w, apperrors.Wrapf(apperrors.ErrInvalidBody, "identifier, password and passcode are required"))
			return
		}

		loggedIn, err := store.Login(r.Context(), req.Identifier, req.Password, req.Passcode)
		if err != nil {
			log.Err(err).Str("slot", store.Slot()).Msg("login could not be persisted")
			writeAppError(w, err)
			return
		}
		if !loggedIn {
			writeAppError(w, apperrors.ErrInvalidCredentials)
			return
		}

		writeJSON(w, http.StatusOK, sessions.NewRecord(store.Session()))
	}
}

// SessionHandler returns the current session in its persisted form.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			writeAppError(w, apperrors.ErrInternal)
			return
		}
		writeJSON(w, http.StatusOK, sessions.NewRecord(store.Session()))
	}
}

// NavigationHandler returns the menu entries visible to the current session.
func (s *Server) NavigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			writeAppError(w, apperrors.ErrInternal)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"entries": navigation.Visible(store.Session()),
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
