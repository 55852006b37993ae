package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/training-portal/internal/errors"
	"github.com/jrsteele09/training-portal/server/loginflow"
	"github.com/rs/zerolog/log"
)

const (
	loginStepCredentials = "credentials"
	loginStepOTP         = "otp"
)

// LoginPageHandler displays the login prompt (GET / and GET /login). The
// passcode step is only shown while this device has a live login flow.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r)
		data.Step = loginStepCredentials
		data.Error = r.URL.Query().Get("error")

		if r.URL.Query().Get("step") == loginStepOTP {
			if _, flow, err := s.currentFlow(r); err == nil {
				data.Step = loginStepOTP
				data.Identifier = flow.Check.Identifier()
			}
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, map[string]any{
				"step":          data.Step,
				"error":         data.Error,
				"authenticated": data.User != nil,
			})
			return
		}
		s.renderPage(w, http.StatusOK, "login.html", data)
	}
}

// LoginSubmissionHandler processes step one of the login form: identifier and
// password. A valid pair opens a login flow that waits for the passcode.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		identifier := strings.TrimSpace(r.FormValue("identifier"))
		password := r.FormValue("password")
		if identifier == "" || password == "" {
			redirectWithError(w, r, RouteLogin, "Email and password are required")
			return
		}

		check, ok := store.VerifyPassword(identifier, password)
		if !ok {
			redirectWithError(w, r, RouteLogin, "Invalid email or password")
			return
		}

		// A new attempt replaces any flow this device still had open
		if previous, err := r.Cookie(loginFlowCookieName); err == nil && previous.Value != "" {
			_ = s.flows.Delete(previous.Value)
		}

		flowID := uuid.New().String()
		flow := &loginflow.Flow{
			DeviceID:  deviceIDFromContext(r.Context()),
			Check:     check,
			CreatedAt: time.Now(),
		}
		if err := s.flows.Upsert(flowID, flow); err != nil {
			log.Err(err).Msg("failed to store login flow")
			redirectWithError(w, r, RouteLogin, "Sign-in failed, please try again")
			return
		}

		s.setLoginFlowCookie(w, r, flowID, int(s.config.GetOTPFlowTTL().Seconds()))
		redirectSuccess(w, r, RouteLogin+"?step="+loginStepOTP)
	}
}

// OTPSubmissionHandler processes step two: the passcode. The flow is used
// once; a wrong passcode sends the user back to step one.
func (s *Server) OTPSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		flowID, flow, err := s.currentFlow(r)
		if err != nil {
			log.Info().Err(err).Msg("passcode submitted without a live login flow")
			s.setLoginFlowCookie(w, r, "", -1)
			redirectWithError(w, r, RouteLogin, "Your sign-in expired, please start again")
			return
		}
		_ = s.flows.Delete(flowID)
		s.setLoginFlowCookie(w, r, "", -1)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		loggedIn, err := store.CompleteLogin(r.Context(), flow.Check, strings.TrimSpace(r.FormValue("passcode")))
		if err != nil {
			log.Err(err).Str("slot", store.Slot()).Msg("login could not be persisted")
			redirectWithError(w, r, RouteLogin, "Sign-in failed, please try again")
			return
		}
		if !loggedIn {
			redirectWithError(w, r, RouteLogin, "Invalid verification code")
			return
		}

		redirectSuccess(w, r, RouteDashboard)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := store.Logout(r.Context()); err != nil {
			log.Err(err).Str("slot", store.Slot()).Msg("logout could not be persisted")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		redirectSuccess(w, r, "/")
	}
}

// currentFlow returns the live login flow of the requesting device.
func (s *Server) currentFlow(r *http.Request) (string, *loginflow.Flow, error) {
	cookie, err := r.Cookie(loginFlowCookieName)
	if err != nil || cookie.Value == "" {
		return "", nil, apperrors.ErrFlowNotFound
	}

	flow, err := s.flows.Get(cookie.Value)
	if err != nil || flow.Check == nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrFlowNotFound, "flow %s", cookie.Value)
	}
	if flow.DeviceID != deviceIDFromContext(r.Context()) {
		return "", nil, apperrors.Wrapf(apperrors.ErrFlowNotFound, "flow %s belongs to another device", cookie.Value)
	}
	if time.Since(flow.CreatedAt) > s.config.GetOTPFlowTTL() {
		_ = s.flows.Delete(cookie.Value)
		return "", nil, apperrors.Wrapf(apperrors.ErrFlowExpired, "flow %s", cookie.Value)
	}
	return cookie.Value, flow, nil
}
