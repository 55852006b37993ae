package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/training-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

const (
	// deviceCookieName carries the signed device token that selects the session slot
	deviceCookieName = "portal_device"
	// loginFlowCookieName tracks a login waiting for its passcode
	loginFlowCookieName = "login_flow_id"
)

func (s *Server) setDeviceCookie(w http.ResponseWriter, r *http.Request, deviceToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    deviceToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetDeviceTokenTTL().Seconds()),
	})
}

// setLoginFlowCookie sets the pending flow id; a negative maxAge deletes it.
func (s *Server) setLoginFlowCookie(w http.ResponseWriter, r *http.Request, flowID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     loginFlowCookieName,
		Value:    flowID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, path+"?error="+url.QueryEscape(errorMsg))
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client asked for JSON rather than a page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to write JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

// writeAppError maps the shared sentinels onto HTTP status codes.
func writeAppError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "server_error"
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidBody):
		status, code = http.StatusBadRequest, "invalid_request"
	case apperrors.Is(err, apperrors.ErrInvalidCredentials), apperrors.Is(err, apperrors.ErrInvalidPasscode):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case apperrors.Is(err, apperrors.ErrLoginRequired):
		status, code = http.StatusUnauthorized, "login_required"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		status, code = http.StatusForbidden, "access_denied"
	case apperrors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	}
	description := err.Error()
	if status == http.StatusInternalServerError {
		description = apperrors.ErrInternal.Error()
	}
	writeJSONError(w, code, description, status)
}
