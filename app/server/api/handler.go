// Package api provides HTTP handlers for the theme JSON API.
package api

import (
	"context"
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"

	"github.com/longvox/themer/app/enum"
	"github.com/longvox/themer/app/store"
	"github.com/longvox/themer/app/theme"
)

// visitorHeader lets API clients pass the visitor id without cookies.
const visitorHeader = "X-Themer-Visitor"

// visitorCookie matches the cookie the web UI mints.
const visitorCookie = "themer-visitor"

// SessionManager defines the interface to per-visitor theme sessions.
type SessionManager interface {
	Session(visitor string) (*theme.Controller, *theme.DocumentState)
	ActiveSessions() int
}

// PreferenceStore defines the admin operations over stored preferences.
// Defined here (consumer side) to allow different store implementations.
type PreferenceStore interface {
	DeletePreference(ctx context.Context, visitor string) error
	Count(ctx context.Context) (int, error)
}

// Handler handles API requests for /api/v1/* endpoints.
type Handler struct {
	sessions SessionManager
	prefs    PreferenceStore
}

// New creates a new API handler.
func New(sm SessionManager, prefs PreferenceStore) *Handler {
	return &Handler{sessions: sm, prefs: prefs}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", h.handleGet)
	r.HandleFunc("POST /theme/toggle", h.handleToggle)
	r.HandleFunc("PUT /theme/{theme}", h.handleSet)
	r.HandleFunc("DELETE /theme", h.handleDelete)
	r.HandleFunc("GET /status", h.handleStatus)
}

// ThemeState is the API representation of a visitor's theme session.
type ThemeState struct {
	Theme                   string `json:"theme"`
	DarkMarker              bool   `json:"dark_marker"`
	LightStylesheetDisabled bool   `json:"light_stylesheet_disabled"`
	DarkStylesheetDisabled  bool   `json:"dark_stylesheet_disabled"`
	WidgetTheme             string `json:"widget_theme"`
}

// handleGet returns the visitor's current theme state, restoring the stored
// preference first.
// GET /api/v1/theme
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(r)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "visitor id is required")
		return
	}

	ctrl, doc := h.sessions.Session(visitor)
	th := ctrl.Restore(r.Context())
	rest.RenderJSON(w, h.state(th, doc))
}

// handleToggle flips the visitor's theme and returns the resulting state.
// POST /api/v1/theme/toggle
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(r)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "visitor id is required")
		return
	}

	ctrl, doc := h.sessions.Session(visitor)
	th := ctrl.Toggle(r.Context())
	log.Printf("[INFO] api toggle to %s for visitor %s", th, visitor)
	rest.RenderJSON(w, h.state(th, doc))
}

// handleSet applies an explicit theme for the visitor.
// PUT /api/v1/theme/{theme}
func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(r)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "visitor id is required")
		return
	}

	th, err := enum.ParseTheme(r.PathValue("theme"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid theme")
		return
	}

	ctrl, doc := h.sessions.Session(visitor)
	ctrl.Apply(r.Context(), th)
	log.Printf("[INFO] api set %s for visitor %s", th, visitor)
	rest.RenderJSON(w, h.state(th, doc))
}

// handleDelete removes the visitor's stored preference. The next page load
// falls back to the default theme.
// DELETE /api/v1/theme
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(r)
	if !ok {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "visitor id is required")
		return
	}

	err := h.prefs.DeletePreference(r.Context(), visitor)
	if errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "no stored preference")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to delete preference")
		return
	}

	log.Printf("[INFO] api deleted preference for visitor %s", visitor)
	w.WriteHeader(http.StatusNoContent)
}

// Status reports service-level counters.
type Status struct {
	StoredPreferences int `json:"stored_preferences"`
	ActiveSessions    int `json:"active_sessions"`
}

// handleStatus returns stored preference and live session counts.
// GET /api/v1/status
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.prefs.Count(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to count preferences")
		return
	}
	rest.RenderJSON(w, Status{StoredPreferences: count, ActiveSessions: h.sessions.ActiveSessions()})
}

// state assembles the API view of the session's document.
func (h *Handler) state(th enum.Theme, doc *theme.DocumentState) ThemeState {
	snap := doc.Snapshot()
	return ThemeState{
		Theme:                   th.String(),
		DarkMarker:              snap.DarkMarker,
		LightStylesheetDisabled: snap.LightDisabled,
		DarkStylesheetDisabled:  snap.DarkDisabled,
		WidgetTheme:             theme.WidgetTheme(th),
	}
}

// visitor extracts the visitor id from the header or the web UI cookie.
// API clients are expected to pass their own stable uuid in the header.
func (h *Handler) visitor(r *http.Request) (string, bool) {
	if id := r.Header.Get(visitorHeader); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id, true
		}
		return "", false
	}
	if cookie, err := r.Cookie(visitorCookie); err == nil && cookie.Value != "" {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value, true
		}
	}
	return "", false
}
