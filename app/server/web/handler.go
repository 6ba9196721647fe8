// Package web provides HTTP handlers for the theme web UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"

	"github.com/longvox/themer/app/theme"
)

// visitorCookie carries the anonymous visitor id the theme preference is
// keyed by. It identifies a browser, not a user.
const visitorCookie = "themer-visitor"

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// SessionManager defines the interface to per-visitor theme sessions.
type SessionManager interface {
	Session(visitor string) (*theme.Controller, *theme.DocumentState)
	Frames() *theme.Registry
}

// Config holds web handler configuration.
type Config struct {
	BaseURL      string // base URL path for reverse proxy (e.g., /themer)
	SiteTitle    string // page title, defaults to "themer"
	WidgetOrigin string // origin the page bridge targets with postMessage
	WidgetRepo   string // repository the widget discussions live in, empty disables the embed
}

// Handler handles web UI requests.
type Handler struct {
	sessions     SessionManager
	highlighter  *Highlighter
	tmpl         *template.Template
	baseURL      string
	siteTitle    string
	widgetOrigin string
	widgetRepo   string
}

// New creates a new web handler.
func New(sm SessionManager, cfg Config) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	hl, err := NewHighlighter()
	if err != nil {
		return nil, fmt.Errorf("failed to create highlighter: %w", err)
	}

	title := cfg.SiteTitle
	if title == "" {
		title = "themer"
	}

	return &Handler{
		sessions:     sm,
		highlighter:  hl,
		tmpl:         tmpl,
		baseURL:      cfg.BaseURL,
		siteTitle:    title,
		widgetOrigin: cfg.WidgetOrigin,
		widgetRepo:   cfg.WidgetRepo,
	}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("POST /web/theme", h.handleThemeToggle)
	r.HandleFunc("PUT /web/theme/{theme}", h.handleThemeSet)
	r.HandleFunc("GET /web/highlight/{file}", h.handleHighlightCSS)
	r.HandleFunc("POST /web/widget/ready", h.handleWidgetReady)
	r.HandleFunc("GET /web/widget/message", h.handleWidgetMessage)
}

// parseTemplates parses all templates from embedded filesystem.
func parseTemplates() (*template.Template, error) {
	content, err := templatesFS.ReadFile("templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base.html: %w", err)
	}
	tmpl, err := template.New("base.html").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse base.html: %w", err)
	}
	return tmpl, nil
}

// templateData holds data passed to the page template.
type templateData struct {
	Title         string
	Theme         string        // active theme name
	DarkMarker    bool          // dark marker class present on the root element
	LightDisabled bool          // highlight-light stylesheet disabled flag
	DarkDisabled  bool          // highlight-dark stylesheet disabled flag
	WidgetTheme   string        // widget-vocabulary theme name for the embed
	WidgetOrigin  string        // origin for the comments widget iframe
	WidgetRepo    string        // repository the widget discussions live in
	Sample        template.HTML // highlighted sample block
	BaseURL       string
}

// visitor returns the visitor id from the cookie, minting a new one when the
// request carries none. The cookie outlives the session, the preference is
// keyed by it.
func (h *Handler) visitor(w http.ResponseWriter, r *http.Request) string {
	if id, ok := h.visitorFromRequest(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     h.cookiePath(),
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// visitorFromRequest returns the visitor id without minting a new one.
func (h *Handler) visitorFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(visitorCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", false
	}
	return cookie.Value, true
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (h *Handler) cookiePath() string {
	if h.baseURL == "" {
		return "/"
	}
	return h.baseURL + "/"
}
