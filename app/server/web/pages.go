package web

import (
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/longvox/themer/app/enum"
	"github.com/longvox/themer/app/theme"
)

// sampleCode is a fixed snippet shown on the page to exercise the highlight
// stylesheet pair. It is not content, the blog's articles live elsewhere.
const sampleCode = `func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}`

// handleIndex renders the page shell with the theme applied: root marker,
// stylesheet pair flags and the widget embed all reflect the visitor's
// resolved preference.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	visitor := h.visitor(w, r)
	ctrl, doc := h.sessions.Session(visitor)

	th := ctrl.Restore(r.Context())
	snap := doc.Snapshot()

	data := templateData{
		Title:         h.siteTitle,
		Theme:         th.String(),
		DarkMarker:    snap.DarkMarker,
		LightDisabled: snap.LightDisabled,
		DarkDisabled:  snap.DarkDisabled,
		WidgetTheme:   theme.WidgetTheme(th),
		WidgetOrigin:  h.widgetOrigin,
		WidgetRepo:    h.widgetRepo,
		Sample:        h.highlighter.Code(sampleCode, "go"),
		BaseURL:       h.baseURL,
	}

	if err := h.tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// handleThemeToggle flips the visitor's theme between light and dark.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	visitor := h.visitor(w, r)
	ctrl, _ := h.sessions.Session(visitor)

	newTheme := ctrl.Toggle(r.Context())
	log.Printf("[DEBUG] visitor %s toggled theme to %s", visitor, newTheme)

	// trigger full page refresh
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// handleThemeSet applies an explicit theme from the URL path.
func (h *Handler) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	th, err := enum.ParseTheme(r.PathValue("theme"))
	if err != nil {
		http.Error(w, "invalid theme", http.StatusBadRequest)
		return
	}

	visitor := h.visitor(w, r)
	ctrl, _ := h.sessions.Session(visitor)
	ctrl.Apply(r.Context(), th)

	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}
