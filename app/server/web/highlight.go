package web

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/longvox/themer/app/enum"
)

// chroma styles backing the highlight stylesheet pair
const (
	lightStyle = "github"
	darkStyle  = "github-dark"
)

// Highlighter provides class-based syntax highlighting and the generated CSS
// for both halves of the highlight stylesheet pair.
type Highlighter struct {
	formatter *chromahtml.Formatter
	lightCSS  []byte
	darkCSS   []byte
}

// NewHighlighter creates a Highlighter with the stylesheet pair pre-rendered.
func NewHighlighter() (*Highlighter, error) {
	// CSS classes keep the markup theme-neutral, the pair carries the colors
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(false),
		chromahtml.WithLineNumbers(false),
	)

	h := &Highlighter{formatter: formatter}

	var err error
	if h.lightCSS, err = h.renderCSS(lightStyle); err != nil {
		return nil, fmt.Errorf("render light stylesheet: %w", err)
	}
	if h.darkCSS, err = h.renderCSS(darkStyle); err != nil {
		return nil, fmt.Errorf("render dark stylesheet: %w", err)
	}
	return h, nil
}

// Code applies syntax highlighting to code based on language.
// returns HTML-safe highlighted code or plain escaped text if language is unknown
// or highlighting fails.
func (h *Highlighter) Code(code, lang string) template.HTML {
	if lang == "" || lang == "text" {
		return template.HTML("<pre>" + html.EscapeString(code) + "</pre>") //nolint:gosec // escaped
	}

	lexer := lexers.Get(strings.ToLower(lang))
	if lexer == nil {
		return template.HTML("<pre>" + html.EscapeString(code) + "</pre>") //nolint:gosec // escaped
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return template.HTML("<pre>" + html.EscapeString(code) + "</pre>") //nolint:gosec // escaped
	}

	var buf bytes.Buffer
	style := styles.Get(lightStyle)
	if style == nil {
		style = styles.Fallback
	}

	if err := h.formatter.Format(&buf, style, iterator); err != nil {
		return template.HTML("<pre>" + html.EscapeString(code) + "</pre>") //nolint:gosec // escaped
	}

	return template.HTML(buf.String()) //nolint:gosec // chroma output is safe
}

// Stylesheet returns the generated CSS for one half of the highlight pair.
func (h *Highlighter) Stylesheet(th enum.Theme) []byte {
	if th == enum.ThemeDark {
		return h.darkCSS
	}
	return h.lightCSS
}

// renderCSS generates the class-based CSS for a chroma style.
func (h *Highlighter) renderCSS(name string) ([]byte, error) {
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("write css for style %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// handleHighlightCSS serves the highlight stylesheet pair. The two resources
// are what the page's highlight-light/highlight-dark links point at.
func (h *Handler) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	var css []byte
	switch r.PathValue("file") {
	case "light.css":
		css = h.highlighter.Stylesheet(enum.ThemeLight)
	case "dark.css":
		css = h.highlighter.Stylesheet(enum.ThemeDark)
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(css)
}
