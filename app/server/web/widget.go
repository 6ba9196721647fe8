package web

import (
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/longvox/themer/app/theme"
)

// widgetEnvelope wraps an outbound widget message with the origin the page
// bridge must target with postMessage.
type widgetEnvelope struct {
	Origin  string              `json:"origin"`
	Message theme.WidgetMessage `json:"message"`
}

// handleWidgetReady registers the widget frame for the visitor. Called by the
// page bridge once the comments iframe finished its asynchronous mount; a
// pending notification retry picks the frame up from here.
func (h *Handler) handleWidgetReady(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitorFromRequest(r)
	if !ok {
		http.Error(w, "unknown visitor", http.StatusBadRequest)
		return
	}

	// keep an existing mailbox: a notification delivered before the page
	// reloaded may still be waiting in it
	h.sessions.Frames().RegisterIfAbsent(visitor, theme.NewMailbox())
	log.Printf("[DEBUG] widget frame registered for visitor %s", visitor)
	w.WriteHeader(http.StatusNoContent)
}

// handleWidgetMessage returns the pending widget message for the visitor, or
// 204 when there is nothing to deliver. The page bridge forwards the message
// to the iframe verbatim, restricted to the returned origin.
func (h *Handler) handleWidgetMessage(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitorFromRequest(r)
	if !ok {
		http.Error(w, "unknown visitor", http.StatusBadRequest)
		return
	}

	frame, ok := h.sessions.Frames().Locator(visitor).Find()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	mailbox, ok := frame.(*theme.Mailbox)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg, ok := mailbox.Take()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rest.RenderJSON(w, widgetEnvelope{Origin: h.widgetOrigin, Message: msg})
}
