package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_HandleWidgetReady(t *testing.T) {
	t.Run("registers frame for known visitor", func(t *testing.T) {
		h, m, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
		visitor := withVisitor(req)
		rec := httptest.NewRecorder()
		h.handleWidgetReady(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		_, ok := m.Frames().Locator(visitor).Find()
		assert.True(t, ok)
	})

	t.Run("rejects request without visitor cookie", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
		rec := httptest.NewRecorder()
		h.handleWidgetReady(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_HandleWidgetMessage(t *testing.T) {
	t.Run("no frame registered", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
		withVisitor(req)
		rec := httptest.NewRecorder()
		h.handleWidgetMessage(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("no visitor cookie", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
		rec := httptest.NewRecorder()
		h.handleWidgetMessage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_WidgetDeliveryFlow(t *testing.T) {
	// toggle before the widget mounts, then mount: the pending notification
	// must land in the mailbox and come out of the message endpoint once
	h, _, _ := newTestHandler(t)

	toggleReq := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
	visitor := withVisitor(toggleReq)
	h.handleThemeToggle(httptest.NewRecorder(), toggleReq)

	readyReq := httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
	readyReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	h.handleWidgetReady(httptest.NewRecorder(), readyReq)

	var envelope widgetEnvelope
	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
		req.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
		rec := httptest.NewRecorder()
		h.handleWidgetMessage(rec, req)
		if rec.Code != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		return true
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "https://giscus.app", envelope.Origin)
	assert.Equal(t, "dark_dimmed", envelope.Message.Giscus.SetConfig.Theme)

	// delivered exactly once, the next poll comes up empty
	req := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	rec := httptest.NewRecorder()
	h.handleWidgetMessage(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_HandleWidgetReady_KeepsDeliveredMessage(t *testing.T) {
	// toggle, deliver into the mailbox, then report ready again as the bridge
	// does after the page reload: the pending message must survive the second
	// registration instead of vanishing with a fresh mailbox
	h, _, _ := newTestHandler(t)

	readyReq := httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
	visitor := withVisitor(readyReq)
	h.handleWidgetReady(httptest.NewRecorder(), readyReq)

	toggleReq := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
	toggleReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	h.handleThemeToggle(httptest.NewRecorder(), toggleReq) // frame mounted, delivery is immediate

	// page reload, the bridge reports readiness again
	readyReq = httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
	readyReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	h.handleWidgetReady(httptest.NewRecorder(), readyReq)

	msgReq := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
	msgReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	rec := httptest.NewRecorder()
	h.handleWidgetMessage(rec, msgReq)

	require.Equal(t, http.StatusOK, rec.Code, "message delivered before the reload is still there")
	var envelope widgetEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "dark_dimmed", envelope.Message.Giscus.SetConfig.Theme)
}

func TestWidgetEnvelope_WireShape(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/web/theme/dark", http.NoBody)
	req.SetPathValue("theme", "dark")
	visitor := withVisitor(req)

	readyReq := httptest.NewRequest(http.MethodPost, "/web/widget/ready", http.NoBody)
	readyReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	h.handleWidgetReady(httptest.NewRecorder(), readyReq)

	h.handleThemeSet(httptest.NewRecorder(), req)

	msgReq := httptest.NewRequest(http.MethodGet, "/web/widget/message", http.NoBody)
	msgReq.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitor})
	rec := httptest.NewRecorder()
	h.handleWidgetMessage(rec, msgReq)

	require.Equal(t, http.StatusOK, rec.Code)
	// the message field must carry the exact giscus wire shape
	assert.JSONEq(t,
		`{"origin":"https://giscus.app","message":{"giscus":{"setConfig":{"theme":"dark_dimmed"}}}}`,
		rec.Body.String())
}
