package theme

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/longvox/themer/app/enum"
)

// widget lookup retry defaults, used when Config leaves them zero
const (
	defaultRetryInterval = 250 * time.Millisecond
	defaultRetryMax      = 15 * time.Second
)

// widgetThemes maps our two-value vocabulary to the giscus theme names. The
// widget's vocabulary is richer than ours, this is a fixed table and not a
// pass-through.
var widgetThemes = map[enum.Theme]string{
	enum.ThemeLight: "light",
	enum.ThemeDark:  "dark_dimmed",
}

// WidgetTheme returns the giscus theme identifier for a theme.
func WidgetTheme(th enum.Theme) string {
	return widgetThemes[th]
}

// WidgetMessage is the payload posted to the giscus iframe,
// {"giscus":{"setConfig":{"theme":"..."}}} on the wire.
type WidgetMessage struct {
	Giscus WidgetConfig `json:"giscus"`
}

// WidgetConfig carries the setConfig command of a widget message.
type WidgetConfig struct {
	SetConfig WidgetSettings `json:"setConfig"`
}

// WidgetSettings holds the widget settings changed by a message.
type WidgetSettings struct {
	Theme string `json:"theme"`
}

// NewWidgetMessage builds a theme-change message for the widget.
func NewWidgetMessage(th enum.Theme) WidgetMessage {
	return WidgetMessage{Giscus: WidgetConfig{SetConfig: WidgetSettings{Theme: WidgetTheme(th)}}}
}

// Frame is a mounted widget frame capable of receiving messages.
type Frame interface {
	Post(msg WidgetMessage) error
}

// FrameLocator looks up the widget frame. The frame mounts asynchronously,
// outside of our control, and may never appear at all.
type FrameLocator interface {
	Find() (Frame, bool)
}

// LocatorFunc adapts a function to the FrameLocator interface.
type LocatorFunc func() (Frame, bool)

// Find calls the wrapped function.
func (f LocatorFunc) Find() (Frame, bool) { return f() }

// Notifier delivers theme changes to the widget frame, retrying the lookup
// until the frame mounts. Delivery happens at most once per theme value, the
// retry loop is bounded and cancellable.
type Notifier struct {
	locator  FrameLocator
	interval time.Duration
	maxWait  time.Duration

	mu       sync.Mutex
	notified *enum.Theme        // last theme delivered to the widget
	pending  context.CancelFunc // cancels the active retry loop
	done     chan struct{}      // closed when the active retry loop exits
}

// NewNotifier creates a Notifier. Zero interval or maxWait fall back to the
// package defaults (250ms, 15s).
func NewNotifier(locator FrameLocator, interval, maxWait time.Duration) *Notifier {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	if maxWait <= 0 {
		maxWait = defaultRetryMax
	}
	return &Notifier{locator: locator, interval: interval, maxWait: maxWait}
}

// Notify delivers the theme to the widget frame. A missing frame is not an
// error: the lookup is retried in the background until the frame appears or
// the retry budget runs out. Re-notifying the already delivered theme is a
// no-op; notifying a different theme cancels a pending retry for the old one.
func (n *Notifier) Notify(th enum.Theme) {
	n.mu.Lock()
	if n.notified != nil && *n.notified == th {
		n.mu.Unlock()
		return
	}

	// a retry for a previous theme is stale now, stop it first
	cancel, done := n.pending, n.done
	n.pending, n.done = nil, nil
	n.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if frame, ok := n.locator.Find(); ok {
		n.deliverLocked(frame, th)
		return
	}

	// frame not mounted yet, keep looking in the background
	ctx, retryCancel := context.WithTimeout(context.Background(), n.maxWait)
	doneCh := make(chan struct{})
	n.pending, n.done = retryCancel, doneCh
	go n.retry(ctx, th, doneCh)
}

// Notified reports the last theme delivered to the widget, false when nothing
// was delivered yet.
func (n *Notifier) Notified() (enum.Theme, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notified == nil {
		return DefaultTheme, false
	}
	return *n.notified, true
}

// Close cancels an in-flight frame lookup and waits for it to stop.
func (n *Notifier) Close() {
	n.mu.Lock()
	cancel, done := n.pending, n.done
	n.pending, n.done = nil, nil
	n.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// retry polls the locator on a fixed interval until the frame appears, the
// retry budget runs out or the notifier is closed.
func (n *Notifier) retry(ctx context.Context, th enum.Theme, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				log.Printf("[DEBUG] widget frame never appeared, dropped %s notification", th)
			}
			return
		case <-ticker.C:
			frame, ok := n.locator.Find()
			if !ok {
				continue
			}
			n.mu.Lock()
			if ctx.Err() == nil { // a newer Notify may have canceled us mid-tick
				n.deliverLocked(frame, th)
			}
			n.mu.Unlock()
			return
		}
	}
}

// deliverLocked posts the message and records delivery. Callers hold n.mu.
func (n *Notifier) deliverLocked(frame Frame, th enum.Theme) {
	if err := frame.Post(NewWidgetMessage(th)); err != nil {
		log.Printf("[WARN] failed to post %s theme to widget: %v", th, err)
		return
	}
	t := th
	n.notified = &t
}

// Registry tracks widget frames per visitor. Frames register when the embedded
// widget reports it finished mounting.
type Registry struct {
	mu     sync.RWMutex
	frames map[string]Frame
}

// NewRegistry creates an empty frame registry.
func NewRegistry() *Registry {
	return &Registry{frames: make(map[string]Frame)}
}

// Register adds or replaces the frame for a visitor.
func (r *Registry) Register(visitor string, f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames[visitor] = f
}

// RegisterIfAbsent adds the frame for a visitor unless one is already
// registered and returns the effective frame. A re-registered visitor keeps
// the existing frame so a message delivered before the page reloaded is not
// lost with it.
func (r *Registry) RegisterIfAbsent(visitor string, f Frame) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.frames[visitor]; ok {
		return existing
	}
	r.frames[visitor] = f
	return f
}

// Unregister removes the frame for a visitor.
func (r *Registry) Unregister(visitor string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.frames, visitor)
}

// Locator returns a FrameLocator scoped to a single visitor.
func (r *Registry) Locator(visitor string) FrameLocator {
	return LocatorFunc(func() (Frame, bool) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		f, ok := r.frames[visitor]
		return f, ok
	})
}

// Mailbox is a Frame keeping the most recent message for a polling client to
// forward to the real iframe via postMessage.
type Mailbox struct {
	mu  sync.Mutex
	msg *WidgetMessage
}

// NewMailbox creates an empty mailbox frame.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Post stores the message, replacing any undelivered one.
func (m *Mailbox) Post(msg WidgetMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msg = &msg
	return nil
}

// Take returns the pending message and clears it, false when the mailbox is
// empty.
func (m *Mailbox) Take() (WidgetMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.msg == nil {
		return WidgetMessage{}, false
	}
	msg := *m.msg
	m.msg = nil
	return msg, true
}
