package theme

import (
	"context"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
)

// ManagerConfig holds configuration for the session manager.
type ManagerConfig struct {
	SessionTTL      time.Duration // idle visitor session lifetime
	CleanupInterval time.Duration // how often to reap idle sessions
	RetryInterval   time.Duration // widget lookup retry interval for controllers
	RetryMax        time.Duration // widget lookup retry budget for controllers
}

// Manager owns one Controller per visitor session, created lazily on first
// request. Idle sessions are reaped so orphaned widget-lookup timers never
// outlive a visitor.
type Manager struct {
	store  PreferenceStore
	frames *Registry
	cfg    ManagerConfig

	mu       sync.Mutex
	sessions map[string]*session
}

// session holds the per-visitor controller with its rendered document state.
type session struct {
	ctrl     *Controller
	doc      *DocumentState
	lastSeen time.Time
}

// NewManager creates a Manager on top of a preference store.
func NewManager(st PreferenceStore, cfg ManagerConfig) *Manager {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	return &Manager{
		store:    st,
		frames:   NewRegistry(),
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

// Session returns the controller and document state for a visitor, creating
// both on first use and refreshing the idle timer.
func (m *Manager) Session(visitor string) (*Controller, *DocumentState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[visitor]
	if !ok {
		doc := NewDocumentState()
		ctrl := New(m.store, doc, m.frames.Locator(visitor), Config{
			Visitor:       visitor,
			RetryInterval: m.cfg.RetryInterval,
			RetryMax:      m.cfg.RetryMax,
		})
		s = &session{ctrl: ctrl, doc: doc}
		m.sessions[visitor] = s
		log.Printf("[DEBUG] created theme session for visitor %s", visitor)
	}
	s.lastSeen = time.Now()
	return s.ctrl, s.doc
}

// Frames returns the widget frame registry shared by all sessions.
func (m *Manager) Frames() *Registry {
	return m.frames
}

// ActiveSessions returns the number of live visitor sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run starts the idle-session reaper and blocks until the context is
// canceled, closing all sessions on the way out.
func (m *Manager) Run(ctx context.Context) {
	log.Printf("[INFO] starting theme session manager, ttl=%v, cleanup interval=%v",
		m.cfg.SessionTTL, m.cfg.CleanupInterval)

	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return
		case <-ticker.C:
			m.reap(time.Now().Add(-m.cfg.SessionTTL))
		}
	}
}

// Close shuts down all sessions, canceling any pending widget retries.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for visitor, s := range m.sessions {
		s.ctrl.Close()
		m.frames.Unregister(visitor)
		delete(m.sessions, visitor)
	}
}

// reap removes sessions idle since before the deadline.
func (m *Manager) reap(deadline time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for visitor, s := range m.sessions {
		if s.lastSeen.After(deadline) {
			continue
		}
		s.ctrl.Close()
		m.frames.Unregister(visitor)
		delete(m.sessions, visitor)
		log.Printf("[DEBUG] reaped idle theme session for visitor %s", visitor)
	}
}
