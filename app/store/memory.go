package store

import (
	"context"
	"sync"

	"github.com/longvox/themer/app/enum"
)

// Memory is a map-backed preference store. Used for the no-database mode and
// in tests; preferences do not survive a restart.
type Memory struct {
	mu    sync.RWMutex
	prefs map[string]enum.Theme
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{prefs: make(map[string]enum.Theme)}
}

// Preference retrieves the stored theme for the given visitor.
// Returns ErrNotFound if the visitor has no stored preference.
func (m *Memory) Preference(_ context.Context, visitor string) (enum.Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	th, ok := m.prefs[visitor]
	if !ok {
		return enum.ThemeLight, ErrNotFound
	}
	return th, nil
}

// SetPreference stores the theme for the given visitor.
func (m *Memory) SetPreference(_ context.Context, visitor string, theme enum.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[visitor] = theme
	return nil
}

// DeletePreference removes the stored preference for the given visitor.
// Returns ErrNotFound if the visitor has no stored preference.
func (m *Memory) DeletePreference(_ context.Context, visitor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prefs[visitor]; !ok {
		return ErrNotFound
	}
	delete(m.prefs, visitor)
	return nil
}

// Count returns the number of stored preferences.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.prefs), nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error { return nil }
