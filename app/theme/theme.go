// Package theme implements the controller keeping the persisted theme
// preference, the rendered document state and the embedded comments widget
// consistent with a single source of truth.
package theme

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/longvox/themer/app/enum"
	"github.com/longvox/themer/app/store"
)

//go:generate moq -out mocks/preferencestore.go -pkg mocks -skip-ensure -fmt goimports . PreferenceStore
//go:generate moq -out mocks/document.go -pkg mocks -skip-ensure -fmt goimports . Document
//go:generate moq -out mocks/framelocator.go -pkg mocks -skip-ensure -fmt goimports . FrameLocator
//go:generate moq -out mocks/frame.go -pkg mocks -skip-ensure -fmt goimports . Frame

// DefaultTheme applies when a visitor has no stored preference.
const DefaultTheme = enum.ThemeLight

// PreferenceStore defines the interface for theme preference persistence.
// Defined here (consumer side) to allow different store implementations.
type PreferenceStore interface {
	Preference(ctx context.Context, visitor string) (enum.Theme, error)
	SetPreference(ctx context.Context, visitor string, theme enum.Theme) error
}

// Config holds controller configuration.
type Config struct {
	Visitor       string        // visitor id the controller is scoped to
	RetryInterval time.Duration // widget frame lookup retry interval
	RetryMax      time.Duration // give up on widget frame lookup after this
}

// Controller owns a single visitor's theme. It applies the preference to the
// document state, flips the highlight stylesheet pair and notifies the
// embedded widget, keeping all surfaces in sync across toggles and reloads.
type Controller struct {
	store    PreferenceStore
	doc      Document
	notifier *Notifier
	visitor  string

	mu       sync.Mutex
	applied  *enum.Theme // last applied theme, nil before first Apply
	fallback *enum.Theme // session-scoped preference when the store is unavailable
}

// New creates a Controller for a single visitor session.
func New(st PreferenceStore, doc Document, locator FrameLocator, cfg Config) *Controller {
	return &Controller{
		store:    st,
		doc:      doc,
		notifier: NewNotifier(locator, cfg.RetryInterval, cfg.RetryMax),
		visitor:  cfg.Visitor,
	}
}

// Apply persists the theme and brings the document state and the widget in
// sync with it. Idempotent: re-applying the current theme re-asserts the
// document state but does not repeat the widget notification. A storage write
// failure degrades to a session-scoped fallback and is not surfaced.
func (c *Controller) Apply(ctx context.Context, th enum.Theme) {
	c.mu.Lock()
	if err := c.store.SetPreference(ctx, c.visitor, th); err != nil {
		log.Printf("[WARN] failed to persist theme for visitor %s: %v", c.visitor, err)
		t := th
		c.fallback = &t
	} else {
		c.fallback = nil
	}

	c.doc.SetDarkMarker(th == enum.ThemeDark)
	c.doc.SetStylesheetDisabled(StylesheetLight, th == enum.ThemeDark)
	c.doc.SetStylesheetDisabled(StylesheetDark, th == enum.ThemeLight)

	t := th
	c.applied = &t
	c.mu.Unlock()

	c.notifier.Notify(th)
}

// Restore resolves the stored preference, defaulting when never stored, and
// applies it. This is the page-load path. Returns the resolved theme.
func (c *Controller) Restore(ctx context.Context) enum.Theme {
	th := c.resolve(ctx)
	c.Apply(ctx, th)
	return th
}

// Toggle resolves the current preference, applies its complement and returns it.
func (c *Controller) Toggle(ctx context.Context) enum.Theme {
	th := c.resolve(ctx).Toggle()
	c.Apply(ctx, th)
	return th
}

// Current returns the last applied theme, resolving from the store when
// nothing was applied in this session yet.
func (c *Controller) Current(ctx context.Context) enum.Theme {
	c.mu.Lock()
	if c.applied != nil {
		th := *c.applied
		c.mu.Unlock()
		return th
	}
	c.mu.Unlock()
	return c.resolve(ctx)
}

// Close cancels any pending widget notification retry. Safe to call multiple
// times; called when the visitor session ends.
func (c *Controller) Close() {
	c.notifier.Close()
}

// resolve returns the effective preference: stored value, DefaultTheme when
// never stored, or the session fallback when the store is unreachable.
func (c *Controller) resolve(ctx context.Context) enum.Theme {
	th, err := c.store.Preference(ctx, c.visitor)
	switch {
	case err == nil:
		return th
	case errors.Is(err, store.ErrNotFound):
		return DefaultTheme
	default:
		log.Printf("[WARN] failed to read theme for visitor %s: %v", c.visitor, err)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.fallback != nil {
			return *c.fallback
		}
		if c.applied != nil {
			return *c.applied
		}
		return DefaultTheme
	}
}
