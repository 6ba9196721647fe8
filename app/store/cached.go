package store

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lcw/v2"

	"github.com/longvox/themer/app/enum"
)

// Cached wraps a preference store with a loading cache and satisfies the
// Interface itself. Cache is populated on reads via loader function,
// invalidated on writes.
type Cached struct {
	store  Interface
	admin  adminStore
	closer func() error
	cache  lcw.LoadingCache[enum.Theme]
}

// adminStore is the optional admin surface of a wrapped store.
type adminStore interface {
	DeletePreference(ctx context.Context, visitor string) error
	Count(ctx context.Context) (int, error)
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of entries in the cache.
func NewCached(store Interface, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[enum.Theme]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	c := &Cached{store: store, cache: cache}
	if admin, ok := store.(adminStore); ok {
		c.admin = admin
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		c.closer = closer.Close
	}
	return c, nil
}

// Preference retrieves the theme for a visitor, using cache with load-through.
func (c *Cached) Preference(ctx context.Context, visitor string) (enum.Theme, error) {
	th, err := c.cache.Get(visitor, func() (enum.Theme, error) {
		stored, loadErr := c.store.Preference(ctx, visitor)
		if loadErr != nil {
			return enum.ThemeLight, fmt.Errorf("load from store: %w", loadErr)
		}
		return stored, nil
	})
	if err != nil {
		return enum.ThemeLight, fmt.Errorf("cache get: %w", err)
	}
	return th, nil
}

// SetPreference stores the theme and invalidates the cache entry.
func (c *Cached) SetPreference(ctx context.Context, visitor string, theme enum.Theme) error {
	if err := c.store.SetPreference(ctx, visitor, theme); err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	c.cache.Invalidate(func(k string) bool { return k == visitor })
	return nil
}

// DeletePreference removes the stored preference and invalidates the cache
// entry. Returns ErrNotFound when the visitor has no stored preference or the
// wrapped store carries no admin surface.
func (c *Cached) DeletePreference(ctx context.Context, visitor string) error {
	if c.admin == nil {
		return ErrNotFound
	}
	if err := c.admin.DeletePreference(ctx, visitor); err != nil {
		return err
	}
	c.cache.Invalidate(func(k string) bool { return k == visitor })
	return nil
}

// Count returns the number of stored preferences, bypassing the cache.
func (c *Cached) Count(ctx context.Context) (int, error) {
	if c.admin == nil {
		return 0, fmt.Errorf("wrapped store does not support counting")
	}
	return c.admin.Count(ctx)
}

// Close closes the cache and the underlying store if it supports closing.
func (c *Cached) Close() error {
	_ = c.cache.Close()
	if c.closer != nil {
		if err := c.closer(); err != nil {
			return fmt.Errorf("store close: %w", err)
		}
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}
