package store

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longvox/themer/app/enum"
)

// countingStore wraps Memory and counts reads hitting the backing store.
type countingStore struct {
	*Memory
	reads atomic.Int32
}

func (c *countingStore) Preference(ctx context.Context, visitor string) (enum.Theme, error) {
	c.reads.Add(1)
	return c.Memory.Preference(ctx, visitor)
}

func TestCached_LoadThrough(t *testing.T) {
	backing := &countingStore{Memory: NewMemory()}
	ctx := context.Background()
	require.NoError(t, backing.SetPreference(ctx, "v1", enum.ThemeDark))

	c, err := NewCached(backing, 100)
	require.NoError(t, err)
	defer c.Close()

	for range 3 {
		th, err := c.Preference(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, enum.ThemeDark, th)
	}

	assert.Equal(t, int32(1), backing.reads.Load(), "backing store hit once, then cache")
}

func TestCached_SetInvalidates(t *testing.T) {
	backing := &countingStore{Memory: NewMemory()}
	ctx := context.Background()

	c, err := NewCached(backing, 100)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetPreference(ctx, "v1", enum.ThemeDark))
	th, err := c.Preference(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, enum.ThemeDark, th)

	require.NoError(t, c.SetPreference(ctx, "v1", enum.ThemeLight))
	th, err = c.Preference(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, enum.ThemeLight, th, "stale cache entry invalidated on write")
}

func TestCached_NotFoundPassesThrough(t *testing.T) {
	c, err := NewCached(NewMemory(), 100)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Preference(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCached_DeleteInvalidates(t *testing.T) {
	backing := NewMemory()
	ctx := context.Background()

	c, err := NewCached(backing, 100)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetPreference(ctx, "v1", enum.ThemeDark))
	th, err := c.Preference(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, enum.ThemeDark, th)

	require.NoError(t, c.DeletePreference(ctx, "v1"))
	_, err = c.Preference(ctx, "v1")
	require.ErrorIs(t, err, ErrNotFound, "cached entry gone with the stored one")

	require.ErrorIs(t, c.DeletePreference(ctx, "v1"), ErrNotFound)
}

func TestCached_Count(t *testing.T) {
	backing := NewMemory()
	ctx := context.Background()
	require.NoError(t, backing.SetPreference(ctx, "v1", enum.ThemeDark))
	require.NoError(t, backing.SetPreference(ctx, "v2", enum.ThemeLight))

	c, err := NewCached(backing, 100)
	require.NoError(t, err)
	defer c.Close()

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCached_Stats(t *testing.T) {
	backing := NewMemory()
	ctx := context.Background()
	require.NoError(t, backing.SetPreference(ctx, "v1", enum.ThemeDark))

	c, err := NewCached(backing, 100)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Preference(ctx, "v1")
	require.NoError(t, err)
	_, err = c.Preference(ctx, "v1")
	require.NoError(t, err)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Misses)
	assert.EqualValues(t, 1, stats.Hits)
}
