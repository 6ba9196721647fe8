package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longvox/themer/app/enum"
)

func TestMemory_SetAndGetPreference(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Preference(ctx, "v1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SetPreference(ctx, "v1", enum.ThemeDark))

	th, err := m.Preference(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, enum.ThemeDark, th)

	require.NoError(t, m.SetPreference(ctx, "v1", enum.ThemeLight))
	th, err = m.Preference(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, enum.ThemeLight, th)
}

func TestMemory_DeletePreference(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.ErrorIs(t, m.DeletePreference(ctx, "v1"), ErrNotFound)

	require.NoError(t, m.SetPreference(ctx, "v1", enum.ThemeDark))
	require.NoError(t, m.DeletePreference(ctx, "v1"))

	_, err := m.Preference(ctx, "v1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Count(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	count, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, m.SetPreference(ctx, "v1", enum.ThemeDark))
	require.NoError(t, m.SetPreference(ctx, "v2", enum.ThemeDark))

	count, err = m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, m.Close())
}
