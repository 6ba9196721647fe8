// Package store provides theme preference storage implementations.
package store

import (
	"context"
	"errors"

	"github.com/longvox/themer/app/enum"
)

// ErrNotFound is returned when a visitor has no stored preference.
var ErrNotFound = errors.New("preference not found")

// Interface defines the preference storage operations.
type Interface interface {
	Preference(ctx context.Context, visitor string) (enum.Theme, error)
	SetPreference(ctx context.Context, visitor string, theme enum.Theme) error
}
