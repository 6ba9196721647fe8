// Package enum provides enumerated types shared between packages.
package enum

import "fmt"

// Theme represents the visitor's visual mode preference.
type Theme int

// Theme values. Order matters: ThemeLight is the zero value and the
// application-wide default for visitors with no stored preference.
const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns the lowercase name of the theme.
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme converts a string to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("invalid theme %q", s)
}

// Toggle returns the opposite theme (dark↔light).
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
