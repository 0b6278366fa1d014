package theme

import (
	"errors"
	"fmt"
)

// Mode is one of the two mutually exclusive palettes.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode is applied when nothing valid has been persisted yet.
const DefaultMode = Dark

// ErrInvalidMode is returned by ParseMode for anything but the exact literals.
var ErrInvalidMode = errors.New("invalid theme mode")

// ParseMode accepts exactly "light" or "dark".
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case Light, Dark:
		return Mode(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether the style flag should be on.
func (m Mode) IsDark() bool { return m == Dark }

func (m Mode) String() string { return string(m) }

// Icon is the toggle affordance: a sun while dark ("switch to light"),
// a moon while light.
func Icon(m Mode) string {
	if m.IsDark() {
		return "☀"
	}
	return "☾"
}

// ToggleLabel describes what pressing the toggle will do.
func ToggleLabel(m Mode) string {
	return "switch to " + m.Opposite().String()
}
