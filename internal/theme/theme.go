package theme

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// SemanticRoles defines stable semantic color slots used across the UI.
//
// Components should generally depend on these semantic roles rather than
// mode-specific color literals.
type SemanticRoles struct {
	Primary string
	Accent  string
	Muted   string
	Surface string
	Border  string
	Link    string
}

// Style describes presentational attributes for a UI element.
type Style struct {
	Foreground string
	Background string
	Bold       bool
}

// StyleSet provides strongly-typed styles for the portfolio surfaces.
type StyleSet struct {
	Page    Style
	Heading Style
	Section Style
	Body    Style
	Badge   Style
	Toggle  Style
	Footer  Style
}

// Bundle contains all display styles needed for one mode.
type Bundle struct {
	StyleSet
	Roles SemanticRoles
}

// TermProfile describes terminal rendering capabilities derived from TERM.
type TermProfile struct {
	Colors    int
	TrueColor bool
	IsTTY     bool
}

// TermProfileDetector maps a TERM value to a terminal capability profile.
type TermProfileDetector func(term string) TermProfile

var (
	termProfileCache sync.Map
	knownProfiles    = map[string]TermProfile{
		"dumb":           {Colors: 0, TrueColor: false, IsTTY: false},
		"ansi":           {Colors: 8, TrueColor: false, IsTTY: true},
		"linux":          {Colors: 16, TrueColor: false, IsTTY: true},
		"xterm":          {Colors: 16, TrueColor: false, IsTTY: true},
		"xterm-256color": {Colors: 256, TrueColor: false, IsTTY: true},
		"screen":         {Colors: 8, TrueColor: false, IsTTY: true},
		"tmux":           {Colors: 256, TrueColor: false, IsTTY: true},
		"vt100":          {Colors: 8, TrueColor: false, IsTTY: true},
		"xterm-kitty":    {Colors: 1 << 24, TrueColor: true, IsTTY: true},
		"wezterm":        {Colors: 1 << 24, TrueColor: true, IsTTY: true},
	}
)

// Palettes mirror the web stylesheet: neutral greys with a blue link accent,
// slate tones for the toggle button.
var palettes = map[Mode]Bundle{
	Light: {
		StyleSet: StyleSet{
			Page:    Style{Foreground: "#000000", Background: "#FFFFFF"},
			Heading: Style{Foreground: "#525252", Background: "#FFFFFF", Bold: true},
			Section: Style{Foreground: "#525252", Background: "#F5F5F5", Bold: true},
			Body:    Style{Foreground: "#525252", Background: "#FFFFFF"},
			Badge:   Style{Foreground: "#F5F5F5", Background: "#404040"},
			Toggle:  Style{Foreground: "#F1F5F9", Background: "#1E293B", Bold: true},
			Footer:  Style{Foreground: "#A3A3A3", Background: "#FFFFFF"},
		},
		Roles: SemanticRoles{Primary: "#525252", Accent: "#404040", Muted: "#A3A3A3", Surface: "#F5F5F5", Border: "#94A3B8", Link: "#2563EB"},
	},
	Dark: {
		StyleSet: StyleSet{
			Page:    Style{Foreground: "#F5F5F5", Background: "#0A0A0A"},
			Heading: Style{Foreground: "#D4D4D4", Background: "#0A0A0A", Bold: true},
			Section: Style{Foreground: "#D4D4D4", Background: "#171717", Bold: true},
			Body:    Style{Foreground: "#D4D4D4", Background: "#0A0A0A"},
			Badge:   Style{Foreground: "#171717", Background: "#D4D4D4"},
			Toggle:  Style{Foreground: "#0F172A", Background: "#F8FAFC", Bold: true},
			Footer:  Style{Foreground: "#737373", Background: "#0A0A0A"},
		},
		Roles: SemanticRoles{Primary: "#D4D4D4", Accent: "#E5E5E5", Muted: "#737373", Surface: "#171717", Border: "#94A3B8", Link: "#60A5FA"},
	},
}

var modes = [...]Mode{Light, Dark}

// Modes lists every mode in a stable order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes[:])
	return out
}

// Palette returns the full-color bundle for mode.
func Palette(mode Mode) (Bundle, error) {
	base, ok := palettes[mode]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return cloneBundle(base), nil
}

// ResolveOptions controls how a bundle is selected once a TERM profile exists.
type ResolveOptions struct {
	Term       string
	ForceColor bool
	ForceMono  bool
}

// Resolve resolves a concrete style bundle for a mode and TERM value.
//
// Terminals without color support get a high-contrast monochrome bundle for
// the same mode unless color is explicitly forced.
func Resolve(mode Mode, opts ResolveOptions) (Bundle, error) {
	bundle, _, err := resolveWithProfile(mode, opts, detectTermProfile)
	return bundle, err
}

// ResolveWithDetector resolves a bundle using a caller-provided TERM detector.
func ResolveWithDetector(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, error) {
	if detector == nil {
		detector = detectTermProfile
	}
	bundle, _, err := resolveWithProfile(mode, opts, detector)
	return bundle, err
}

// DetectTermProfile maps TERM to a terminal capability profile.
func DetectTermProfile(term string) TermProfile {
	return detectTermProfile(term)
}

func resolveWithProfile(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, TermProfile, error) {
	base, ok := palettes[mode]
	if !ok {
		return Bundle{}, TermProfile{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	term := strings.TrimSpace(opts.Term)
	if term == "" {
		term = os.Getenv("TERM")
	}

	profile := detector(term)
	if shouldUseMonochrome(profile, opts) {
		return monochromeBundle(mode), profile, nil
	}

	return cloneBundle(base), profile, nil
}

func shouldUseMonochrome(profile TermProfile, opts ResolveOptions) bool {
	if opts.ForceMono {
		return true
	}
	if opts.ForceColor {
		return false
	}
	if !profile.IsTTY {
		return true
	}
	return !profile.TrueColor && profile.Colors < 16
}

func detectTermProfile(term string) TermProfile {
	norm := strings.ToLower(strings.TrimSpace(term))
	if cached, ok := termProfileCache.Load(norm); ok {
		return cached.(TermProfile)
	}

	profile := detectTermProfileUncached(norm)
	termProfileCache.Store(norm, profile)
	return profile
}

func detectTermProfileUncached(norm string) TermProfile {
	if norm == "" {
		return TermProfile{Colors: 0, TrueColor: false, IsTTY: false}
	}

	if p, ok := knownProfiles[norm]; ok {
		return p
	}

	profile := TermProfile{Colors: 16, TrueColor: false, IsTTY: true}
	if strings.Contains(norm, "truecolor") || strings.Contains(norm, "24bit") || strings.Contains(norm, "kitty") || strings.Contains(norm, "wezterm") {
		profile.TrueColor = true
		profile.Colors = 1 << 24
	}
	if strings.Contains(norm, "256") {
		profile.Colors = 256
	}
	if strings.Contains(norm, "dumb") {
		profile = TermProfile{Colors: 0, TrueColor: false, IsTTY: false}
	}
	if strings.Contains(norm, "screen") {
		profile.Colors = 8
	}

	return profile
}

// monochromeBundle keeps the light/dark polarity with pure greys.
func monochromeBundle(mode Mode) Bundle {
	fg, bg, soft := "#FFFFFF", "#000000", "#8F8F8F"
	if mode == Light {
		fg, bg = bg, fg
	}
	return Bundle{
		StyleSet: StyleSet{
			Page:    Style{Foreground: fg, Background: bg},
			Heading: Style{Foreground: fg, Background: bg, Bold: true},
			Section: Style{Foreground: fg, Background: bg, Bold: true},
			Body:    Style{Foreground: fg, Background: bg},
			Badge:   Style{Foreground: bg, Background: fg},
			Toggle:  Style{Foreground: bg, Background: fg, Bold: true},
			Footer:  Style{Foreground: soft, Background: bg},
		},
		Roles: SemanticRoles{Primary: fg, Accent: fg, Muted: soft, Surface: bg, Border: soft, Link: fg},
	}
}

func cloneBundle(in Bundle) Bundle {
	return in
}
