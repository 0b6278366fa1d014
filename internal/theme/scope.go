package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Scope is the global style root of a rendering surface. Applying the same
// flag twice must leave it unchanged.
type Scope interface {
	SetDark(dark bool)
}

// ScopeFunc adapts a function to Scope.
type ScopeFunc func(dark bool)

func (f ScopeFunc) SetDark(dark bool) { f(dark) }

// Styles are the lipgloss styles a terminal view renders with.
type Styles struct {
	Page         lipgloss.Style
	Heading      lipgloss.Style
	Tagline      lipgloss.Style
	Section      lipgloss.Style
	SectionFocus lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Link         lipgloss.Style
	Badge        lipgloss.Style
	Toggle       lipgloss.Style
	Footer       lipgloss.Style
}

// StyleRoot is the terminal style scope: it holds the dark flag for one
// session's renderer and the styles derived from it.
type StyleRoot struct {
	renderer *lipgloss.Renderer
	opts     ResolveOptions

	dark    bool
	applied bool
	bundle  Bundle
	styles  Styles
}

// NewStyleRoot creates a style root for renderer. Until SetDark is called it
// renders the DefaultMode palette.
func NewStyleRoot(renderer *lipgloss.Renderer, opts ResolveOptions) *StyleRoot {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	r := &StyleRoot{renderer: renderer, opts: opts}
	r.rebuild(DefaultMode.IsDark())
	return r
}

// SetDark switches the palette. Repeating the current flag is a no-op.
func (r *StyleRoot) SetDark(dark bool) {
	if r.applied && r.dark == dark {
		return
	}
	r.rebuild(dark)
	r.applied = true
}

func (r *StyleRoot) Dark() bool { return r.dark }

func (r *StyleRoot) Bundle() Bundle { return r.bundle }

func (r *StyleRoot) Styles() Styles { return r.styles }

func (r *StyleRoot) Renderer() *lipgloss.Renderer { return r.renderer }

func (r *StyleRoot) rebuild(dark bool) {
	mode := Light
	if dark {
		mode = Dark
	}
	bundle, err := Resolve(mode, r.opts)
	if err != nil {
		bundle = monochromeBundle(mode)
	}

	r.dark = dark
	r.bundle = bundle
	r.renderer.SetHasDarkBackground(dark)
	r.styles = buildStyles(r.renderer, bundle)
}

func buildStyles(re *lipgloss.Renderer, b Bundle) Styles {
	base := func(s Style) lipgloss.Style {
		return re.NewStyle().
			Foreground(lipgloss.Color(s.Foreground)).
			Bold(s.Bold)
	}
	return Styles{
		Page:    base(b.Page),
		Heading: base(b.Heading).MarginBottom(0),
		Tagline: base(b.Body).Italic(true),
		Section: base(b.Section).
			Background(lipgloss.Color(b.Section.Background)).
			Padding(0, 1),
		SectionFocus: base(b.Section).
			Background(lipgloss.Color(b.Badge.Background)).
			Foreground(lipgloss.Color(b.Badge.Foreground)).
			Padding(0, 1),
		Body:   base(b.Body),
		Muted:  re.NewStyle().Foreground(lipgloss.Color(b.Roles.Muted)),
		Link:   re.NewStyle().Foreground(lipgloss.Color(b.Roles.Link)).Underline(true),
		Badge:  base(b.Badge).Background(lipgloss.Color(b.Badge.Background)).Padding(0, 1),
		Toggle: base(b.Toggle).Background(lipgloss.Color(b.Toggle.Background)).Padding(0, 1),
		Footer: re.NewStyle().Foreground(lipgloss.Color(b.Footer.Foreground)),
	}
}
