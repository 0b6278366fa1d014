package web

import (
	"fmt"
	"strings"

	"portfolio-terminal/internal/theme"
)

// stylesheet renders both palettes as CSS custom properties. Light values
// live on :root and the dark class on <html> overrides them.
func stylesheet() string {
	var b strings.Builder
	for _, mode := range theme.Modes() {
		bundle, err := theme.Palette(mode)
		if err != nil {
			continue
		}
		selector := ":root"
		if mode.IsDark() {
			selector = ":root.dark"
		}
		fmt.Fprintf(&b, "%s {\n", selector)
		for _, v := range paletteVars(bundle) {
			fmt.Fprintf(&b, "  --%s: %s;\n", v[0], v[1])
		}
		b.WriteString("}\n")
	}
	b.WriteString(baseCSS)
	return b.String()
}

func paletteVars(b theme.Bundle) [][2]string {
	return [][2]string{
		{"page-fg", b.Page.Foreground},
		{"page-bg", b.Page.Background},
		{"heading-fg", b.Heading.Foreground},
		{"section-fg", b.Section.Foreground},
		{"section-bg", b.Section.Background},
		{"body-fg", b.Body.Foreground},
		{"badge-fg", b.Badge.Foreground},
		{"badge-bg", b.Badge.Background},
		{"toggle-fg", b.Toggle.Foreground},
		{"toggle-bg", b.Toggle.Background},
		{"footer-fg", b.Footer.Foreground},
		{"muted", b.Roles.Muted},
		{"border", b.Roles.Border},
		{"link", b.Roles.Link},
	}
}

const baseCSS = `
body { margin: 0; font-family: system-ui, sans-serif; color: var(--page-fg); background: var(--page-bg); }
main { max-width: 48rem; margin: 0 auto; padding: 2rem 1rem; }
header { display: flex; align-items: center; gap: 1rem; }
header h1 { margin: 0; color: var(--heading-fg); }
header p { margin: 0; color: var(--muted); }
header form { margin-left: auto; }
.avatar { width: 4rem; height: 4rem; border-radius: 50%; }
.toggle { border: 1px solid var(--border); border-radius: 999px; padding: 0.4rem 0.7rem; color: var(--toggle-fg); background: var(--toggle-bg); cursor: pointer; }
details { margin: 1.5rem 0; }
summary { cursor: pointer; padding: 0.3rem 0.6rem; font-weight: bold; color: var(--section-fg); background: var(--section-bg); }
section, article { color: var(--body-fg); }
article h3 { margin-bottom: 0.2rem; }
.period { color: var(--muted); font-size: 0.9em; }
.badges { display: flex; flex-wrap: wrap; gap: 0.5rem; padding: 0; list-style: none; }
.badges li { padding: 0.2rem 0.6rem; border-radius: 0.4rem; color: var(--badge-fg); background: var(--badge-bg); }
a { color: var(--link); }
.contacts { display: flex; gap: 1rem; padding: 0; list-style: none; }
footer { margin-top: 2rem; color: var(--footer-fg); font-size: 0.9em; }
`
