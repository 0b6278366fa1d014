package theme

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStyleRootSetDarkIsIdempotent(t *testing.T) {
	root := NewStyleRoot(lipgloss.NewRenderer(&bytes.Buffer{}), ResolveOptions{Term: "wezterm"})

	root.SetDark(false)
	once := root.Bundle()
	root.SetDark(false)
	root.SetDark(false)

	assert.False(t, root.Dark())
	assert.Equal(t, once, root.Bundle())
	assert.False(t, root.Renderer().HasDarkBackground())
}

func TestStyleRootFollowsFlag(t *testing.T) {
	root := NewStyleRoot(lipgloss.NewRenderer(&bytes.Buffer{}), ResolveOptions{Term: "wezterm"})
	dark, _ := Palette(Dark)
	light, _ := Palette(Light)

	assert.Equal(t, dark, root.Bundle(), "default mode before any flag is applied")

	root.SetDark(false)
	assert.Equal(t, light, root.Bundle())

	root.SetDark(true)
	assert.Equal(t, dark, root.Bundle())
	assert.True(t, root.Renderer().HasDarkBackground())
}

func TestStyleRootMonochromeTerminal(t *testing.T) {
	root := NewStyleRoot(lipgloss.NewRenderer(&bytes.Buffer{}), ResolveOptions{Term: "dumb"})
	root.SetDark(false)
	assert.Equal(t, monochromeBundle(Light), root.Bundle())
}

func TestScopeFunc(t *testing.T) {
	var got []bool
	var scope Scope = ScopeFunc(func(dark bool) { got = append(got, dark) })
	scope.SetDark(true)
	scope.SetDark(false)
	assert.Equal(t, []bool{true, false}, got)
}
