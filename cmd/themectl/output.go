package main

import (
	"github.com/fatih/color"

	"portfolio-terminal/internal/theme"
)

var (
	darkLabel  = color.New(color.FgHiWhite, color.BgBlack, color.Bold).SprintFunc()
	lightLabel = color.New(color.FgBlack, color.BgHiWhite, color.Bold).SprintFunc()
	warn       = color.New(color.FgYellow).SprintFunc()
	faint      = color.New(color.Faint).SprintFunc()
)

func modeLabel(m theme.Mode) string {
	if m.IsDark() {
		return darkLabel(theme.Icon(theme.Light) + " " + m.String())
	}
	return lightLabel(theme.Icon(theme.Dark) + " " + m.String())
}
