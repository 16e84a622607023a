// Package color names the terminal colors vidpool output is drawn with.
package color

import "github.com/charmbracelet/lipgloss"

// ANSI colors follow the terminal theme.
const (
	Red      = lipgloss.Color("1")
	Green    = lipgloss.Color("2")
	Yellow   = lipgloss.Color("3")
	Blue     = lipgloss.Color("4")
	Purple   = lipgloss.Color("5")
	Cyan     = lipgloss.Color("6")
	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
)

// Fixed colors of result listings. They do not follow the theme.
const (
	Accent    = lipgloss.Color("#cba6f7")
	Secondary = lipgloss.Color("#b4befe")
	Text      = lipgloss.Color("#cdd6f4")
	Muted     = lipgloss.Color("#6c7086")
	Ink       = lipgloss.Color("#1e1e2e")
)
