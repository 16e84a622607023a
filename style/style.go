// Package style wraps lipgloss into plain string-to-string renderers.
package style

import "github.com/charmbracelet/lipgloss"

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders with foreground c.
func Fg(c lipgloss.Color) func(string) string {
	st := New().Foreground(c)
	return func(s string) string { return st.Render(s) }
}

// Tag renders s as a padded label, e.g. the name of the endpoint that answered.
func Tag(fg, bg lipgloss.Color) func(string) string {
	st := New().Foreground(fg).Background(bg).Padding(0, 1)
	return func(s string) string {
		if s == "" {
			return ""
		}
		return st.Render(s)
	}
}

var (
	Faint = New().Faint(true).Render
	Bold  = New().Bold(true).Render
)
