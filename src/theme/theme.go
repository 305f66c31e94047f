// Package theme holds the terminal color palette for the support chat.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the console renderer draws from.
type Palette struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// CurrentTheme is the active palette.
var CurrentTheme = Palette{
	Primary:   lipgloss.Color("#7c6af2"),
	Accent:    lipgloss.Color("#00b894"),
	Text:      lipgloss.Color("#ffffff"),
	TextMuted: lipgloss.Color("#808080"),
	Warning:   lipgloss.Color("#fdcb6e"),
	Error:     lipgloss.Color("#ff6b6b"),
}

// SetTheme replaces the active palette.
func SetTheme(p Palette) {
	CurrentTheme = p
}
