package style

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors shared by every screen.
type Palette struct {
	Primary   lipgloss.Color // focus, titles, key hints
	Secondary lipgloss.Color // the swap arrow between amounts
	Success   lipgloss.Color
	Error     lipgloss.Color

	Background    lipgloss.Color
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
}

// DefaultPalette returns the dark theme.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#00E5FF"),
		Secondary: lipgloss.Color("#FF1B6B"),
		Success:   lipgloss.Color("#2AFFAA"),
		Error:     lipgloss.Color("#FF5555"),

		Background:    lipgloss.Color("#1B1D23"),
		Text:          lipgloss.Color("#ECEFF4"),
		TextSecondary: lipgloss.Color("#B4BCC8"),
		TextMuted:     lipgloss.Color("#6C7280"),
	}
}
