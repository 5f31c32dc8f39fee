package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	FormTextStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			Margin(0, 0, 1, 0)

	InputLabelStyle = lipgloss.NewStyle().
			Foreground(palette.TextSecondary)

	ContainerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Margin(0, 1)
)

// Field styles shared by pickers and amount inputs
var (
	FieldStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted)

	FocusedFieldStyle = FieldStyle.
				BorderForeground(palette.Primary)

	// GrayedFieldStyle renders a picker whose options are not available yet.
	GrayedFieldStyle = FieldStyle.
				Foreground(palette.TextMuted)

	OptionStyle = lipgloss.NewStyle().
			Foreground(palette.Text)

	OptionCursorStyle = lipgloss.NewStyle().
				Foreground(palette.Background).
				Background(palette.Primary)

	DetailStyle = lipgloss.NewStyle().
			Foreground(palette.TextSecondary)

	ArrowStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 2)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// AdaptiveJoinHorizontal joins blocks side by side when they fit width,
// otherwise stacks them.
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width > 0 && lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, blocks...)) > width {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AdaptiveWidth returns percentage of width, at least 20 columns.
func AdaptiveWidth(width, percentage int) int {
	w := width * percentage / 100
	if w < 20 {
		return 20
	}
	return w
}
