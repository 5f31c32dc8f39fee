package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/style"
)

// compactBelow is the width under which only keys are shown.
const compactBelow = 40

// HelpBar renders the key hints under a screen. Hints that do not fit on
// one line wrap onto the next.
type HelpBar struct {
	bindings []key.Binding
	width    int

	keyStyle  lipgloss.Style
	descStyle lipgloss.Style
	frame     lipgloss.Style
}

// NewHelpBar creates an empty help bar
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()

	return &HelpBar{
		width:     80,
		keyStyle:  lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		descStyle: lipgloss.NewStyle().Foreground(palette.TextMuted),
		frame:     lipgloss.NewStyle().Padding(0, 1).Margin(1, 0, 0, 0),
	}
}

// SetKeyBindings sets the bindings to describe
func (h *HelpBar) SetKeyBindings(bindings []key.Binding) *HelpBar {
	h.bindings = bindings
	return h
}

// SetWidth sets the width available to the bar
func (h *HelpBar) SetWidth(width int) *HelpBar {
	h.width = width
	return h
}

// View renders the enabled bindings
func (h *HelpBar) View() string {
	hints := h.hints(h.width < compactBelow)
	if len(hints) == 0 {
		return ""
	}

	sep := h.descStyle.Render(" • ")
	lines := wrapHints(hints, sep, h.width-4)
	return h.frame.Width(h.width).Render(strings.Join(lines, "\n"))
}

func (h *HelpBar) hints(keysOnly bool) []string {
	hints := make([]string, 0, len(h.bindings))
	for _, b := range h.bindings {
		if !b.Enabled() || len(b.Keys()) == 0 {
			continue
		}

		help := b.Help()
		switch {
		case keysOnly:
			hints = append(hints, h.keyStyle.Render(b.Keys()[0]))
		case help.Desc != "":
			hints = append(hints, h.keyStyle.Render(help.Key)+" "+h.descStyle.Render(help.Desc))
		}
	}
	return hints
}

// wrapHints joins hints with sep, starting a new line whenever the next hint
// would overflow maxWidth.
func wrapHints(hints []string, sep string, maxWidth int) []string {
	var (
		lines   []string
		line    []string
		lineLen int
	)
	sepLen := lipgloss.Width(sep)

	for _, hint := range hints {
		hintLen := lipgloss.Width(hint)
		if len(line) > 0 && lineLen+sepLen+hintLen > maxWidth {
			lines = append(lines, strings.Join(line, sep))
			line, lineLen = nil, 0
		}
		if len(line) > 0 {
			lineLen += sepLen
		}
		line = append(line, hint)
		lineLen += hintLen
	}

	if len(line) > 0 {
		lines = append(lines, strings.Join(line, sep))
	}
	return lines
}
