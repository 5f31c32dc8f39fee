package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/component"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/router"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/style"
)

// HelpScreen lists every key binding of the stake form.
type HelpScreen struct {
	keyMap  ui.KeyMap
	helpBar *component.HelpBar
	width   int
	height  int
}

func NewHelpScreen() *HelpScreen {
	keyMap := ui.DefaultKeyMap()
	return &HelpScreen{
		keyMap:  keyMap,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteHelp)),
	}
}

func (h *HelpScreen) Init() tea.Cmd { return nil }

func (h *HelpScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return h, tea.Quit
	}
	return h, nil
}

func (h *HelpScreen) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.helpBar.SetWidth(width)
}

func (h *HelpScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Keys"))
	b.WriteString("\n")

	for _, group := range h.keyMap.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			b.WriteString(style.FormTextStyle.UnsetMargins().Width(14).Render(help.Key))
			b.WriteString(style.MutedStyle.Render(help.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.ContainerStyle.Render(b.String()),
		h.helpBar.View())
}
