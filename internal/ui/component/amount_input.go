package component

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/style"
)

// AmountInput is a labelled text field for a decimal amount. It does not
// validate: the owner reads Value after each key and decides what it means.
type AmountInput struct {
	id    string
	label string
	input textinput.Model
	width int
}

// NewAmountInput creates an amount field with the given placeholder.
func NewAmountInput(id, label, placeholder string) *AmountInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 78
	ti.Width = 26

	return &AmountInput{
		id:    id,
		label: label,
		input: ti,
		width: 30,
	}
}

// ID returns the input id
func (a *AmountInput) ID() string { return a.id }

// Value returns the current text
func (a *AmountInput) Value() string { return a.input.Value() }

// SetValue replaces the text, keeping the cursor when nothing changed.
func (a *AmountInput) SetValue(text string) *AmountInput {
	if a.input.Value() != text {
		a.input.SetValue(text)
	}
	return a
}

// SetWidth sets the rendered width
func (a *AmountInput) SetWidth(width int) *AmountInput {
	a.width = width
	if inner := width - 4; inner > 10 {
		a.input.Width = inner
	}
	return a
}

// Focus focuses the text field
func (a *AmountInput) Focus() tea.Cmd {
	return a.input.Focus()
}

// Blur removes focus
func (a *AmountInput) Blur() {
	a.input.Blur()
}

// Focused reports whether the input has focus
func (a *AmountInput) Focused() bool { return a.input.Focused() }

// Update forwards msg to the text field. The text changes before Update
// returns; the command only drives the cursor.
func (a *AmountInput) Update(msg tea.Msg) (*AmountInput, tea.Cmd) {
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the input
func (a *AmountInput) View() string {
	fieldStyle := style.FieldStyle
	if a.input.Focused() {
		fieldStyle = style.FocusedFieldStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.InputLabelStyle.Render(a.label),
		fieldStyle.Width(a.width).Render(a.input.View()))
}
