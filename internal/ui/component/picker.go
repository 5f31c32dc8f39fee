package component

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/style"
)

// PickedMsg is emitted when the user confirms an option of a Picker.
type PickedMsg struct {
	PickerID string
	Value    string
}

// PickerOption is a single entry of a Picker.
type PickerOption struct {
	Value  string
	Label  string
	Detail string // right-hand column, e.g. a balance
}

// Picker is a single-select list. While focused it shows every option with a
// cursor; blurred it collapses to the selected option.
type Picker struct {
	id          string
	label       string
	placeholder string
	options     []PickerOption
	selected    string
	hasSelected bool
	cursor      int
	focused     bool
	grayed      bool
	width       int
}

// NewPicker creates a picker. id is echoed back in PickedMsg.
func NewPicker(id, label, placeholder string) *Picker {
	return &Picker{
		id:          id,
		label:       label,
		placeholder: placeholder,
		width:       30,
	}
}

// ID returns the picker id
func (p *Picker) ID() string { return p.id }

// SetOptions replaces the option list and keeps the cursor on the selection.
func (p *Picker) SetOptions(options []PickerOption) *Picker {
	p.options = options
	p.syncCursor()
	return p
}

// Options returns the current options
func (p *Picker) Options() []PickerOption { return p.options }

// SetSelected marks value as selected. A nil value clears the selection.
func (p *Picker) SetSelected(value *string) *Picker {
	if value == nil {
		p.selected, p.hasSelected = "", false
	} else {
		p.selected, p.hasSelected = *value, true
	}
	p.syncCursor()
	return p
}

// Selected returns the selected value
func (p *Picker) Selected() (string, bool) {
	return p.selected, p.hasSelected
}

// SetGrayed toggles the muted style
func (p *Picker) SetGrayed(grayed bool) *Picker {
	p.grayed = grayed
	return p
}

// SetWidth sets the rendered width
func (p *Picker) SetWidth(width int) *Picker {
	p.width = width
	return p
}

// Focus opens the option list
func (p *Picker) Focus() {
	p.focused = true
	p.syncCursor()
}

// Blur collapses the option list
func (p *Picker) Blur() {
	p.focused = false
}

// Focused reports whether the picker has focus
func (p *Picker) Focused() bool { return p.focused }

func (p *Picker) syncCursor() {
	p.cursor = 0
	if !p.hasSelected {
		return
	}
	for i, opt := range p.options {
		if opt.Value == p.selected {
			p.cursor = i
			return
		}
	}
}

// Update handles keys while focused
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused || len(p.options) == 0 {
		return p, nil
	}

	switch keyMsg.String() {
	case "up":
		p.cursor--
		if p.cursor < 0 {
			p.cursor = len(p.options) - 1
		}
	case "down":
		p.cursor = (p.cursor + 1) % len(p.options)
	case "enter":
		picked := PickedMsg{PickerID: p.id, Value: p.options[p.cursor].Value}
		return p, func() tea.Msg { return picked }
	}

	return p, nil
}

// View renders the picker
func (p *Picker) View() string {
	fieldStyle := style.FieldStyle
	switch {
	case p.focused:
		fieldStyle = style.FocusedFieldStyle
	case p.grayed:
		fieldStyle = style.GrayedFieldStyle
	}
	inner := p.width - 4
	if inner < 10 {
		inner = 10
	}

	var body string
	if p.focused && len(p.options) > 0 {
		lines := make([]string, 0, len(p.options))
		for i, opt := range p.options {
			line := p.renderOption(opt, inner)
			if i == p.cursor {
				line = style.OptionCursorStyle.Render(line)
			} else {
				line = style.OptionStyle.Render(line)
			}
			lines = append(lines, line)
		}
		body = strings.Join(lines, "\n")
	} else {
		body = p.placeholder
		for _, opt := range p.options {
			if p.hasSelected && opt.Value == p.selected {
				body = p.renderOption(opt, inner)
				break
			}
		}
		if p.focused {
			body += " ▼"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.InputLabelStyle.Render(p.label),
		fieldStyle.Width(p.width).Render(body))
}

func (p *Picker) renderOption(opt PickerOption, width int) string {
	if opt.Detail == "" {
		return opt.Label
	}
	detail := style.DetailStyle.Render(opt.Detail)
	gap := width - lipgloss.Width(opt.Label) - lipgloss.Width(detail)
	if gap < 1 {
		gap = 1
	}
	return opt.Label + strings.Repeat(" ", gap) + detail
}
