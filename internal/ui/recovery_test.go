package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockModel is a test UI model
type mockModel struct {
	panicOnInit   bool
	panicOnUpdate bool
	panicOnView   bool
	updates       int
}

func (m mockModel) Init() tea.Cmd {
	if m.panicOnInit {
		panic("init panic test")
	}
	return nil
}

func (m mockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.panicOnUpdate {
		panic("update panic test")
	}
	m.updates++
	return m, func() tea.Msg { return nil }
}

func (m mockModel) View() string {
	if m.panicOnView {
		panic("view panic test")
	}
	return "Test UI"
}

func TestSafeUIWrapperKeepsUpdatedModel(t *testing.T) {
	wrapper := NewSafeUIWrapper(mockModel{}, zap.NewNop())

	assert.Nil(t, wrapper.Init())

	model, cmd := wrapper.Update(nil)
	assert.Same(t, wrapper, model)
	assert.NotNil(t, cmd)

	_, _ = wrapper.Update(nil)
	assert.Equal(t, 2, wrapper.model.(mockModel).updates)
	assert.Equal(t, "Test UI", wrapper.View())
}

func TestSafeUIWrapperRecovers(t *testing.T) {
	wrapper := NewSafeUIWrapper(mockModel{panicOnInit: true, panicOnUpdate: true, panicOnView: true}, zap.NewNop())

	assert.NotPanics(t, func() {
		assert.Nil(t, wrapper.Init())
	})

	assert.NotPanics(t, func() {
		model, cmd := wrapper.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Same(t, wrapper, model)
		assert.Nil(t, cmd)
	})

	assert.Equal(t, "The form failed to render. Press Ctrl+C to exit.", wrapper.View())
}
