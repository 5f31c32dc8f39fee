package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	name   string
	inits  int
	msgs   []tea.Msg
	width  int
	height int
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	f.msgs = append(f.msgs, msg)
	return f, nil
}

func (f *fakeScreen) View() string { return f.name }

func (f *fakeScreen) SetSize(width, height int) {
	f.width = width
	f.height = height
}

func newTestRouter() (*Router, *fakeScreen) {
	root := &fakeScreen{name: "form"}
	r := New(root, func(route ui.Route) Screen {
		if route == ui.RouteHelp {
			return &fakeScreen{name: "help"}
		}
		return nil
	})
	return r, root
}

func TestRouterNavigatesToHelpAndBack(t *testing.T) {
	r, root := newTestRouter()
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, root.width)

	r.Update(ui.RouterMsg{To: ui.RouteHelp})
	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "help", r.View())
	assert.Equal(t, 100, r.Current().(*fakeScreen).width, "pushed screens get the current size")

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "form", r.View())
	assert.Empty(t, root.msgs, "esc on a nested screen is consumed by the router")
}

func TestRouterEscOnRootReachesScreen(t *testing.T) {
	r, root := newTestRouter()
	r.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 1, r.Depth())
	require.Len(t, root.msgs, 1)
	assert.False(t, r.CanGoBack())
}

func TestRouterRootRouteClearsStack(t *testing.T) {
	r, root := newTestRouter()
	r.Update(ui.RouterMsg{To: ui.RouteHelp})
	r.Update(ui.RouterMsg{To: ui.RouteHelp})
	require.Equal(t, 3, r.Depth())

	r.Update(ui.RouterMsg{To: ui.RouteStakeForm})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, root, r.Current())
}

func TestRouterUnknownRoute(t *testing.T) {
	r, _ := newTestRouter()
	r.Update(ui.RouterMsg{To: ui.Route(99)})
	assert.Equal(t, 1, r.Depth())
}

func TestRouterNavigateCmd(t *testing.T) {
	r, _ := newTestRouter()
	assert.Equal(t, ui.RouterMsg{To: ui.RouteHelp}, r.Navigate(ui.RouteHelp)())
}

func TestRouterBackDoesNotReinitRoot(t *testing.T) {
	r, root := newTestRouter()
	r.Init()
	require.Equal(t, 1, root.inits)

	for i := 0; i < 3; i++ {
		r.Update(ui.RouterMsg{To: ui.RouteHelp})
		r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	}
	r.Update(ui.RouterMsg{To: ui.RouteHelp})
	r.Update(ui.RouterMsg{To: ui.RouteStakeForm})

	assert.Equal(t, 1, root.inits)
}

func TestRouterSendsBackgroundMessagesToRoot(t *testing.T) {
	r, root := newTestRouter()
	r.Update(ui.RouterMsg{To: ui.RouteHelp})
	help := r.Current().(*fakeScreen)

	loaded := ui.BalancesLoadedMsg{}
	tick := ui.RefreshTickMsg{}
	r.Update(loaded)
	r.Update(tick)

	assert.Equal(t, []tea.Msg{loaded, tick}, root.msgs)
	assert.Empty(t, help.msgs)
	assert.Equal(t, 2, r.Depth())
}
