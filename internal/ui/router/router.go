package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Resolver builds the screen for a route. It returns nil for unknown routes.
type Resolver func(route ui.Route) Screen

// Router keeps a stack of screens. The bottom screen is never popped.
type Router struct {
	stack   []Screen
	resolve Resolver
	width   int
	height  int
}

// New creates a router with root as the bottom of the stack
func New(root Screen, resolve Resolver) *Router {
	return &Router{
		stack:   []Screen{root},
		resolve: resolve,
	}
}

func (r *Router) top() Screen {
	return r.stack[len(r.stack)-1]
}

// Init initializes the root screen
func (r *Router) Init() tea.Cmd {
	return r.top().Init()
}

// Update handles navigation messages and forwards the rest to the top screen
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return r, r.open(msg.To)

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && r.CanGoBack() {
			return r, r.Back()
		}

	case ui.BalancesLoadedMsg, ui.RefreshTickMsg:
		// The root keeps the balance loop; it must see these even when
		// another screen is on top.
		root, cmd := r.stack[0].Update(msg)
		r.stack[0] = root
		return r, cmd
	}

	next, cmd := r.top().Update(msg)
	r.stack[len(r.stack)-1] = next
	return r, cmd
}

// View renders the top screen
func (r *Router) View() string {
	return r.top().View()
}

// SetSize records the terminal size and passes it to the top screen
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.top().SetSize(width, height)
}

// open resolves route and pushes its screen. The stake form is the root,
// so navigating to it unwinds the stack.
func (r *Router) open(route ui.Route) tea.Cmd {
	if route == ui.RouteStakeForm {
		return r.Clear()
	}
	if r.resolve == nil {
		return nil
	}

	screen := r.resolve(route)
	if screen == nil {
		return nil
	}
	return r.Push(screen)
}

// Push adds a screen on top of the stack
func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Back pops the top screen unless it is the root. The revealed screen was
// initialized when it was first shown and is not initialized again.
func (r *Router) Back() tea.Cmd {
	if !r.CanGoBack() {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.top().SetSize(r.width, r.height)
	return nil
}

// Clear pops everything above the root
func (r *Router) Clear() tea.Cmd {
	if !r.CanGoBack() {
		return nil
	}
	r.stack = r.stack[:1]
	r.top().SetSize(r.width, r.height)
	return nil
}

// Navigate returns a command requesting navigation to route
func (r *Router) Navigate(route ui.Route) tea.Cmd {
	return func() tea.Msg {
		return ui.RouterMsg{To: route}
	}
}

// Current returns the top screen
func (r *Router) Current() Screen {
	return r.top()
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack reports whether there is a screen below the top one
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}
