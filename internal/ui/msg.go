package ui

import (
	"time"

	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg represents success conditions
type SuccessMsg struct {
	Message string
	Title   string
}

// BalancesLoadedMsg carries the result of a balance reload. Balances is nil
// when no snapshot is available.
type BalancesLoadedMsg struct {
	Balances domain.BalanceTable
	Err      error
}

// RefreshTickMsg triggers a periodic balance reload
type RefreshTickMsg struct {
	At time.Time
}

// Route represents different screens in the application
type Route int

const (
	RouteStakeForm Route = iota
	RouteHelp
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteStakeForm:
		return "stake_form"
	case RouteHelp:
		return "help"
	default:
		return "unknown"
	}
}
