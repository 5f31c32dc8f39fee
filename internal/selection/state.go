package selection

import (
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
)

// State is the authoritative selection of the stake form.
type State struct {
	Chain         *domain.ChainKey
	Token         *string
	DepositAmount decimal.NullDecimal
	StakeAmount   decimal.NullDecimal
}

// NewState returns an empty selection with both amounts at zero.
func NewState() State {
	return State{
		DepositAmount: decimal.NewNullDecimal(decimal.Zero),
		StakeAmount:   decimal.NewNullDecimal(decimal.Zero),
	}
}

// Props is the snapshot the Synchronizer reacts to.
type Props struct {
	Tokens   domain.TokenTable
	Balances domain.BalanceTable
	State    State
}

// SelectedToken resolves the selected token descriptor on the selected chain.
func (p Props) SelectedToken() (domain.Token, bool) {
	if p.State.Chain == nil || p.State.Token == nil {
		return domain.Token{}, false
	}
	return p.Tokens.FindByAddress(*p.State.Chain, *p.State.Token)
}
