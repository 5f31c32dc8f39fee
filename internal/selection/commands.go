package selection

import (
	"strings"

	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
)

// Command is an instruction emitted by the Synchronizer and applied by the Controller.
type Command interface {
	isCommand()
}

// SelectChain selects the source chain.
type SelectChain struct {
	Chain domain.ChainKey
}

// SelectToken selects the source token. A nil Address clears the selection.
type SelectToken struct {
	Address *string
}

// SetDepositAmount replaces the deposit amount. Clamped marks amounts
// lowered to the available balance.
type SetDepositAmount struct {
	Amount  decimal.NullDecimal
	Clamped bool
}

// SetStakeAmount replaces the stake amount.
type SetStakeAmount struct {
	Amount decimal.NullDecimal
}

func (SelectChain) isCommand()      {}
func (SelectToken) isCommand()      {}
func (SetDepositAmount) isCommand() {}
func (SetStakeAmount) isCommand()   {}

// ParseAmount parses typed text into a decimal. Text that is not a number
// yields an invalid NullDecimal instead of an error.
func ParseAmount(text string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
