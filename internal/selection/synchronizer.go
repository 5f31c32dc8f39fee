package selection

import (
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
)

// Policy tunes how token changes affect the deposit amount.
type Policy struct {
	// ClampConfirmedZero clamps the deposit to zero when the wallet has a
	// loaded balance entry of exactly zero. Missing entries never clamp.
	ClampConfirmedZero bool
}

// Synchronizer turns user edits of the stake form into selection commands.
// It keeps the raw text of both amount fields, which may not parse yet (e.g. "1.").
type Synchronizer struct {
	policy      Policy
	depositText string
	stakeText   string
}

// NewSynchronizer creates a synchronizer with the given clamp policy.
func NewSynchronizer(policy Policy) *Synchronizer {
	return &Synchronizer{policy: policy}
}

// DepositText returns the deposit field text exactly as typed.
func (s *Synchronizer) DepositText() string {
	return s.depositText
}

// StakeText returns the stake field text exactly as typed.
func (s *Synchronizer) StakeText() string {
	return s.stakeText
}

// ChangeChain selects a new source chain and carries the selected token over
// by symbol. When the symbol does not exist on the new chain the token is cleared.
func (s *Synchronizer) ChangeChain(p Props, chain domain.ChainKey) []Command {
	cmds := []Command{SelectChain{Chain: chain}}

	// first selection, nothing to carry over
	if p.State.Chain == nil {
		return cmds
	}

	current, ok := p.SelectedToken()
	if !ok {
		return append(cmds, SelectToken{})
	}

	next, ok := p.Tokens.FindBySymbol(chain, current.Symbol)
	if !ok {
		return append(cmds, SelectToken{})
	}
	return append(cmds, SelectToken{Address: domain.StringPtr(next.Address)})
}

// ChangeToken selects a token on the current chain and lowers the deposit to
// the wallet balance when the balance is known, positive and insufficient.
func (s *Synchronizer) ChangeToken(p Props, address string) []Command {
	if p.State.Chain == nil {
		return nil
	}

	cmds := []Command{SelectToken{Address: domain.StringPtr(address)}}

	deposit := p.State.DepositAmount
	if !deposit.Valid {
		return cmds
	}

	balance, present := lookupBalance(p.Balances, *p.State.Chain, address)
	switch {
	case balance.IsPositive() && balance.LessThan(deposit.Decimal):
		cmds = append(cmds, s.clampDeposit(balance))
	case s.policy.ClampConfirmedZero && present && balance.IsZero() && deposit.Decimal.IsPositive():
		cmds = append(cmds, s.clampDeposit(decimal.Zero))
	}
	return cmds
}

// ChangeDepositAmount echoes the typed deposit text and forwards its parsed value.
func (s *Synchronizer) ChangeDepositAmount(text string) []Command {
	s.depositText = text
	return []Command{SetDepositAmount{Amount: ParseAmount(text)}}
}

// ChangeStakeAmount echoes the typed stake text and forwards its parsed value.
func (s *Synchronizer) ChangeStakeAmount(text string) []Command {
	s.stakeText = text
	return []Command{SetStakeAmount{Amount: ParseAmount(text)}}
}

// clampDeposit rewrites the deposit field text to the clamped value, so the
// field never shows an amount above the balance. The typed text is not kept.
func (s *Synchronizer) clampDeposit(amount decimal.Decimal) Command {
	s.depositText = amount.String()
	return SetDepositAmount{Amount: decimal.NewNullDecimal(amount), Clamped: true}
}
