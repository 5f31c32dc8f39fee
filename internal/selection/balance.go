package selection

import (
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
)

// BalanceOf returns the wallet balance of address on chain. It is zero when
// balances are not loaded, the chain has no entries or nothing matches.
func BalanceOf(balances domain.BalanceTable, chain domain.ChainKey, address string) decimal.Decimal {
	amount, _ := lookupBalance(balances, chain, address)
	return amount
}

// lookupBalance also reports whether an entry was actually present, which
// separates a confirmed empty wallet from a balance that is still loading.
func lookupBalance(balances domain.BalanceTable, chain domain.ChainKey, address string) (decimal.Decimal, bool) {
	if balances == nil {
		return decimal.Zero, false
	}

	entry, ok := balances.Find(chain, address)
	if !ok {
		return decimal.Zero, false
	}
	if entry.Amount.IsNegative() {
		return decimal.Zero, true
	}
	return entry.Amount, true
}
