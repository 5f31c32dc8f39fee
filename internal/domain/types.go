package domain

import (
	"github.com/shopspring/decimal"
)

// ChainKey identifies a blockchain network. It is only ever used as a lookup key.
type ChainKey string

// Chain is an entry of the chain picker.
type Chain struct {
	Key  ChainKey `json:"key" toml:"key"`
	ID   int64    `json:"id" toml:"id"`
	Name string   `json:"name" toml:"name"`
}

// Token describes a token on one chain. Address is unique within the chain,
// Symbol correlates the same asset across chains.
type Token struct {
	Address  string `json:"address" toml:"address"`
	Symbol   string `json:"symbol" toml:"symbol"`
	Name     string `json:"name,omitempty" toml:"name"`
	Decimals uint8  `json:"decimals" toml:"decimals"`
}

// TokenAmount is a wallet balance of a single token on one chain.
type TokenAmount struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// TokenTable maps every chain to its ordered token list.
type TokenTable map[ChainKey][]Token

// BalanceTable maps every chain to its ordered balance entries.
// A nil table means balances have not been loaded yet.
type BalanceTable map[ChainKey][]TokenAmount

// FindByAddress returns the token with the given address on chain.
func (t TokenTable) FindByAddress(chain ChainKey, address string) (Token, bool) {
	for _, token := range t[chain] {
		if token.Address == address {
			return token, true
		}
	}
	return Token{}, false
}

// FindBySymbol returns the first token with the given symbol on chain.
func (t TokenTable) FindBySymbol(chain ChainKey, symbol string) (Token, bool) {
	for _, token := range t[chain] {
		if token.Symbol == symbol {
			return token, true
		}
	}
	return Token{}, false
}

// Find returns the balance entry for address on chain.
func (b BalanceTable) Find(chain ChainKey, address string) (TokenAmount, bool) {
	for _, entry := range b[chain] {
		if entry.Address == address {
			return entry, true
		}
	}
	return TokenAmount{}, false
}

// ChainPtr and StringPtr build optional selections.
func ChainPtr(key ChainKey) *ChainKey { return &key }

func StringPtr(s string) *string { return &s }
