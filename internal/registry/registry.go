package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
)

var (
	ErrNoChains       = errors.New("no chains in registry")
	ErrDuplicateChain = errors.New("duplicate chain key")
	ErrInvalidToken   = errors.New("invalid token")
	ErrMalformedFile  = errors.New("malformed file")
)

type registryFile struct {
	Chains []chainEntry `json:"chains" toml:"chains"`
}

type chainEntry struct {
	Key    string         `json:"key" toml:"key"`
	ID     int64          `json:"id" toml:"id"`
	Name   string         `json:"name" toml:"name"`
	Tokens []domain.Token `json:"tokens" toml:"tokens"`
}

// Registry is the set of chains offered by the chain picker together with
// the tokens each chain supports.
type Registry struct {
	chains []domain.Chain
	tokens domain.TokenTable
}

// LoadRegistry reads a chain/token registry from a JSON or TOML file.
func LoadRegistry(path string) (*Registry, error) {
	var file registryFile
	if err := decodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return newRegistry(file)
}

func newRegistry(file registryFile) (*Registry, error) {
	if len(file.Chains) == 0 {
		return nil, ErrNoChains
	}

	reg := &Registry{
		chains: make([]domain.Chain, 0, len(file.Chains)),
		tokens: make(domain.TokenTable, len(file.Chains)),
	}

	for _, entry := range file.Chains {
		key := domain.ChainKey(strings.TrimSpace(entry.Key))
		if key == "" {
			return nil, fmt.Errorf("chain %q: empty key", entry.Name)
		}
		if _, exists := reg.tokens[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChain, key)
		}

		name := entry.Name
		if name == "" {
			name = string(key)
		}
		reg.chains = append(reg.chains, domain.Chain{Key: key, ID: entry.ID, Name: name})

		tokens, err := normalizeTokens(entry.Tokens)
		if err != nil {
			return nil, fmt.Errorf("chain %s: %w", key, err)
		}
		reg.tokens[key] = tokens
	}

	return reg, nil
}

func normalizeTokens(tokens []domain.Token) ([]domain.Token, error) {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]domain.Token, 0, len(tokens))

	for _, token := range tokens {
		address, err := NormalizeAddress(token.Address)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[address]; dup {
			return nil, fmt.Errorf("%w: duplicate address %s", ErrInvalidToken, address)
		}
		seen[address] = struct{}{}

		token.Address = address
		token.Symbol = strings.TrimSpace(token.Symbol)
		if token.Symbol == "" {
			return nil, fmt.Errorf("%w: %s has no symbol", ErrInvalidToken, address)
		}
		out = append(out, token)
	}

	return out, nil
}

// NormalizeAddress validates a hex address and returns its checksummed form,
// so registry and balance entries compare equal regardless of letter case.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: bad address %q", ErrInvalidToken, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// Chains returns the chains in registry order.
func (r *Registry) Chains() []domain.Chain {
	return r.chains
}

// Tokens returns the token table of all chains.
func (r *Registry) Tokens() domain.TokenTable {
	return r.tokens
}

// Chain looks up a chain by key.
func (r *Registry) Chain(key domain.ChainKey) (domain.Chain, bool) {
	for _, chain := range r.chains {
		if chain.Key == key {
			return chain, true
		}
	}
	return domain.Chain{}, false
}

// decodeFile picks the decoder by file suffix, defaulting to TOML.
func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: failed to parse JSON: %v", ErrMalformedFile, err)
		}
		return nil
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to parse TOML: %v", ErrMalformedFile, err)
	}
	return nil
}
