package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrMalformedBalances = errors.New("malformed balance snapshot")

// BalanceSource provides wallet balances for all chains. A nil table with a
// nil error means no balances are available yet.
type BalanceSource interface {
	Load(ctx context.Context) (domain.BalanceTable, error)
}

type balanceFile struct {
	Balances []balanceEntry `json:"balances" toml:"balances"`
}

type balanceEntry struct {
	Chain   string `json:"chain" toml:"chain"`
	Address string `json:"address" toml:"address"`
	Amount  string `json:"amount" toml:"amount"`
}

// FileBalanceSource reads a balance snapshot written by an external indexer.
type FileBalanceSource struct {
	Path string
}

// Load implements BalanceSource. A missing file is reported as "not loaded".
func (s FileBalanceSource) Load(ctx context.Context) (domain.BalanceTable, error) {
	if s.Path == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file balanceFile
	if err := decodeFile(s.Path, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if errors.Is(err, ErrMalformedFile) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBalances, err)
		}
		return nil, err
	}

	return buildBalanceTable(file.Balances)
}

func buildBalanceTable(entries []balanceEntry) (domain.BalanceTable, error) {
	table := make(domain.BalanceTable)

	for i, entry := range entries {
		chain := domain.ChainKey(strings.TrimSpace(entry.Chain))
		if chain == "" {
			return nil, fmt.Errorf("%w: entry %d has no chain", ErrMalformedBalances, i)
		}

		address, err := NormalizeAddress(entry.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedBalances, i, err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(entry.Amount))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d amount %q: %v", ErrMalformedBalances, i, entry.Amount, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: entry %d has negative amount", ErrMalformedBalances, i)
		}

		table[chain] = append(table[chain], domain.TokenAmount{Address: address, Amount: amount})
	}

	return table, nil
}

// RetryConfig bounds the retries of a balance load.
type RetryConfig struct {
	MaxTries        uint
	InitialInterval time.Duration
}

// DefaultRetryConfig returns the retry settings used by the form.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxTries:        3,
		InitialInterval: 500 * time.Millisecond,
	}
}

// LoadBalancesWithRetry loads balances, retrying transient failures.
// Malformed snapshots are not retried.
func LoadBalancesWithRetry(ctx context.Context, src BalanceSource, cfg RetryConfig, logger *zap.Logger) (domain.BalanceTable, error) {
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 1
	}

	policy := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		policy.InitialInterval = cfg.InitialInterval
		policy.MaxInterval = cfg.InitialInterval * 10
	}

	notify := func(err error, d time.Duration) {
		logger.Warn("Balance load failed, retrying", zap.Error(err), zap.Duration("backoff", d))
	}

	operation := func() (domain.BalanceTable, error) {
		table, err := src.Load(ctx)
		if errors.Is(err, ErrMalformedBalances) {
			return nil, backoff.Permanent(err)
		}
		return table, err
	}

	table, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(cfg.MaxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return nil, fmt.Errorf("failed to load balances: %w", err)
	}
	return table, nil
}

// LoadAll loads the registry and the balance snapshot concurrently.
func LoadAll(ctx context.Context, registryPath string, src BalanceSource, cfg RetryConfig, logger *zap.Logger) (*Registry, domain.BalanceTable, error) {
	var (
		reg      *Registry
		balances domain.BalanceTable
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reg, err = LoadRegistry(registryPath)
		return err
	})
	g.Go(func() error {
		var err error
		balances, err = LoadBalancesWithRetry(gCtx, src, cfg, logger)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return reg, balances, nil
}
