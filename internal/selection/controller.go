package selection

import (
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Controller owns the selection state and applies commands to it in order.
type Controller struct {
	state    State
	tokens   domain.TokenTable
	balances domain.BalanceTable
	logger   *zap.Logger
}

// NewController creates a controller over the given token table.
func NewController(tokens domain.TokenTable, logger *zap.Logger) *Controller {
	if tokens == nil {
		tokens = domain.TokenTable{}
	}
	return &Controller{
		state:  NewState(),
		tokens: tokens,
		logger: logger.Named("selection"),
	}
}

// Props returns the current snapshot.
func (c *Controller) Props() Props {
	return Props{
		Tokens:   c.tokens,
		Balances: c.balances,
		State:    c.state,
	}
}

// State returns the current selection.
func (c *Controller) State() State {
	return c.state
}

// SetBalances replaces the balance table. A nil table marks balances as not loaded.
func (c *Controller) SetBalances(balances domain.BalanceTable) domain.Event {
	c.balances = balances

	data := domain.BalancesLoadedData{Chains: len(balances)}
	for _, entries := range balances {
		data.Entries += len(entries)
	}
	c.logger.Debug("Balances loaded",
		zap.Int("chains", data.Chains),
		zap.Int("entries", data.Entries))

	return domain.NewEvent(domain.EventBalancesLoaded, data)
}

// Apply applies commands in order and returns one event per applied command.
func (c *Controller) Apply(cmds ...Command) []domain.Event {
	events := make([]domain.Event, 0, len(cmds))
	for _, cmd := range cmds {
		events = append(events, c.apply(cmd))
	}
	return events
}

func (c *Controller) apply(cmd Command) domain.Event {
	switch cmd := cmd.(type) {
	case SelectChain:
		c.state.Chain = domain.ChainPtr(cmd.Chain)
		c.logger.Debug("Chain selected", zap.String("chain", string(cmd.Chain)))
		return domain.NewEvent(domain.EventChainSelected, domain.ChainSelectedData{Chain: cmd.Chain})

	case SelectToken:
		data := domain.TokenSelectedData{}
		if c.state.Chain != nil {
			data.Chain = *c.state.Chain
		}
		if cmd.Address == nil {
			c.state.Token = nil
		} else {
			c.state.Token = domain.StringPtr(*cmd.Address)
			data.Address = *cmd.Address
		}
		c.logger.Debug("Token selected",
			zap.String("chain", string(data.Chain)),
			zap.String("address", data.Address))
		return domain.NewEvent(domain.EventTokenSelected, data)

	case SetDepositAmount:
		c.state.DepositAmount = cmd.Amount
		data := amountData(cmd.Amount)
		if cmd.Clamped {
			c.logger.Debug("Deposit clamped", zap.String("amount", data.Amount))
			return domain.NewEvent(domain.EventDepositClamped, data)
		}
		return domain.NewEvent(domain.EventDepositAmountSet, data)

	case SetStakeAmount:
		c.state.StakeAmount = cmd.Amount
		return domain.NewEvent(domain.EventStakeAmountSet, amountData(cmd.Amount))

	default:
		c.logger.Warn("Unknown selection command", zap.Any("command", cmd))
		return domain.NewEvent(domain.EventType(-1), nil)
	}
}

func amountData(amount decimal.NullDecimal) domain.AmountData {
	if !amount.Valid {
		return domain.AmountData{}
	}
	return domain.AmountData{Amount: amount.Decimal.String(), Valid: true}
}
