package selection

import (
	"testing"

	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestControllerInitialState(t *testing.T) {
	ctrl := NewController(nil, zap.NewNop())

	state := ctrl.State()
	assert.Nil(t, state.Chain)
	assert.Nil(t, state.Token)
	assert.True(t, state.DepositAmount.Valid)
	assert.True(t, state.DepositAmount.Decimal.IsZero())
	assert.True(t, state.StakeAmount.Valid)
	assert.True(t, state.StakeAmount.Decimal.IsZero())
	assert.Nil(t, ctrl.Props().Balances)
	assert.NotNil(t, ctrl.Props().Tokens)
}

func TestControllerApplyEvents(t *testing.T) {
	ctrl := NewController(testTokens(), zap.NewNop())

	events := ctrl.Apply(
		SelectChain{Chain: chainA},
		SelectToken{Address: domain.StringPtr("0xA1")},
		SetDepositAmount{Amount: amount("40"), Clamped: true},
		SetStakeAmount{Amount: decimal.NullDecimal{}},
		SelectToken{},
	)

	require.Len(t, events, 5)
	assert.Equal(t, domain.EventChainSelected, events[0].Type)
	assert.Equal(t, domain.ChainSelectedData{Chain: chainA}, events[0].Data)
	assert.Equal(t, domain.EventTokenSelected, events[1].Type)
	assert.Equal(t, domain.TokenSelectedData{Chain: chainA, Address: "0xA1"}, events[1].Data)
	assert.Equal(t, domain.EventDepositClamped, events[2].Type)
	assert.Equal(t, domain.AmountData{Amount: "40", Valid: true}, events[2].Data)
	assert.Equal(t, domain.EventStakeAmountSet, events[3].Type)
	assert.Equal(t, domain.AmountData{}, events[3].Data)
	assert.Equal(t, domain.TokenSelectedData{Chain: chainA}, events[4].Data)

	state := ctrl.State()
	assert.Nil(t, state.Token)
	assert.False(t, state.StakeAmount.Valid)
	assert.True(t, state.DepositAmount.Decimal.Equal(dec("40")))
}

func TestControllerSelectTokenCopiesAddress(t *testing.T) {
	ctrl := NewController(testTokens(), zap.NewNop())
	address := "0xA1"

	ctrl.Apply(SelectChain{Chain: chainA}, SelectToken{Address: &address})
	address = "0xA2"

	require.NotNil(t, ctrl.State().Token)
	assert.Equal(t, "0xA1", *ctrl.State().Token)
}

func TestControllerSetBalances(t *testing.T) {
	ctrl := NewController(testTokens(), zap.NewNop())

	event := ctrl.SetBalances(domain.BalanceTable{
		chainA: {{Address: "0xA1", Amount: dec("1")}, {Address: "0xA2", Amount: dec("2")}},
		chainB: {{Address: "0xB1", Amount: dec("3")}},
	})

	assert.Equal(t, domain.EventBalancesLoaded, event.Type)
	assert.Equal(t, domain.BalancesLoadedData{Chains: 2, Entries: 3}, event.Data)
	assert.True(t, BalanceOf(ctrl.Props().Balances, chainB, "0xB1").Equal(dec("3")))
}

func TestPropsSelectedToken(t *testing.T) {
	ctrl := NewController(testTokens(), zap.NewNop())

	_, ok := ctrl.Props().SelectedToken()
	assert.False(t, ok)

	ctrl.Apply(SelectChain{Chain: chainB}, SelectToken{Address: domain.StringPtr("0xB3")})
	token, ok := ctrl.Props().SelectedToken()
	require.True(t, ok)
	assert.Equal(t, "GMX", token.Symbol)
}
