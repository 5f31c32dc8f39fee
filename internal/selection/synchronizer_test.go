package selection

import (
	"testing"

	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	chainA domain.ChainKey = "arb"
	chainB domain.ChainKey = "ava"
	chainC domain.ChainKey = "eth"
)

func testTokens() domain.TokenTable {
	return domain.TokenTable{
		chainA: {
			{Address: "0xA1", Symbol: "USDT"},
			{Address: "0xA2", Symbol: "FOO"},
			{Address: "0xA3", Symbol: "GMX"},
		},
		chainB: {
			{Address: "0xB1", Symbol: "USDT"},
			{Address: "0xB3", Symbol: "GMX"},
		},
		chainC: {},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

// harness drives a Synchronizer through a Controller the way the form screen does.
type harness struct {
	sync *Synchronizer
	ctrl *Controller
}

func newHarness(policy Policy) *harness {
	return &harness{
		sync: NewSynchronizer(policy),
		ctrl: NewController(testTokens(), zap.NewNop()),
	}
}

func (h *harness) chain(key domain.ChainKey) {
	h.ctrl.Apply(h.sync.ChangeChain(h.ctrl.Props(), key)...)
}

func (h *harness) token(address string) {
	h.ctrl.Apply(h.sync.ChangeToken(h.ctrl.Props(), address)...)
}

func (h *harness) deposit(text string) {
	h.ctrl.Apply(h.sync.ChangeDepositAmount(text)...)
}

func (h *harness) selectedToken() *string {
	return h.ctrl.State().Token
}

func TestBalanceOf(t *testing.T) {
	balances := domain.BalanceTable{
		chainA: {
			{Address: "0xA1", Amount: dec("12.5")},
			{Address: "0xA2", Amount: dec("-3")},
		},
		chainB: nil,
	}

	tests := []struct {
		name     string
		balances domain.BalanceTable
		chain    domain.ChainKey
		address  string
		want     string
	}{
		{"known entry", balances, chainA, "0xA1", "12.5"},
		{"negative entry floors to zero", balances, chainA, "0xA2", "0"},
		{"unknown address", balances, chainA, "0xFF", "0"},
		{"chain without entries", balances, chainB, "0xB1", "0"},
		{"unknown chain", balances, "nope", "0xA1", "0"},
		{"absent table", nil, chainA, "0xA1", "0"},
		{"empty address", balances, chainA, "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BalanceOf(tt.balances, tt.chain, tt.address)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestChangeChainKeepsSymbol(t *testing.T) {
	h := newHarness(Policy{})
	h.chain(chainA)
	h.token("0xA1")

	h.chain(chainB)

	require.NotNil(t, h.selectedToken())
	assert.Equal(t, "0xB1", *h.selectedToken())
	assert.Equal(t, chainB, *h.ctrl.State().Chain)
}

func TestChangeChainClearsMissingSymbol(t *testing.T) {
	h := newHarness(Policy{})
	h.chain(chainA)
	h.token("0xA2")

	h.chain(chainB)

	assert.Nil(t, h.selectedToken())
	assert.Equal(t, chainB, *h.ctrl.State().Chain)
}

func TestChangeChainFirstSelectionLeavesToken(t *testing.T) {
	sync := NewSynchronizer(Policy{})
	props := Props{
		Tokens: testTokens(),
		State:  NewState(),
	}
	props.State.Token = domain.StringPtr("0xA1")

	cmds := sync.ChangeChain(props, chainA)

	require.Len(t, cmds, 1)
	assert.Equal(t, SelectChain{Chain: chainA}, cmds[0])
}

func TestChangeChainWithoutTokenClears(t *testing.T) {
	h := newHarness(Policy{})
	h.chain(chainA)

	cmds := h.sync.ChangeChain(h.ctrl.Props(), chainB)

	require.Len(t, cmds, 2)
	assert.Equal(t, SelectToken{}, cmds[1])
}

func TestChangeChainToEmptyChain(t *testing.T) {
	h := newHarness(Policy{})
	h.chain(chainA)
	h.token("0xA3")

	h.chain(chainC)

	assert.Nil(t, h.selectedToken())
}

func TestChangeChainIsIdempotent(t *testing.T) {
	once := newHarness(Policy{})
	once.chain(chainA)
	once.token("0xA1")
	once.chain(chainB)

	twice := newHarness(Policy{})
	twice.chain(chainA)
	twice.token("0xA1")
	twice.chain(chainB)
	twice.chain(chainB)

	require.NotNil(t, twice.selectedToken())
	assert.Equal(t, *once.selectedToken(), *twice.selectedToken())
	assert.Equal(t, *once.ctrl.State().Chain, *twice.ctrl.State().Chain)
}

func TestChangeTokenClamp(t *testing.T) {
	tests := []struct {
		name       string
		policy     Policy
		balances   domain.BalanceTable
		deposit    string
		wantAmount string
		wantText   string
	}{
		{
			name:       "insufficient balance clamps",
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("40")}}},
			deposit:    "100",
			wantAmount: "40",
			wantText:   "40",
		},
		{
			name:       "zero balance keeps deposit",
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("0")}}},
			deposit:    "100",
			wantAmount: "100",
			wantText:   "100",
		},
		{
			name:       "sufficient balance keeps deposit",
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("150")}}},
			deposit:    "100",
			wantAmount: "100",
			wantText:   "100",
		},
		{
			name:       "equal balance keeps deposit",
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("100")}}},
			deposit:    "100",
			wantAmount: "100",
			wantText:   "100",
		},
		{
			name:       "balances not loaded keep deposit",
			balances:   nil,
			deposit:    "100",
			wantAmount: "100",
			wantText:   "100",
		},
		{
			name:       "confirmed zero clamps under policy",
			policy:     Policy{ClampConfirmedZero: true},
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("0")}}},
			deposit:    "100",
			wantAmount: "0",
			wantText:   "0",
		},
		{
			name:       "missing entry never clamps under policy",
			policy:     Policy{ClampConfirmedZero: true},
			balances:   domain.BalanceTable{chainA: {{Address: "0xA2", Amount: dec("5")}}},
			deposit:    "100",
			wantAmount: "100",
			wantText:   "100",
		},
		{
			name:       "fractional balance clamps exactly",
			balances:   domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("0.000000000000000001")}}},
			deposit:    "1",
			wantAmount: "0.000000000000000001",
			wantText:   "0.000000000000000001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.policy)
			h.ctrl.SetBalances(tt.balances)
			h.chain(chainA)
			h.deposit(tt.deposit)

			h.token("0xA1")

			state := h.ctrl.State()
			require.NotNil(t, state.Token)
			assert.Equal(t, "0xA1", *state.Token)
			require.True(t, state.DepositAmount.Valid)
			assert.True(t, state.DepositAmount.Decimal.Equal(dec(tt.wantAmount)),
				"deposit %s want %s", state.DepositAmount.Decimal, tt.wantAmount)
			assert.Equal(t, tt.wantText, h.sync.DepositText())
		})
	}
}

func TestChangeTokenWithoutChain(t *testing.T) {
	h := newHarness(Policy{})

	cmds := h.sync.ChangeToken(h.ctrl.Props(), "0xA1")

	assert.Empty(t, cmds)
	assert.Nil(t, h.selectedToken())
}

func TestChangeTokenInvalidDepositNeverClamps(t *testing.T) {
	h := newHarness(Policy{})
	h.ctrl.SetBalances(domain.BalanceTable{chainA: {{Address: "0xA1", Amount: dec("40")}}})
	h.chain(chainA)
	h.deposit("abc")

	cmds := h.sync.ChangeToken(h.ctrl.Props(), "0xA1")

	require.Len(t, cmds, 1)
	assert.Equal(t, "abc", h.sync.DepositText())
}

func TestAmountEcho(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
	}{
		{"12.", true},
		{"12.5", true},
		{"", false},
		{"abc", false},
		{"1.2.3", false},
		{" 7 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sync := NewSynchronizer(Policy{})

			deposit := sync.ChangeDepositAmount(tt.text)
			stake := sync.ChangeStakeAmount(tt.text)

			assert.Equal(t, tt.text, sync.DepositText())
			assert.Equal(t, tt.text, sync.StakeText())

			require.Len(t, deposit, 1)
			require.Len(t, stake, 1)
			assert.Equal(t, tt.valid, deposit[0].(SetDepositAmount).Amount.Valid)
			assert.Equal(t, tt.valid, stake[0].(SetStakeAmount).Amount.Valid)
			assert.False(t, deposit[0].(SetDepositAmount).Clamped)
		})
	}
}

func TestAmountFieldsAreIndependent(t *testing.T) {
	h := newHarness(Policy{})

	h.deposit("5")
	h.ctrl.Apply(h.sync.ChangeStakeAmount("2.5")...)

	state := h.ctrl.State()
	assert.True(t, state.DepositAmount.Decimal.Equal(dec("5")))
	assert.True(t, state.StakeAmount.Decimal.Equal(dec("2.5")))
	assert.Equal(t, "5", h.sync.DepositText())
	assert.Equal(t, "2.5", h.sync.StakeText())
}
