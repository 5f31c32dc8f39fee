package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/rovshanmuradov/gmx-stake-form/internal/export"
	"github.com/rovshanmuradov/gmx-stake-form/internal/registry"
	"github.com/rovshanmuradov/gmx-stake-form/internal/selection"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/component"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/router"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/state"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/style"
	"go.uber.org/zap"
)

const (
	chainPickerID  = "chain"
	tokenPickerID  = "token"
	stakeInputID   = "stake"
	depositInputID = "deposit"

	maxEventHistory = 50
)

type formField int

const (
	fieldChain formField = iota
	fieldToken
	fieldStake
	fieldDeposit
	fieldCount
)

// StakeFormDeps wires the stake form to its data sources.
type StakeFormDeps struct {
	Context         context.Context
	Registry        *registry.Registry
	InitialBalances domain.BalanceTable
	Policy          selection.Policy
	Balances        registry.BalanceSource
	Cache           *state.BalanceCache
	Retry           registry.RetryConfig
	Refresh         time.Duration
	Exporter        *export.IntentExporter
	ExportOptions   export.ExportOptions
	StakeSymbol     string
	DepositSymbol   string
	DefaultChain    domain.ChainKey
	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(text string) error
	Logger          *zap.Logger
}

// StakeForm is the "stake GMX from" screen. It owns the selection and keeps
// its widgets in sync with it.
type StakeForm struct {
	deps       StakeFormDeps
	keyMap     ui.KeyMap
	controller *selection.Controller
	sync       *selection.Synchronizer
	logger     *zap.Logger

	chainPicker  *component.Picker
	tokenPicker  *component.Picker
	stakeInput   *component.AmountInput
	depositInput *component.AmountInput
	helpBar      *component.HelpBar

	focus  formField
	status string
	isErr  bool
	events []domain.Event

	width  int
	height int
}

// NewStakeForm creates the stake form screen
func NewStakeForm(deps StakeFormDeps) *StakeForm {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Cache == nil {
		deps.Cache = state.NewBalanceCache(deps.Logger)
	}
	if deps.CopyToClipboard == nil {
		deps.CopyToClipboard = clipboard.WriteAll
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewIntentExporter(deps.Logger)
	}

	var tokens domain.TokenTable
	if deps.Registry != nil {
		tokens = deps.Registry.Tokens()
	}

	s := &StakeForm{
		deps:       deps,
		keyMap:     ui.DefaultKeyMap(),
		controller: selection.NewController(tokens, deps.Logger),
		sync:       selection.NewSynchronizer(deps.Policy),
		logger:     deps.Logger.Named("stake_form"),

		chainPicker: component.NewPicker(chainPickerID, "Chain", "Select chain"),
		tokenPicker: component.NewPicker(tokenPickerID, "Token", "Select token"),
		stakeInput: component.NewAmountInput(stakeInputID,
			"Amount to stake in $"+deps.StakeSymbol, "$"+deps.StakeSymbol),
		depositInput: component.NewAmountInput(depositInputID,
			"Amount to stake in $"+deps.DepositSymbol, "$"+deps.DepositSymbol),
		helpBar: component.NewHelpBar(),
	}
	s.helpBar.SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteStakeForm))

	if deps.InitialBalances != nil {
		deps.Cache.Merge(deps.InitialBalances)
		s.record(s.controller.SetBalances(deps.Cache.Snapshot()))
	}

	s.chainPicker.SetOptions(s.chainOptions())
	if deps.DefaultChain != "" && deps.Registry != nil {
		if _, ok := deps.Registry.Chain(deps.DefaultChain); ok {
			s.apply(s.sync.ChangeChain(s.controller.Props(), deps.DefaultChain))
		}
	}
	s.syncWidgets()
	s.setFocus(fieldChain)

	return s
}

// Init starts the periodic balance refresh
func (s *StakeForm) Init() tea.Cmd {
	return s.tick()
}

// SetSize sets the screen dimensions
func (s *StakeForm) SetSize(width, height int) {
	s.width = width
	s.height = height

	half := style.AdaptiveWidth(width-6, 50)
	s.chainPicker.SetWidth(half)
	s.tokenPicker.SetWidth(half)
	s.stakeInput.SetWidth(half * 2)
	s.depositInput.SetWidth(half * 2)
	s.helpBar.SetWidth(width)
}

// Controller exposes the selection owner
func (s *StakeForm) Controller() *selection.Controller { return s.controller }

// Events returns the most recent selection events
func (s *StakeForm) Events() []domain.Event { return s.events }

// Status returns the status line and whether it reports an error
func (s *StakeForm) Status() (string, bool) { return s.status, s.isErr }

// Update handles user input and background results
func (s *StakeForm) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s, s.handleKey(msg)

	case component.PickedMsg:
		return s, s.pick(msg)

	case ui.BalancesLoadedMsg:
		if msg.Err != nil {
			s.logger.Warn("Balance reload failed", zap.Error(msg.Err))
			s.setStatus("Balance reload failed: "+msg.Err.Error(), true)
			return s, nil
		}
		if msg.Balances != nil {
			s.record(s.controller.SetBalances(msg.Balances))
			s.syncWidgets()
		}
		return s, nil

	case ui.RefreshTickMsg:
		if s.deps.Refresh > 0 {
			s.deps.Cache.CleanupStale(3 * s.deps.Refresh)
		}
		return s, tea.Batch(s.reloadBalances(), s.tick())

	case ui.ErrorMsg:
		s.setStatus(fmt.Sprintf("%s: %v", msg.Title, msg.Error), true)
		return s, nil

	case ui.SuccessMsg:
		s.setStatus(msg.Message, false)
		return s, nil
	}

	return s, nil
}

func (s *StakeForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, s.keyMap.Help):
		return func() tea.Msg { return ui.RouterMsg{To: ui.RouteHelp} }
	case key.Matches(msg, s.keyMap.Tab):
		return s.setFocus((s.focus + 1) % fieldCount)
	case key.Matches(msg, s.keyMap.ShiftTab):
		return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, s.keyMap.Export):
		s.exportIntent()
		return nil
	case key.Matches(msg, s.keyMap.CopyAddress):
		s.copyAddress()
		return nil
	case key.Matches(msg, s.keyMap.Reload):
		s.setStatus("Reloading balances...", false)
		return s.reloadBalances()
	}

	switch s.focus {
	case fieldChain:
		_, cmd := s.chainPicker.Update(msg)
		return s.pickNow(cmd)
	case fieldToken:
		_, cmd := s.tokenPicker.Update(msg)
		return s.pickNow(cmd)
	case fieldStake:
		return s.typeAmount(s.stakeInput, msg, s.sync.ChangeStakeAmount)
	case fieldDeposit:
		return s.typeAmount(s.depositInput, msg, s.sync.ChangeDepositAmount)
	}
	return nil
}

// pickNow applies the pick produced by a picker key before the next key is
// read, so a fast enter-then-type sequence sees the new chain or token.
func (s *StakeForm) pickNow(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	if picked, ok := cmd().(component.PickedMsg); ok {
		return s.pick(picked)
	}
	return nil
}

func (s *StakeForm) pick(msg component.PickedMsg) tea.Cmd {
	props := s.controller.Props()
	switch msg.PickerID {
	case chainPickerID:
		s.apply(s.sync.ChangeChain(props, domain.ChainKey(msg.Value)))
		return s.setFocus(fieldToken)
	case tokenPickerID:
		s.apply(s.sync.ChangeToken(props, msg.Value))
		return s.setFocus(fieldStake)
	}
	return nil
}

// typeAmount feeds a key to an amount field and applies the edited text in
// the same update, so keystrokes reach the selection in the order typed.
func (s *StakeForm) typeAmount(input *component.AmountInput, msg tea.KeyMsg, change func(string) []selection.Command) tea.Cmd {
	before := input.Value()
	_, cmd := input.Update(msg)
	if text := input.Value(); text != before {
		s.apply(change(text))
	}
	return cmd
}

func (s *StakeForm) setFocus(field formField) tea.Cmd {
	s.focus = field
	s.chainPicker.Blur()
	s.tokenPicker.Blur()
	s.stakeInput.Blur()
	s.depositInput.Blur()

	switch field {
	case fieldChain:
		s.chainPicker.Focus()
	case fieldToken:
		s.tokenPicker.Focus()
	case fieldStake:
		return s.stakeInput.Focus()
	case fieldDeposit:
		return s.depositInput.Focus()
	}
	return nil
}

// apply runs commands through the controller and refreshes the widgets.
func (s *StakeForm) apply(cmds []selection.Command) {
	if len(cmds) == 0 {
		return
	}
	for _, event := range s.controller.Apply(cmds...) {
		s.record(event)
	}
	s.syncWidgets()
}

func (s *StakeForm) record(event domain.Event) {
	s.events = append(s.events, event)
	if len(s.events) > maxEventHistory {
		s.events = s.events[len(s.events)-maxEventHistory:]
	}
}

func (s *StakeForm) syncWidgets() {
	st := s.controller.State()

	var chain *string
	if st.Chain != nil {
		chain = domain.StringPtr(string(*st.Chain))
	}
	s.chainPicker.SetSelected(chain)

	s.tokenPicker.SetOptions(s.tokenOptions(st.Chain))
	s.tokenPicker.SetSelected(st.Token)
	s.tokenPicker.SetGrayed(st.Chain == nil)

	s.stakeInput.SetValue(s.sync.StakeText())
	s.depositInput.SetValue(s.sync.DepositText())
}

func (s *StakeForm) chainOptions() []component.PickerOption {
	if s.deps.Registry == nil {
		return nil
	}
	chains := s.deps.Registry.Chains()
	options := make([]component.PickerOption, 0, len(chains))
	for _, chain := range chains {
		options = append(options, component.PickerOption{
			Value:  string(chain.Key),
			Label:  chain.Name,
			Detail: fmt.Sprintf("#%d", chain.ID),
		})
	}
	return options
}

func (s *StakeForm) tokenOptions(chain *domain.ChainKey) []component.PickerOption {
	if chain == nil {
		return nil
	}
	props := s.controller.Props()
	tokens := props.Tokens[*chain]
	options := make([]component.PickerOption, 0, len(tokens))
	for _, token := range tokens {
		detail := ""
		if entry, ok := props.Balances.Find(*chain, token.Address); ok {
			detail = entry.Amount.String()
		}
		options = append(options, component.PickerOption{
			Value:  token.Address,
			Label:  token.Symbol + " " + shortAddress(token.Address),
			Detail: detail,
		})
	}
	return options
}

func (s *StakeForm) exportIntent() {
	intent, err := export.NewIntent(s.controller.Props(), s.deps.StakeSymbol)
	if err != nil {
		s.setStatus("Cannot export: "+err.Error(), true)
		return
	}

	path, err := s.deps.Exporter.Export(intent, s.deps.ExportOptions)
	if err != nil {
		s.logger.Error("Intent export failed", zap.Error(err))
		s.setStatus("Export failed: "+err.Error(), true)
		return
	}

	s.record(domain.NewEvent(domain.EventIntentExported, domain.IntentExportedData{IntentID: intent.ID, Path: path}))
	s.setStatus("Stake intent saved to "+path, false)
}

func (s *StakeForm) copyAddress() {
	st := s.controller.State()
	if st.Token == nil {
		s.setStatus("No token selected", true)
		return
	}
	if err := s.deps.CopyToClipboard(*st.Token); err != nil {
		s.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	s.setStatus("Copied "+*st.Token, false)
}

func (s *StakeForm) reloadBalances() tea.Cmd {
	src := s.deps.Balances
	if src == nil {
		return nil
	}
	ctx, cache, retry, logger := s.deps.Context, s.deps.Cache, s.deps.Retry, s.logger

	return func() tea.Msg {
		table, err := registry.LoadBalancesWithRetry(ctx, src, retry, logger)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return ui.BalancesLoadedMsg{Err: err}
		}
		cache.Merge(table)
		return ui.BalancesLoadedMsg{Balances: cache.Snapshot()}
	}
}

func (s *StakeForm) tick() tea.Cmd {
	if s.deps.Refresh <= 0 || s.deps.Balances == nil {
		return nil
	}
	return tea.Tick(s.deps.Refresh, func(t time.Time) tea.Msg {
		return ui.RefreshTickMsg{At: t}
	})
}

func (s *StakeForm) setStatus(text string, isErr bool) {
	s.status = text
	s.isErr = isErr
}

// View renders the form
func (s *StakeForm) View() string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("GMX Staking"))
	b.WriteString("\n")
	b.WriteString(style.FormTextStyle.Render("Stake $" + s.deps.StakeSymbol + " from:"))
	b.WriteString("\n")
	b.WriteString(style.AdaptiveJoinHorizontal(s.width, s.chainPicker.View(), " ", s.tokenPicker.View()))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render(s.balanceLine()))
	b.WriteString("\n\n")
	b.WriteString(s.stakeInput.View())
	b.WriteString("\n")
	b.WriteString(style.ArrowStyle.Render("⇅"))
	b.WriteString("\n")
	b.WriteString(s.depositInput.View())
	b.WriteString("\n")

	if s.status != "" {
		statusStyle := style.SuccessStyle
		if s.isErr {
			statusStyle = style.ErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(s.status))
		b.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.ContainerStyle.Render(b.String()),
		s.helpBar.View())
}

func (s *StakeForm) balanceLine() string {
	props := s.controller.Props()
	token, ok := props.SelectedToken()
	switch {
	case props.Balances == nil:
		return "Balances not loaded"
	case !ok:
		return "Balance: -"
	}
	balance := selection.BalanceOf(props.Balances, *props.State.Chain, token.Address)
	return fmt.Sprintf("Balance: %s %s", balance.String(), token.Symbol)
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
