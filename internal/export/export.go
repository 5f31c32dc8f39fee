package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/rovshanmuradov/gmx-stake-form/internal/selection"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrIncompleteSelection = errors.New("chain and token must be selected")
	ErrInvalidAmount       = errors.New("amounts must be positive numbers")
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
}

// Intent is a finished stake form selection handed over to the signing tool.
type Intent struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Chain         domain.ChainKey `json:"chain"`
	TokenAddress  string          `json:"token_address"`
	TokenSymbol   string          `json:"token_symbol"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	StakeSymbol   string          `json:"stake_symbol"`
	StakeAmount   decimal.Decimal `json:"stake_amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// NewIntent builds an intent from a selection snapshot. The form itself
// accepts any text, so invalid or non-positive amounts are rejected here.
func NewIntent(p selection.Props, stakeSymbol string) (Intent, error) {
	state := p.State
	if state.Chain == nil || state.Token == nil {
		return Intent{}, ErrIncompleteSelection
	}
	if !state.DepositAmount.Valid || !state.DepositAmount.Decimal.IsPositive() ||
		!state.StakeAmount.Valid || !state.StakeAmount.Decimal.IsPositive() {
		return Intent{}, ErrInvalidAmount
	}

	symbol := ""
	if token, ok := p.SelectedToken(); ok {
		symbol = token.Symbol
	}

	return Intent{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Chain:         *state.Chain,
		TokenAddress:  *state.Token,
		TokenSymbol:   symbol,
		DepositAmount: state.DepositAmount.Decimal,
		StakeSymbol:   stakeSymbol,
		StakeAmount:   state.StakeAmount.Decimal,
		Balance:       selection.BalanceOf(p.Balances, *state.Chain, *state.Token),
	}, nil
}

// IntentExporter writes stake intents to disk
type IntentExporter struct {
	logger *zap.Logger
}

// NewIntentExporter creates a new intent exporter
func NewIntentExporter(logger *zap.Logger) *IntentExporter {
	return &IntentExporter{
		logger: logger,
	}
}

// Export writes the intent and returns the path of the created file.
func (e *IntentExporter) Export(intent Intent, options ExportOptions) (string, error) {
	if options.OutputDir == "" {
		options.OutputDir = "."
	}
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(options.OutputDir, e.generateFilename(intent, options))

	var err error
	switch options.Format {
	case FormatCSV:
		err = e.exportToCSV(intent, outputPath)
	case FormatJSON, "":
		err = e.exportToJSON(intent, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	e.logger.Info("Intent exported",
		zap.String("path", outputPath),
		zap.String("id", intent.ID),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (e *IntentExporter) generateFilename(intent Intent, options ExportOptions) string {
	ext := options.Format
	if ext == "" {
		ext = FormatJSON
	}
	timestamp := intent.CreatedAt.Format("20060102_150405")
	return fmt.Sprintf("stake_intent_%s_%s_%s.%s", intent.Chain, timestamp, intent.ID[:8], ext)
}

// CSVHeaders returns the column order of CSV exports.
func CSVHeaders() []string {
	return []string{
		"id", "created_at", "chain", "token_address", "token_symbol",
		"deposit_amount", "stake_symbol", "stake_amount", "balance",
	}
}

// ToCSV converts the intent to a CSV record.
func (i Intent) ToCSV() []string {
	return []string{
		i.ID,
		i.CreatedAt.Format(time.RFC3339),
		string(i.Chain),
		i.TokenAddress,
		i.TokenSymbol,
		i.DepositAmount.String(),
		i.StakeSymbol,
		i.StakeAmount.String(),
		i.Balance.String(),
	}
}

func (e *IntentExporter) exportToCSV(intent Intent, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.Write(intent.ToCSV()); err != nil {
		return fmt.Errorf("failed to write intent: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

func (e *IntentExporter) exportToJSON(intent Intent, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(intent); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
