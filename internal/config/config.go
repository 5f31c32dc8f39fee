// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	RegistryFile       string        `mapstructure:"registry_file"`
	BalancesFile       string        `mapstructure:"balances_file"`
	LogFile            string        `mapstructure:"log_file"`
	ExportDir          string        `mapstructure:"export_dir"`
	ExportFormat       string        `mapstructure:"export_format"`
	DebugLogging       bool          `mapstructure:"debug_logging"`
	ClampConfirmedZero bool          `mapstructure:"clamp_confirmed_zero"`
	BalanceRefreshMS   int           `mapstructure:"balance_refresh_ms"`
	BalanceRefresh     time.Duration `mapstructure:"-"`
	BalanceRetries     int           `mapstructure:"balance_retries"`
	DefaultChain       string        `mapstructure:"default_chain"`
	StakeSymbol        string        `mapstructure:"stake_symbol"`
	DepositSymbol      string        `mapstructure:"deposit_symbol"`
}

const (
	DefaultLogFile          = "logs/stake-form.log"
	DefaultExportDir        = "exports"
	DefaultExportFormat     = "json"
	DefaultBalanceRefreshMS = 15000
	DefaultBalanceRetries   = 3
	DefaultStakeSymbol      = "GMX"
	DefaultDepositSymbol    = "USDT"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"registry_file":        "",
		"balances_file":        "",
		"debug_logging":        false,
		"clamp_confirmed_zero": false,
		"default_chain":        "",
		"log_file":             DefaultLogFile,
		"export_dir":           DefaultExportDir,
		"export_format":        DefaultExportFormat,
		"balance_refresh_ms":   DefaultBalanceRefreshMS,
		"balance_retries":      DefaultBalanceRetries,
		"stake_symbol":         DefaultStakeSymbol,
		"deposit_symbol":       DefaultDepositSymbol,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.BalanceRefresh = time.Duration(cfg.BalanceRefreshMS) * time.Millisecond

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.RegistryFile) == "" {
		return errors.New("missing registry_file in configuration")
	}
	switch cfg.ExportFormat {
	case "json", "csv":
	default:
		return errors.New("export_format must be json or csv")
	}
	if cfg.BalanceRefreshMS < 0 {
		return errors.New("invalid balance_refresh_ms")
	}
	if cfg.BalanceRetries < 0 {
		return errors.New("invalid balance_retries count")
	}
	if cfg.StakeSymbol == "" || cfg.DepositSymbol == "" {
		return errors.New("stake_symbol and deposit_symbol must not be empty")
	}
	return nil
}

// loadEnvironmentVariables lets STAKE_FORM_* variables override file values.
func loadEnvironmentVariables(v *viper.Viper) {
	v.SetEnvPrefix("STAKE_FORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
