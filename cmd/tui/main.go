package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/gmx-stake-form/internal/config"
	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"github.com/rovshanmuradov/gmx-stake-form/internal/export"
	"github.com/rovshanmuradov/gmx-stake-form/internal/logger"
	"github.com/rovshanmuradov/gmx-stake-form/internal/registry"
	"github.com/rovshanmuradov/gmx-stake-form/internal/selection"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/router"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/screen"
	"github.com/rovshanmuradov/gmx-stake-form/internal/ui/state"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	flag.Parse()

	// Create context with signal handling
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(rootCtx, *configPath)
	stop()

	if err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the log file is flushed and closed on
// every path.
func run(rootCtx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the form, so logs go to a file.
	logFile, err := logger.NewSafeFileWriter(cfg.LogFile, time.Second, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging, logFile)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting GMX stake form")

	retry := registry.DefaultRetryConfig()
	if cfg.BalanceRetries > 0 {
		retry.MaxTries = uint(cfg.BalanceRetries)
	}
	balances := registry.FileBalanceSource{Path: cfg.BalancesFile}

	reg, initial, err := registry.LoadAll(rootCtx, cfg.RegistryFile, balances, retry, appLogger)
	if err != nil {
		appLogger.Error("Failed to load registry", zap.Error(err))
		return fmt.Errorf("failed to load registry: %w", err)
	}

	form := screen.NewStakeForm(screen.StakeFormDeps{
		Context:         rootCtx,
		Registry:        reg,
		InitialBalances: initial,
		Policy:          selection.Policy{ClampConfirmedZero: cfg.ClampConfirmedZero},
		Balances:        balances,
		Cache:           state.NewBalanceCache(appLogger),
		Retry:           retry,
		Refresh:         cfg.BalanceRefresh,
		Exporter:        export.NewIntentExporter(appLogger),
		ExportOptions: export.ExportOptions{
			Format:    export.ExportFormat(cfg.ExportFormat),
			OutputDir: cfg.ExportDir,
		},
		StakeSymbol:   cfg.StakeSymbol,
		DepositSymbol: cfg.DepositSymbol,
		DefaultChain:  domain.ChainKey(cfg.DefaultChain),
		Logger:        appLogger,
	})

	r := router.New(form, func(route ui.Route) router.Screen {
		if route == ui.RouteHelp {
			return screen.NewHelpScreen()
		}
		return nil
	})

	program := tea.NewProgram(
		ui.NewSafeUIWrapper(r, appLogger),
		tea.WithAltScreen(),
		tea.WithContext(rootCtx),
	)

	if _, err := program.Run(); err != nil && rootCtx.Err() == nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		return fmt.Errorf("tui failed: %w", err)
	}

	appLogger.Info("Shutting down GMX stake form")
	return nil
}
