package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/application"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "Dynasty fantasy football trade evaluator",
	Version: version,
	Long: `tradeval prices dynasty assets and grades two-sided trades.

Values come from the historical archive first, then the live market
provider, then the built-in models. Every evaluation reports tier parity,
timeline fit, a rejection estimate, a grade and a confidence label.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

var (
	configPath  string
	logLevel    string
	metricsFile string
	historyDir  string
	historyDSN  string
	marketURL   string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Engine config YAML (default config/engine.yaml when present)")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	pf.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.StringVar(&historyDir, "history-dir", "", "Directory of archived value snapshots (overrides config)")
	pf.StringVar(&historyDSN, "history-dsn", "", "PostgreSQL DSN of the value archive (overrides config)")
	pf.StringVar(&marketURL, "market-url", "", "Base URL of the live values provider (overrides config)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// loadConfig reads --config, or the default path when it exists, and
// applies the command-line overrides
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath()); err == nil {
			path = config.DefaultPath()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Debug().Str("path", path).Msg("Config loaded")
	}

	if historyDir != "" {
		cfg.History.Dir, cfg.History.DSN = historyDir, ""
	}
	if historyDSN != "" {
		cfg.History.DSN, cfg.History.Dir = historyDSN, ""
	}
	if marketURL != "" {
		cfg.Market.BaseURL = marketURL
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %v", problems)
	}
	return cfg, nil
}

// withEngine builds the engine, runs fn and flushes metrics
func withEngine(ctx context.Context, fn func(*application.Engine) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := application.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Warn().Err(err).Msg("Engine close failed")
		}
	}()

	runErr := fn(e)
	if metricsFile != "" {
		if err := e.WriteMetrics(metricsFile); err != nil {
			log.Warn().Err(err).Str("path", metricsFile).Msg("Metrics not written")
		}
	}
	return runErr
}
