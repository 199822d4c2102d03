// Package cli provides the command-line interface for the analysis
// application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tickerlab/internal/analysis/engine"
	"tickerlab/internal/config"
	"tickerlab/internal/logging"
	"tickerlab/internal/quote"
	"tickerlab/internal/regime"
	"tickerlab/internal/runner"
	"tickerlab/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Runner *runner.Runner
	Regime *regime.Monitor
	Cache  store.BarCache
}

// NewRootCmd wires the application and creates the root command.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	source := quote.NewYahooClient(cfg.Quote, logger)

	if cfg.Cache.Enabled {
		cache, err := store.NewSQLiteCache(cfg.Cache.Path)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Cache.Path).Msg("bar cache unavailable, fetching directly")
		} else {
			app.Cache = cache
			logger.Debug().Str("path", cfg.Cache.Path).Msg("bar cache initialized")
		}
	}

	fx := quote.NewFxCache(source, cfg.Quote.FxSymbol, logger)
	eng := engine.NewWithSwingWindow(cfg.Analysis.SwingWindow)
	app.Runner = runner.New(source, app.Cache, fx, eng, cfg.Cache.MaxAge, logger)
	app.Regime = regime.NewMonitor(source, cfg.Quote.FxSymbol, logger)

	rootCmd := &cobra.Command{
		Use:   "tickerlab",
		Short: "Single-symbol technical analysis lab",
		Long: `tickerlab analyzes one ticker at a time: trend EMAs, RSI, MACD,
swing-point support/resistance, risk/reward with targets and stop, a
composite 0-99 score with letter rank, and narrative signals covering
order flow, today's move, trade scenarios, and candlestick patterns.

When the quote source is unreachable the analysis falls back to
synthesized demo bars, clearly marked as such.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tickerlab)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newSizeCmd(app))
	rootCmd.AddCommand(newMacroCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("tickerlab v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Quote Source")
	output.Printf("  Base URL:   %s\n", cfg.Quote.BaseURL)
	if cfg.Quote.ProxyURL != "" {
		output.Printf("  Proxy:      %s\n", cfg.Quote.ProxyURL)
	}
	output.Printf("  Range:      %s / %s\n", cfg.Quote.Range, cfg.Quote.Interval)
	output.Printf("  FX Symbol:  %s\n", cfg.Quote.FxSymbol)
	output.Printf("  Timeout:    %s\n", cfg.Quote.Timeout)
	output.Println()

	output.Bold("Bar Cache")
	output.Printf("  Enabled:    %v\n", cfg.Cache.Enabled)
	output.Printf("  Path:       %s\n", cfg.Cache.Path)
	output.Printf("  Max Age:    %s\n", cfg.Cache.MaxAge)
	output.Println()

	output.Bold("Analysis")
	output.Printf("  Swing Window: %d bars\n", cfg.Analysis.SwingWindow)
	output.Println()

	output.Bold("Position Sizing")
	output.Printf("  Default Risk: %.1f%%\n", cfg.Position.DefaultRiskPercent)
}
