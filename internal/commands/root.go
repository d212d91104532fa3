// Package commands wires the btcsim CLI.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fineflow77/btcpowerlawsimulator/internal/buildinfo"
	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// logLevelEnv seeds --log-level when the flag is not given.
const logLevelEnv = "BTCSIM_LOG_LEVEL"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel     string
	format       string
	outputDir    string
	exchangeRate float64
	taxRate      float64
	model        string
	currency     string
	locale       string
}

// app is the state built once per invocation in PersistentPreRunE.
type app struct {
	flags  globalFlags
	prefs  config.Preferences
	logger *logrus.Logger
	engine *calculation.SimulationEngine
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "btcsim",
		Short:   "Bitcoin power-law accumulation and withdrawal simulator",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.logLevel, "log-level", envOr(logLevelEnv, "warn"), "log level (debug, info, warn, error)")
	pf.StringVarP(&a.flags.format, "format", "f", "", "output format (default from preferences, usually console)")
	pf.StringVarP(&a.flags.outputDir, "output-dir", "o", "", "write report files to this directory instead of stdout")
	pf.Float64Var(&a.flags.exchangeRate, "exchange-rate", 0, "local currency per USD")
	pf.Float64Var(&a.flags.taxRate, "tax-rate", 0, "withdrawal tax rate in percent")
	pf.StringVar(&a.flags.model, "model", "", "price model (standard or conservative)")
	pf.StringVar(&a.flags.currency, "currency", "", "ISO 4217 code of the local currency")
	pf.StringVar(&a.flags.locale, "locale", "", "BCP 47 locale used to format amounts")

	rootCmd.AddCommand(
		newPricesCommand(a),
		newAccumulateCommand(a),
		newWithdrawCommand(a),
		newRunCommand(a),
		newViewCommand(a),
		newInteractiveCommand(a),
		newInitCommand(a),
		newPrefsCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(a.flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.flags.logLevel, err)
	}
	a.logger = logrus.New()
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetLevel(level)

	a.prefs, err = config.LoadPreferences()
	if err != nil {
		return err
	}
	a.logger.Debugf("preferences: %s", config.PreferencesPath())

	a.engine = calculation.NewSimulationEngine()
	a.engine.SetLogger(a.logger)
	a.engine.Debug = level >= logrus.DebugLevel
	return nil
}

// assumptions resolves preferences then flags over the built-in defaults.
func (a *app) assumptions(cmd *cobra.Command) (domain.GlobalAssumptions, error) {
	g, err := a.prefs.GlobalAssumptions()
	if err != nil {
		return g, err
	}
	return a.applyFlags(cmd, g)
}

// applyFlags overrides g with the global flags the user actually set.
func (a *app) applyFlags(cmd *cobra.Command, g domain.GlobalAssumptions) (domain.GlobalAssumptions, error) {
	flags := cmd.Flags()
	if flags.Changed("exchange-rate") {
		if a.flags.exchangeRate <= 0 {
			return g, fmt.Errorf("%w: --exchange-rate must be positive", domain.ErrInvalidInput)
		}
		g.ExchangeRate = decimal.NewFromFloat(a.flags.exchangeRate)
	}
	if flags.Changed("tax-rate") {
		if a.flags.taxRate < 0 || a.flags.taxRate >= 100 {
			return g, fmt.Errorf("%w: --tax-rate must be in [0, 100)", domain.ErrInvalidInput)
		}
		g.TaxRatePercent = decimal.NewFromFloat(a.flags.taxRate)
	}
	if flags.Changed("model") {
		model, err := domain.ParsePriceModelVariant(a.flags.model)
		if err != nil {
			return g, err
		}
		g.PriceModel = model
	}
	if flags.Changed("currency") {
		g.Currency = strings.ToUpper(strings.TrimSpace(a.flags.currency))
	}
	if flags.Changed("locale") {
		g.Locale = a.flags.locale
	}
	return g.WithDefaults(), nil
}

func (a *app) format() string {
	if a.flags.format != "" {
		return a.flags.format
	}
	if a.prefs.Output.Format != "" {
		return a.prefs.Output.Format
	}
	return "console"
}

func (a *app) outputDir() string {
	if a.flags.outputDir != "" {
		return a.flags.outputDir
	}
	return a.prefs.Output.Directory
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
