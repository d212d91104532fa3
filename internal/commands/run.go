package commands

import (
	"errors"
	"fmt"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/fineflow77/btcpowerlawsimulator/internal/tui"
	"github.com/spf13/cobra"
)

func newRunCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every scenario in a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.runFile(cmd, file)
			if err != nil {
				return err
			}
			return a.emit(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&file, "config", "c", "", "scenario file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newViewCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Run a scenario file and browse the ledgers full screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.runFile(cmd, file)
			if err != nil {
				return err
			}
			return tui.ShowReport(report)
		},
	}

	cmd.Flags().StringVarP(&file, "config", "c", "", "scenario file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newInteractiveCommand(a *app) *cobra.Command {
	var noView bool

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Describe one scenario in a form and view the result",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.assumptions(cmd)
			if err != nil {
				return err
			}
			cfg, err := tui.PromptScenario(g, calculation.CurrentYear())
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			report, err := a.engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if noView {
				return a.emit(cmd, report)
			}
			return tui.ShowReport(report)
		},
	}

	cmd.Flags().BoolVar(&noView, "no-view", false, "print the report instead of opening the viewer")
	return cmd
}

// runFile loads a scenario file layered over preferences, applies flag
// overrides and runs it.
func (a *app) runFile(cmd *cobra.Command, file string) (*domain.SimulationReport, error) {
	prefs, err := a.prefs.GlobalAssumptions()
	if err != nil {
		return nil, err
	}

	parser := config.NewInputParserWithDefaults(prefs)
	cfg, err := parser.LoadFromFile(file)
	if err != nil {
		return nil, err
	}

	if cfg.GlobalAssumptions, err = a.applyFlags(cmd, cfg.GlobalAssumptions); err != nil {
		return nil, err
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	a.logger.Infof("loaded %d accumulation and %d withdrawal scenarios from %s",
		len(cfg.Accumulation), len(cfg.Withdrawal), file)
	return a.engine.RunScenarios(cmd.Context(), cfg)
}
