package commands

import (
	"fmt"
	"strings"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/fineflow77/btcpowerlawsimulator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPricesCommand(a *app) *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Print the model's year-end price for a range of years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.assumptions(cmd)
			if err != nil {
				return err
			}
			if start == 0 {
				start = calculation.CurrentYear()
			}

			points, err := calculation.YearlyPrices(start, end, g.PriceModel)
			if err != nil {
				return err
			}
			return output.RenderPrices(cmd.OutOrStdout(), output.PriceTable{
				Model:        g.PriceModel,
				ExchangeRate: g.ExchangeRate,
				Currency:     g.Currency,
				Locale:       g.Locale,
				Prices:       points,
			}, a.format())
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "first year (default current year)")
	cmd.Flags().IntVar(&end, "end", domain.DefaultAccumulationEndYear, "last year")
	return cmd
}

func newAccumulateCommand(a *app) *cobra.Command {
	var (
		s                   domain.AccumulationScenario
		initial, contribute string
	)

	cmd := &cobra.Command{
		Use:   "accumulate",
		Short: "Simulate monthly dollar-cost averaging into BTC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if s.InitialBTC, err = parseDecimalFlag("initial-btc", initial); err != nil {
				return err
			}
			if s.MonthlyContribution, err = parseDecimalFlag("monthly", contribute); err != nil {
				return err
			}
			g, err := a.assumptions(cmd)
			if err != nil {
				return err
			}
			return a.runAndEmit(cmd, &domain.Configuration{
				GlobalAssumptions: g,
				Accumulation:      []domain.AccumulationScenario{s},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.Name, "name", "", "scenario name")
	f.StringVar(&initial, "initial-btc", "0", "BTC held before the first year")
	f.StringVar(&contribute, "monthly", "", "monthly contribution in local currency (required)")
	_ = cmd.MarkFlagRequired("monthly")
	f.IntVar(&s.ContributionEndYear, "contribute-until", 0, "last contributing year (default 2040)")
	f.IntVar(&s.StartYear, "start", 0, "first simulated year (default current year)")
	f.IntVar(&s.EndYear, "end", 0, "last simulated year (default 2050)")
	return cmd
}

func newWithdrawCommand(a *app) *cobra.Command {
	var (
		s                     domain.WithdrawalScenario
		initial, amount, mode string
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Simulate spending down BTC holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if s.InitialBTC, err = parseDecimalFlag("initial-btc", initial); err != nil {
				return err
			}
			if s.Amount, err = parseDecimalFlag("amount", amount); err != nil {
				return err
			}
			if s.Mode, err = domain.ParseWithdrawalMode(mode); err != nil {
				return err
			}
			// Years == 0 means unset in a scenario, so pin an explicit
			// --years 0 to the start year alone.
			if cmd.Flags().Changed("years") && s.Years == 0 && s.EndYear == 0 {
				if s.StartYear == 0 {
					s.StartYear = calculation.CurrentYear()
				}
				s.EndYear = s.StartYear
			}
			g, err := a.assumptions(cmd)
			if err != nil {
				return err
			}
			return a.runAndEmit(cmd, &domain.Configuration{
				GlobalAssumptions: g,
				Withdrawal:        []domain.WithdrawalScenario{s},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.Name, "name", "", "scenario name")
	f.StringVar(&initial, "initial-btc", "", "BTC held when withdrawals start (required)")
	_ = cmd.MarkFlagRequired("initial-btc")
	f.StringVar(&mode, "mode", domain.Fixed.String(), "fixed (after-tax local amount per year) or percentage")
	f.StringVar(&amount, "amount", "", "yearly amount, or percent of holdings in percentage mode (required)")
	_ = cmd.MarkFlagRequired("amount")
	f.IntVar(&s.StartYear, "start", 0, "first withdrawal year (default current year)")
	f.IntVar(&s.Years, "years", 0, "years after the start year to simulate (default 25)")
	f.IntVar(&s.EndYear, "end", 0, "last simulated year; overrides --years")
	return cmd
}

func (a *app) runAndEmit(cmd *cobra.Command, cfg *domain.Configuration) error {
	report, err := a.engine.RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return a.emit(cmd, report)
}

// emit renders the report to stdout, or to files when an output directory
// is configured.
func (a *app) emit(cmd *cobra.Command, report *domain.SimulationReport) error {
	format := a.format()
	dir := a.outputDir()

	if dir == "" {
		if strings.EqualFold(format, "all") {
			return fmt.Errorf("format \"all\" needs --output-dir")
		}
		return output.Render(cmd.OutOrStdout(), report, format)
	}

	written, err := output.GenerateReport(report, format, dir)
	for _, name := range written {
		printf(cmd.OutOrStdout(), "Wrote %s\n", name)
	}
	return err
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", domain.ErrInvalidInput, name, value)
	}
	return d, nil
}
