// Package tui provides the interactive scenario form and the ledger viewer.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Scenario kinds offered by the form.
const (
	KindAccumulation = "accumulation"
	KindWithdrawal   = "withdrawal"
)

// FormValues holds the raw answers. Numbers stay strings until Configuration
// parses them so the form can validate each field as it is typed.
type FormValues struct {
	Kind         string
	Name         string
	InitialBTC   string
	Amount       string // monthly contribution, yearly withdrawal or percent
	Mode         string
	StartYear    string
	EndYear      string
	ContribUntil string
	ExchangeRate string
	TaxRate      string
	Model        string
}

// DefaultFormValues pre-fills the form from the resolved assumptions.
func DefaultFormValues(g domain.GlobalAssumptions, currentYear int) FormValues {
	return FormValues{
		Kind:         KindAccumulation,
		InitialBTC:   "0",
		Amount:       "10000",
		Mode:         domain.Fixed.String(),
		StartYear:    strconv.Itoa(currentYear),
		EndYear:      strconv.Itoa(domain.DefaultAccumulationEndYear),
		ContribUntil: strconv.Itoa(domain.DefaultContributionEndYear),
		ExchangeRate: g.ExchangeRate.String(),
		TaxRate:      g.TaxRatePercent.String(),
		Model:        g.PriceModel.String(),
	}
}

// NewForm builds the scenario form bound to v.
func NewForm(v *FormValues) *huh.Form {
	isAccumulation := func() bool { return v.Kind == KindAccumulation }
	isWithdrawal := func() bool { return v.Kind == KindWithdrawal }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to simulate?").
				Options(
					huh.NewOption("Accumulate (monthly DCA)", KindAccumulation),
					huh.NewOption("Withdraw (spend down holdings)", KindWithdrawal),
				).
				Value(&v.Kind),
			huh.NewInput().
				Title("Scenario name").
				Placeholder("optional").
				Value(&v.Name),
			huh.NewSelect[string]().
				Title("Price model").
				Options(
					huh.NewOption(domain.Standard.Label(), domain.Standard.String()),
					huh.NewOption(domain.Conservative.Label(), domain.Conservative.String()),
				).
				Value(&v.Model),
		),
		huh.NewGroup(
			huh.NewInput().Title("Initial BTC").Value(&v.InitialBTC).Validate(nonNegativeDecimal),
			huh.NewInput().Title("Monthly contribution").Value(&v.Amount).Validate(positiveDecimal),
			huh.NewInput().Title("Contribute until (year)").Value(&v.ContribUntil).Validate(year),
			huh.NewInput().Title("Start year").Value(&v.StartYear).Validate(year),
			huh.NewInput().Title("End year").Value(&v.EndYear).Validate(year),
		).WithHideFunc(isWithdrawal),
		huh.NewGroup(
			huh.NewInput().Title("Initial BTC").Value(&v.InitialBTC).Validate(positiveDecimal),
			huh.NewSelect[string]().
				Title("Withdrawal mode").
				Options(
					huh.NewOption("Fixed yearly amount (after tax)", domain.Fixed.String()),
					huh.NewOption("Percentage of holdings", domain.Percentage.String()),
				).
				Value(&v.Mode),
			huh.NewInput().
				TitleFunc(func() string {
					if v.Mode == domain.Percentage.String() {
						return "Yearly withdrawal (%)"
					}
					return "Yearly withdrawal (after tax)"
				}, &v.Mode).
				Value(&v.Amount).
				Validate(positiveDecimal),
			huh.NewInput().Title("Tax rate (%)").Value(&v.TaxRate).Validate(taxRate),
			huh.NewInput().Title("Start year").Value(&v.StartYear).Validate(year),
			huh.NewInput().Title("End year").Value(&v.EndYear).Validate(year),
		).WithHideFunc(isAccumulation),
		huh.NewGroup(
			huh.NewInput().Title("Exchange rate (local per USD)").Value(&v.ExchangeRate).Validate(positiveDecimal),
		),
	).WithTheme(huh.ThemeCharm())
}

// Configuration converts the answers into a one-scenario configuration
// layered over g.
func (v FormValues) Configuration(g domain.GlobalAssumptions) (*domain.Configuration, error) {
	model, err := domain.ParsePriceModelVariant(v.Model)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("exchange rate", v.ExchangeRate)
	if err != nil {
		return nil, err
	}
	initial, err := parseDecimal("initial BTC", v.InitialBTC)
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal("amount", v.Amount)
	if err != nil {
		return nil, err
	}
	start, err := parseYear("start year", v.StartYear)
	if err != nil {
		return nil, err
	}
	end, err := parseYear("end year", v.EndYear)
	if err != nil {
		return nil, err
	}

	cfg := &domain.Configuration{GlobalAssumptions: g.WithDefaults()}
	cfg.GlobalAssumptions.ExchangeRate = rate
	cfg.GlobalAssumptions.PriceModel = model

	switch v.Kind {
	case KindAccumulation:
		until, err := parseYear("contribution end year", v.ContribUntil)
		if err != nil {
			return nil, err
		}
		cfg.Accumulation = []domain.AccumulationScenario{{
			Name:                strings.TrimSpace(v.Name),
			InitialBTC:          initial,
			MonthlyContribution: amount,
			ContributionEndYear: until,
			StartYear:           start,
			EndYear:             end,
		}}
	case KindWithdrawal:
		mode, err := domain.ParseWithdrawalMode(v.Mode)
		if err != nil {
			return nil, err
		}
		tax, err := parseDecimal("tax rate", v.TaxRate)
		if err != nil {
			return nil, err
		}
		cfg.Withdrawal = []domain.WithdrawalScenario{{
			Name:           strings.TrimSpace(v.Name),
			InitialBTC:     initial,
			Mode:           mode,
			Amount:         amount,
			StartYear:      start,
			EndYear:        end,
			TaxRatePercent: &tax,
		}}
	default:
		return nil, fmt.Errorf("%w: unknown scenario kind %q", domain.ErrInvalidInput, v.Kind)
	}
	return cfg, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidInput, field, s)
	}
	return d, nil
}

func parseYear(field, s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 2009 {
		return 0, fmt.Errorf("%w: %s %q is not a year from 2009 on", domain.ErrInvalidInput, field, s)
	}
	return y, nil
}

func positiveDecimal(s string) error {
	d, err := parseDecimal("value", s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func nonNegativeDecimal(s string) error {
	d, err := parseDecimal("value", s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

func taxRate(s string) error {
	d, err := parseDecimal("tax rate", s)
	if err != nil {
		return err
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func year(s string) error {
	_, err := parseYear("year", s)
	return err
}
