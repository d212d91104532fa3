package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration is the scenario file: shared assumptions plus any number of
// accumulation and withdrawal scenarios.
type Configuration struct {
	GlobalAssumptions GlobalAssumptions      `yaml:"global_assumptions" json:"global_assumptions"`
	Accumulation      []AccumulationScenario `yaml:"accumulation,omitempty" json:"accumulation,omitempty"`
	Withdrawal        []WithdrawalScenario   `yaml:"withdrawal,omitempty" json:"withdrawal,omitempty"`
}

// GlobalAssumptions holds run-wide scalars that scenarios may override.
type GlobalAssumptions struct {
	ExchangeRate   decimal.Decimal   `yaml:"exchange_rate" json:"exchange_rate"`
	TaxRatePercent decimal.Decimal   `yaml:"tax_rate_percent" json:"tax_rate_percent"`
	PriceModel     PriceModelVariant `yaml:"price_model" json:"price_model"`
	Currency       string            `yaml:"currency,omitempty" json:"currency,omitempty"`
	Locale         string            `yaml:"locale,omitempty" json:"locale,omitempty"`
}

// AccumulationScenario is a named DCA plan as written in the scenario file.
type AccumulationScenario struct {
	Name                string             `yaml:"name" json:"name"`
	InitialBTC          decimal.Decimal    `yaml:"initial_btc" json:"initial_btc"`
	MonthlyContribution decimal.Decimal    `yaml:"monthly_contribution" json:"monthly_contribution"`
	ContributionEndYear int                `yaml:"contribution_end_year,omitempty" json:"contribution_end_year,omitempty"`
	StartYear           int                `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	EndYear             int                `yaml:"end_year,omitempty" json:"end_year,omitempty"`
	PriceModel          *PriceModelVariant `yaml:"price_model,omitempty" json:"price_model,omitempty"`
	ExchangeRate        *decimal.Decimal   `yaml:"exchange_rate" json:"exchange_rate,omitempty"`
}

// WithdrawalScenario is a named withdrawal plan as written in the scenario file.
type WithdrawalScenario struct {
	Name           string             `yaml:"name" json:"name"`
	InitialBTC     decimal.Decimal    `yaml:"initial_btc" json:"initial_btc"`
	Mode           WithdrawalMode     `yaml:"mode" json:"mode"`
	Amount         decimal.Decimal    `yaml:"amount" json:"amount"`
	StartYear      int                `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	Years          int                `yaml:"years,omitempty" json:"years,omitempty"`
	EndYear        int                `yaml:"end_year,omitempty" json:"end_year,omitempty"`
	TaxRatePercent *decimal.Decimal   `yaml:"tax_rate_percent" json:"tax_rate_percent,omitempty"`
	PriceModel     *PriceModelVariant `yaml:"price_model,omitempty" json:"price_model,omitempty"`
	ExchangeRate   *decimal.Decimal   `yaml:"exchange_rate" json:"exchange_rate,omitempty"`
}

// DefaultGlobalAssumptions returns the built-in assumptions. Loaders decode
// on top of this value so keys absent from a file keep their defaults.
func DefaultGlobalAssumptions() GlobalAssumptions {
	return GlobalAssumptions{
		ExchangeRate:   DefaultExchangeRate,
		TaxRatePercent: DefaultTaxRatePercent,
		PriceModel:     Standard,
		Currency:       DefaultCurrency,
		Locale:         DefaultLocale,
	}
}

// WithDefaults fills unset display settings. Numeric assumptions are left
// alone: a zero tax rate is meaningful and a zero exchange rate is rejected
// by validation.
func (g GlobalAssumptions) WithDefaults() GlobalAssumptions {
	if g.Currency == "" {
		g.Currency = DefaultCurrency
	}
	if g.Locale == "" {
		g.Locale = DefaultLocale
	}
	return g
}

// Input resolves the scenario against the global assumptions. currentYear
// is used when the scenario leaves its start year unset.
func (s AccumulationScenario) Input(g GlobalAssumptions, currentYear int) AccumulationInput {
	in := AccumulationInput{
		InitialBTC:          s.InitialBTC,
		MonthlyContribution: s.MonthlyContribution,
		ContributionEndYear: s.ContributionEndYear,
		ExchangeRate:        g.ExchangeRate,
		Model:               g.PriceModel,
		StartYear:           s.StartYear,
		EndYear:             s.EndYear,
	}
	if s.ExchangeRate != nil {
		in.ExchangeRate = *s.ExchangeRate
	}
	if s.PriceModel != nil {
		in.Model = *s.PriceModel
	}
	if in.StartYear == 0 {
		in.StartYear = currentYear
	}
	if in.EndYear == 0 {
		in.EndYear = DefaultAccumulationEndYear
	}
	if in.ContributionEndYear == 0 {
		in.ContributionEndYear = DefaultContributionEndYear
	}
	return in
}

// Input resolves the scenario against the global assumptions. A zero tax
// override is honored as 0%; only an absent override falls back.
func (s WithdrawalScenario) Input(g GlobalAssumptions, currentYear int) DecumulationInput {
	in := DecumulationInput{
		InitialBTC:     s.InitialBTC,
		Policy:         WithdrawalPolicy{Mode: s.Mode, Amount: s.Amount},
		TaxRatePercent: g.TaxRatePercent,
		ExchangeRate:   g.ExchangeRate,
		Model:          g.PriceModel,
		StartYear:      s.StartYear,
		Years:          s.Years,
		EndYear:        s.EndYear,
	}
	if s.TaxRatePercent != nil {
		in.TaxRatePercent = *s.TaxRatePercent
	}
	if s.ExchangeRate != nil {
		in.ExchangeRate = *s.ExchangeRate
	}
	if s.PriceModel != nil {
		in.Model = *s.PriceModel
	}
	if in.StartYear == 0 {
		in.StartYear = currentYear
	}
	if in.Years == 0 && in.EndYear == 0 {
		in.Years = DefaultWithdrawalYears
	}
	return in
}

// GenerateAssumptions lists the modeling assumptions rendered with reports.
func (g GlobalAssumptions) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Price model: %s, log10(price) = 5.84*log10(days since 2009-01-03) - 17.01", g.PriceModel.Label()),
		"Prices are end-of-year (Dec 31) snapshots",
		fmt.Sprintf("Exchange rate: 1 USD = %s %s", g.ExchangeRate.String(), g.Currency),
		fmt.Sprintf("Flat withdrawal tax: %s%%, withdrawals grossed up to net the target", g.TaxRatePercent.String()),
		"Monthly contributions are annualized (x12) and bought at the year-end price",
	}
}
