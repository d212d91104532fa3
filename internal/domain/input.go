package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Defaults mirrored by the CLI, the interactive form and the HTTP API.
const (
	DefaultAccumulationStartYear = 2025
	DefaultAccumulationEndYear   = 2050
	DefaultContributionEndYear   = 2040
	DefaultWithdrawalYears       = 25
	DefaultCurrency              = "JPY"
	DefaultLocale                = "ja-JP"

	// MaxYearSpan caps how many yearly rows a single series or ledger may hold.
	MaxYearSpan = 200
)

var (
	// DefaultExchangeRate is the native-to-local conversion rate (1 USD = 150 JPY).
	DefaultExchangeRate = decimal.NewFromInt(150)
	// DefaultTaxRatePercent is the flat tax applied to withdrawals.
	DefaultTaxRatePercent = decimal.RequireFromString("20.315")

	hundred = decimal.NewFromInt(100)
)

// AccumulationInput is one DCA simulation request. MonthlyContribution is in
// local currency; it is annualized (x12) for every contributing year.
type AccumulationInput struct {
	InitialBTC          decimal.Decimal   `json:"initial_btc" yaml:"initial_btc"`
	MonthlyContribution decimal.Decimal   `json:"monthly_contribution" yaml:"monthly_contribution"`
	ContributionEndYear int               `json:"contribution_end_year" yaml:"contribution_end_year"`
	ExchangeRate        decimal.Decimal   `json:"exchange_rate" yaml:"exchange_rate"`
	Model               PriceModelVariant `json:"price_model" yaml:"price_model"`
	StartYear           int               `json:"start_year" yaml:"start_year"`
	EndYear             int               `json:"end_year" yaml:"end_year"`
}

// Validate rejects inputs the accumulation recurrence cannot run on.
func (in AccumulationInput) Validate() error {
	if in.InitialBTC.IsNegative() {
		return fmt.Errorf("%w: initial BTC cannot be negative", ErrInvalidInput)
	}
	if !in.MonthlyContribution.IsPositive() {
		return fmt.Errorf("%w: monthly contribution must be positive", ErrInvalidInput)
	}
	if !in.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}
	if in.Model != Standard && in.Model != Conservative {
		return fmt.Errorf("%w: unknown price model %d", ErrInvalidInput, int(in.Model))
	}
	return CheckYearRange(in.StartYear, in.EndYear)
}

// CheckYearRange rejects an inverted range and one spanning more than
// MaxYearSpan years.
func CheckYearRange(start, end int) error {
	if end < start {
		return fmt.Errorf("%w: end year %d is before start year %d", ErrInvalidRange, end, start)
	}
	if end-start >= MaxYearSpan {
		return fmt.Errorf("%w: %d to %d spans more than %d years", ErrInvalidRange, start, end, MaxYearSpan)
	}
	return nil
}

// WithdrawalPolicy pairs a mode with its amount: a yearly local-currency
// after-tax amount for Fixed, a percentage (e.g. 4 for 4%) for Percentage.
type WithdrawalPolicy struct {
	Mode   WithdrawalMode  `json:"mode" yaml:"mode"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// DecumulationInput is one withdrawal simulation request. The horizon runs
// from StartYear through StartYear+Years, or through EndYear when it is set.
type DecumulationInput struct {
	InitialBTC     decimal.Decimal   `json:"initial_btc" yaml:"initial_btc"`
	Policy         WithdrawalPolicy  `json:"policy" yaml:"policy"`
	TaxRatePercent decimal.Decimal   `json:"tax_rate_percent" yaml:"tax_rate_percent"`
	ExchangeRate   decimal.Decimal   `json:"exchange_rate" yaml:"exchange_rate"`
	Model          PriceModelVariant `json:"price_model" yaml:"price_model"`
	StartYear      int               `json:"start_year" yaml:"start_year"`
	Years          int               `json:"years" yaml:"years"`
	EndYear        int               `json:"end_year,omitempty" yaml:"end_year,omitempty"`
}

// LastYear resolves the inclusive final year of the horizon.
func (in DecumulationInput) LastYear() int {
	if in.EndYear != 0 {
		return in.EndYear
	}
	return in.StartYear + in.Years
}

// Validate rejects inputs the withdrawal recurrence cannot run on.
func (in DecumulationInput) Validate() error {
	if !in.InitialBTC.IsPositive() {
		return fmt.Errorf("%w: initial BTC must be positive", ErrInvalidInput)
	}
	if in.Policy.Mode != Fixed && in.Policy.Mode != Percentage {
		return fmt.Errorf("%w: unknown withdrawal mode %d", ErrInvalidInput, int(in.Policy.Mode))
	}
	if !in.Policy.Amount.IsPositive() {
		return fmt.Errorf("%w: %s withdrawal amount must be positive", ErrInvalidInput, in.Policy.Mode)
	}
	if in.TaxRatePercent.IsNegative() || in.TaxRatePercent.GreaterThanOrEqual(hundred) {
		return fmt.Errorf("%w: tax rate must be in [0, 100), got %s", ErrInvalidInput, in.TaxRatePercent)
	}
	if !in.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}
	if in.Model != Standard && in.Model != Conservative {
		return fmt.Errorf("%w: unknown price model %d", ErrInvalidInput, int(in.Model))
	}
	if in.EndYear == 0 && in.Years < 0 {
		return fmt.Errorf("%w: years cannot be negative", ErrInvalidInput)
	}
	return CheckYearRange(in.StartYear, in.LastYear())
}
