package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearlyPricePoint is the model price (native currency) on Dec 31 of Year.
type YearlyPricePoint struct {
	Year  int             `json:"year"`
	Price decimal.Decimal `json:"price"`
}

// AccumulationRow is one year of a DCA ledger. BTCPrice and TotalValue are
// in local currency.
type AccumulationRow struct {
	Year           int             `json:"year"`
	BTCPrice       decimal.Decimal `json:"btc_price"`
	AddedBTC       decimal.Decimal `json:"added_btc"`
	TotalBTC       decimal.Decimal `json:"total_btc"`
	TotalValue     decimal.Decimal `json:"total_value"`
	IsAccumulating bool            `json:"is_accumulating"`
}

// DecumulationRow is one year of a withdrawal ledger.
type DecumulationRow struct {
	Year         int             `json:"year"`
	BTCPrice     decimal.Decimal `json:"btc_price"`
	RemainingBTC decimal.Decimal `json:"remaining_btc"`
	AssetValue   decimal.Decimal `json:"asset_value"`

	// WithdrawalAmount is the after-tax local-currency amount for the year.
	// It equals the target except in the depletion year, where it is what
	// the remaining holdings fetch.
	WithdrawalAmount decimal.Decimal `json:"withdrawal_amount"`
	// GrossWithdrawalNative is the pre-tax native-currency amount sold.
	GrossWithdrawalNative decimal.Decimal `json:"gross_withdrawal_native"`
	WithdrawnBTC          decimal.Decimal `json:"withdrawn_btc"`
	// WithdrawalRate is a percentage (4 means 4%).
	WithdrawalRate decimal.Decimal   `json:"withdrawal_rate"`
	State          DecumulationState `json:"state"`
}

// IsDepleted reports whether this row reached the terminal state.
func (r DecumulationRow) IsDepleted() bool {
	return r.State == Depleted
}

// AccumulationSummary condenses a DCA ledger for reports.
type AccumulationSummary struct {
	Name              string          `json:"name"`
	Years             int             `json:"years"`
	ContributingYears int             `json:"contributing_years"`
	TotalContributed  decimal.Decimal `json:"total_contributed"`
	FinalBTC          decimal.Decimal `json:"final_btc"`
	FinalValue        decimal.Decimal `json:"final_value"`
	FinalPrice        decimal.Decimal `json:"final_price"`
	// ValueMultiple is FinalValue / (TotalContributed + initial holdings at
	// first-year price); zero when nothing was invested.
	ValueMultiple decimal.Decimal `json:"value_multiple"`
}

// DecumulationSummary condenses a withdrawal ledger for reports.
type DecumulationSummary struct {
	Name           string          `json:"name"`
	YearsFunded    int             `json:"years_funded"`
	Depleted       bool            `json:"depleted"`
	DepletionYear  int             `json:"depletion_year,omitempty"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	TotalBTCSold   decimal.Decimal `json:"total_btc_sold"`
	FinalBTC       decimal.Decimal `json:"final_btc"`
	FinalValue     decimal.Decimal `json:"final_value"`
}

// AccumulationResult is a DCA ledger together with the input that produced it.
type AccumulationResult struct {
	Name    string              `json:"name"`
	Input   AccumulationInput   `json:"input"`
	Ledger  []AccumulationRow   `json:"ledger"`
	Summary AccumulationSummary `json:"summary"`
}

// DecumulationResult is a withdrawal ledger together with its input.
type DecumulationResult struct {
	Name    string              `json:"name"`
	Input   DecumulationInput   `json:"input"`
	Ledger  []DecumulationRow   `json:"ledger"`
	Summary DecumulationSummary `json:"summary"`
}

// SimulationReport is everything one run hands to the output layer.
type SimulationReport struct {
	RunID        string               `json:"run_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Currency     string               `json:"currency"`
	Locale       string               `json:"locale"`
	Accumulation []AccumulationResult `json:"accumulation,omitempty"`
	Withdrawal   []DecumulationResult `json:"withdrawal,omitempty"`
	Assumptions  []string             `json:"assumptions"`
}
