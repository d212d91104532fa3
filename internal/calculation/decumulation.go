package calculation

import (
	"fmt"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	money "github.com/fineflow77/btcpowerlawsimulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	decimalHundred = decimal.NewFromInt(100)
)

// Decumulate runs the withdrawal recurrence. Every year's after-tax target is
// converted to native currency, grossed up for tax and sold at the year-end
// price. Holdings are floored at zero and the ledger ends with the first
// depleted year, whose amounts reflect only what was left to sell.
func Decumulate(in domain.DecumulationInput) ([]domain.DecumulationRow, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prices, err := YearlyPrices(in.StartYear, in.LastYear(), in.Model)
	if err != nil {
		return nil, err
	}

	remaining := in.InitialBTC
	rows := make([]domain.DecumulationRow, 0, len(prices))

	for _, point := range prices {
		priceNative := point.Price
		priceLocal := money.NewMoneyFromDecimal(priceNative).ToLocal(in.ExchangeRate)

		target, err := withdrawalTarget(in.Policy, remaining, priceLocal)
		if err != nil {
			return nil, err
		}

		gross, err := target.ToNative(in.ExchangeRate).GrossUp(in.TaxRatePercent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		withdrawn := gross.Units(priceNative)
		held := remaining
		remaining = remaining.Sub(withdrawn)

		state := domain.Active
		sold := withdrawn
		if !remaining.IsPositive() {
			remaining = decimal.Zero
			state = domain.Depleted
			sold = held
			gross = money.NewMoneyFromDecimal(held.Mul(priceNative))
			target = gross.Sub(gross.PercentOf(in.TaxRatePercent)).ToLocal(in.ExchangeRate)
		}

		rows = append(rows, domain.DecumulationRow{
			Year:                  point.Year,
			BTCPrice:              priceLocal.Decimal,
			RemainingBTC:          remaining,
			AssetValue:            remaining.Mul(priceLocal.Decimal),
			WithdrawalAmount:      target.Decimal,
			GrossWithdrawalNative: gross.Decimal,
			WithdrawnBTC:          sold,
			WithdrawalRate:        effectiveWithdrawalRate(in.Policy, withdrawn, remaining),
			State:                 state,
		})

		if state == domain.Depleted {
			break
		}
	}

	return rows, nil
}

// withdrawalTarget is the year's after-tax withdrawal in local currency.
func withdrawalTarget(policy domain.WithdrawalPolicy, remaining decimal.Decimal, priceLocal money.Money) (money.Money, error) {
	switch policy.Mode {
	case domain.Fixed:
		return money.NewMoneyFromDecimal(policy.Amount), nil
	case domain.Percentage:
		return priceLocal.Mul(remaining).PercentOf(policy.Amount), nil
	default:
		return money.Money{}, fmt.Errorf("%w: unknown withdrawal mode %d", domain.ErrInvalidInput, int(policy.Mode))
	}
}

// effectiveWithdrawalRate reports the configured rate in percentage mode.
// In fixed mode it is the BTC sold relative to what remains, and 100 once
// nothing remains.
func effectiveWithdrawalRate(policy domain.WithdrawalPolicy, withdrawn, remaining decimal.Decimal) decimal.Decimal {
	if policy.Mode == domain.Percentage {
		return policy.Amount
	}
	if remaining.IsZero() {
		return decimalHundred
	}
	return withdrawn.Div(remaining).Mul(decimalHundred)
}
