package calculation

import (
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	money "github.com/fineflow77/btcpowerlawsimulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SummarizeAccumulation condenses a DCA ledger produced from in.
func SummarizeAccumulation(name string, in domain.AccumulationInput, ledger []domain.AccumulationRow) domain.AccumulationSummary {
	summary := domain.AccumulationSummary{
		Name:  name,
		Years: len(ledger),
	}
	if len(ledger) == 0 {
		return summary
	}

	yearly := money.NewMoneyFromDecimal(in.MonthlyContribution).Annual()
	contributed := money.Zero()
	for _, row := range ledger {
		if row.IsAccumulating {
			summary.ContributingYears++
			contributed = contributed.Add(yearly)
		}
	}

	last := ledger[len(ledger)-1]
	summary.TotalContributed = contributed.Decimal
	summary.FinalBTC = last.TotalBTC
	summary.FinalValue = last.TotalValue
	summary.FinalPrice = last.BTCPrice

	invested := contributed.Decimal.Add(in.InitialBTC.Mul(ledger[0].BTCPrice))
	if invested.IsPositive() {
		summary.ValueMultiple = last.TotalValue.Div(invested)
	}
	return summary
}

// SummarizeDecumulation condenses a withdrawal ledger.
func SummarizeDecumulation(name string, ledger []domain.DecumulationRow) domain.DecumulationSummary {
	summary := domain.DecumulationSummary{
		Name:           name,
		TotalWithdrawn: decimal.Zero,
		TotalBTCSold:   decimal.Zero,
	}
	for _, row := range ledger {
		summary.TotalWithdrawn = summary.TotalWithdrawn.Add(row.WithdrawalAmount)
		summary.TotalBTCSold = summary.TotalBTCSold.Add(row.WithdrawnBTC)
		if row.IsDepleted() {
			summary.Depleted = true
			summary.DepletionYear = row.Year
			continue
		}
		summary.YearsFunded++
	}
	if len(ledger) > 0 {
		last := ledger[len(ledger)-1]
		summary.FinalBTC = last.RemainingBTC
		summary.FinalValue = last.AssetValue
	}
	return summary
}
