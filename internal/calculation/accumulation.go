package calculation

import (
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	money "github.com/fineflow77/btcpowerlawsimulator/pkg/decimal"
)

// Accumulate runs the DCA recurrence over the input's year range. Each
// contributing year buys monthly*12 worth of BTC at the year-end local price;
// later years only revalue the holdings.
func Accumulate(in domain.AccumulationInput) ([]domain.AccumulationRow, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prices, err := YearlyPrices(in.StartYear, in.EndYear, in.Model)
	if err != nil {
		return nil, err
	}

	yearlyContribution := money.NewMoneyFromDecimal(in.MonthlyContribution).Annual()
	totalBTC := in.InitialBTC
	rows := make([]domain.AccumulationRow, 0, len(prices))

	for _, point := range prices {
		priceLocal := money.NewMoneyFromDecimal(point.Price).ToLocal(in.ExchangeRate)

		accumulating := point.Year <= in.ContributionEndYear
		contribution := money.Zero()
		if accumulating {
			contribution = yearlyContribution
		}

		added := contribution.Units(priceLocal.Decimal)
		totalBTC = totalBTC.Add(added)

		rows = append(rows, domain.AccumulationRow{
			Year:           point.Year,
			BTCPrice:       priceLocal.Decimal,
			AddedBTC:       added,
			TotalBTC:       totalBTC,
			TotalValue:     totalBTC.Mul(priceLocal.Decimal),
			IsAccumulating: accumulating,
		})
	}

	return rows, nil
}
