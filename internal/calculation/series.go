package calculation

import (
	"fmt"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/fineflow77/btcpowerlawsimulator/pkg/dateutil"
)

// YearlyPrices returns one end-of-year price point per year in
// [startYear, endYear], ascending. Years ending on or before the epoch
// are rejected, as are ranges longer than domain.MaxYearSpan.
func YearlyPrices(startYear, endYear int, variant domain.PriceModelVariant) ([]domain.YearlyPricePoint, error) {
	if err := domain.CheckYearRange(startYear, endYear); err != nil {
		return nil, err
	}

	points := make([]domain.YearlyPricePoint, 0, dateutil.YearsInclusive(startYear, endYear))
	for year := startYear; year <= endYear; year++ {
		price, err := Price(dateutil.YearEndDayOffset(year), variant)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		points = append(points, domain.YearlyPricePoint{Year: year, Price: price})
	}
	return points, nil
}
