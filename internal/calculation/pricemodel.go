package calculation

import (
	"fmt"
	"math"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Power-law coefficients: log10(price) = PowerLawSlope*log10(days) + PowerLawIntercept.
const (
	PowerLawSlope     = 5.84
	PowerLawIntercept = -17.01
)

// ConservativeFactor scales the standard curve for the conservative variant.
var ConservativeFactor = decimal.NewFromFloat(0.7)

// Price returns the model price in native currency (USD) dayOffset days
// after the genesis epoch.
func Price(dayOffset int, variant domain.PriceModelVariant) (decimal.Decimal, error) {
	if dayOffset <= 0 {
		return decimal.Zero, fmt.Errorf("%w: day offset must be positive, got %d", domain.ErrInvalidInput, dayOffset)
	}

	logPrice := PowerLawSlope*math.Log10(float64(dayOffset)) + PowerLawIntercept
	standard := decimal.NewFromFloat(math.Pow(10, logPrice))

	switch variant {
	case domain.Standard:
		return standard, nil
	case domain.Conservative:
		return standard.Mul(ConservativeFactor), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown price model %d", domain.ErrInvalidInput, int(variant))
	}
}
