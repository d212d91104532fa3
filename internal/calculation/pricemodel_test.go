package calculation

import (
	"fmt"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceKnownValues(t *testing.T) {
	tests := []struct {
		name      string
		dayOffset int
		expected  float64
	}{
		{name: "end of 2009", dayOffset: 362, expected: 0.008567577702859193},
		{name: "end of 2024", dayOffset: 5841, expected: 96891.41189016843},
		{name: "end of 2025", dayOffset: 6206, expected: 138045.02002740937},
		{name: "end of 2050", dayOffset: 15337, expected: 27209717.864575505},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := Price(tt.dayOffset, domain.Standard)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.expected, price.InexactFloat64(), 1e-9)
		})
	}
}

func TestConservativeIsSeventyPercentOfStandard(t *testing.T) {
	for _, day := range []int{1, 2, 362, 1000, 5841, 6206, 9999, 15337, 40000} {
		t.Run(fmt.Sprintf("day %d", day), func(t *testing.T) {
			standard, err := Price(day, domain.Standard)
			require.NoError(t, err)
			conservative, err := Price(day, domain.Conservative)
			require.NoError(t, err)

			assert.True(t, conservative.Equal(standard.Mul(ConservativeFactor)),
				"conservative %s != 0.7 * standard %s", conservative, standard)
		})
	}
}

func TestPriceRejectsNonPositiveDayOffset(t *testing.T) {
	for _, day := range []int{0, -1, -365} {
		_, err := Price(day, domain.Standard)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "day offset %d", day)
	}
}

func TestPriceRejectsUnknownVariant(t *testing.T) {
	_, err := Price(1000, domain.PriceModelVariant(7))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPriceIncreasesWithTime(t *testing.T) {
	previous, err := Price(1, domain.Standard)
	require.NoError(t, err)
	for day := 30; day <= 20000; day += 30 {
		current, err := Price(day, domain.Standard)
		require.NoError(t, err)
		assert.True(t, current.GreaterThan(previous), "price at day %d should exceed the previous sample", day)
		previous = current
	}
}
