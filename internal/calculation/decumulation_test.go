package calculation

import (
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWithdrawalInput(amount int64) domain.DecumulationInput {
	return domain.DecumulationInput{
		InitialBTC:     decimal.NewFromInt(1),
		Policy:         domain.WithdrawalPolicy{Mode: domain.Fixed, Amount: decimal.NewFromInt(amount)},
		TaxRatePercent: decimal.RequireFromString("20.315"),
		ExchangeRate:   decimal.NewFromInt(150),
		Model:          domain.Standard,
		StartYear:      2025,
		Years:          25,
	}
}

func TestDecumulateFixedAmountDrawsDown(t *testing.T) {
	rows, err := Decumulate(fixedWithdrawalInput(1_000_000))
	require.NoError(t, err)
	require.Len(t, rows, 26)

	assert.Equal(t, 2025, rows[0].Year)
	assert.Equal(t, 2050, rows[25].Year)
	assert.InEpsilon(t, 0.9393945863340535, rows[0].RemainingBTC.InexactFloat64(), 1e-9)
	assert.InEpsilon(t, 0.8959871241491029, rows[1].RemainingBTC.InexactFloat64(), 1e-9)

	for i, row := range rows {
		assert.Equal(t, domain.Active, row.State, "year %d", row.Year)
		assert.True(t, row.WithdrawalAmount.Equal(decimal.NewFromInt(1_000_000)))
		assert.True(t, row.AssetValue.Equal(row.RemainingBTC.Mul(row.BTCPrice)))
		if i > 0 {
			assert.True(t, row.RemainingBTC.LessThan(rows[i-1].RemainingBTC), "holdings must shrink in %d", row.Year)
		}
	}
}

func TestDecumulateGrossUpIsNettedByTax(t *testing.T) {
	in := fixedWithdrawalInput(1_000_000)
	rows, err := Decumulate(in)
	require.NoError(t, err)

	row := rows[0]
	net := row.GrossWithdrawalNative.Mul(decimal.NewFromInt(1).Sub(in.TaxRatePercent.Div(decimal.NewFromInt(100))))
	assert.InEpsilon(t, 1_000_000.0/150, net.InexactFloat64(), 1e-12)
	assert.InEpsilon(t, row.GrossWithdrawalNative.InexactFloat64(),
		row.WithdrawnBTC.Mul(row.BTCPrice.Div(in.ExchangeRate)).InexactFloat64(), 1e-9)
}

func TestDecumulateZeroTaxSellsTargetExactly(t *testing.T) {
	in := fixedWithdrawalInput(1_500_000)
	in.TaxRatePercent = decimal.Zero
	rows, err := Decumulate(in)
	require.NoError(t, err)

	assert.True(t, rows[0].GrossWithdrawalNative.Equal(decimal.NewFromInt(10_000)))
}

func TestDecumulateDepletion(t *testing.T) {
	rows, err := Decumulate(fixedWithdrawalInput(10_000_000))
	require.NoError(t, err)
	require.Len(t, rows, 2, "ledger ends with the depletion year")

	first := rows[0]
	assert.Equal(t, domain.Active, first.State)
	assert.InEpsilon(t, 0.6060541366594654, first.WithdrawnBTC.InexactFloat64(), 1e-9)
	assert.InEpsilon(t, 0.3939458633405346, first.RemainingBTC.InexactFloat64(), 1e-9)

	last := rows[1]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, domain.Depleted, last.State)
	assert.True(t, last.IsDepleted())
	assert.True(t, last.RemainingBTC.IsZero())
	assert.True(t, last.AssetValue.IsZero())
	assert.True(t, last.WithdrawnBTC.Equal(first.RemainingBTC), "depletion year sells only what was held")
	assert.True(t, last.WithdrawalRate.Equal(decimal.NewFromInt(100)))
}

func TestDecumulateDepletionYearAmountsMatchWhatWasSold(t *testing.T) {
	in := fixedWithdrawalInput(10_000_000)
	rows, err := Decumulate(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	last := rows[1]
	priceNative := last.BTCPrice.Div(in.ExchangeRate)
	proceeds := last.WithdrawnBTC.Mul(priceNative)
	assert.InEpsilon(t, proceeds.InexactFloat64(), last.GrossWithdrawalNative.InexactFloat64(), 1e-9)

	keep := decimal.NewFromInt(1).Sub(in.TaxRatePercent.Div(decimal.NewFromInt(100)))
	net := proceeds.Mul(keep).Mul(in.ExchangeRate)
	assert.InEpsilon(t, net.InexactFloat64(), last.WithdrawalAmount.InexactFloat64(), 1e-9)
	assert.True(t, last.WithdrawalAmount.LessThan(in.Policy.Amount), "short final year reports less than the target")
	assert.True(t, rows[0].WithdrawalAmount.Equal(in.Policy.Amount))
}

func TestDecumulateIsDeterministic(t *testing.T) {
	percentage := fixedWithdrawalInput(0)
	percentage.Policy = domain.WithdrawalPolicy{Mode: domain.Percentage, Amount: decimal.NewFromInt(4)}

	tests := []struct {
		name string
		in   domain.DecumulationInput
	}{
		{"fixed", fixedWithdrawalInput(1_000_000)},
		{"fixed until depleted", fixedWithdrawalInput(10_000_000)},
		{"percentage", percentage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Decumulate(tt.in)
			require.NoError(t, err)
			second, err := Decumulate(tt.in)
			require.NoError(t, err)

			require.Len(t, second, len(first))
			for i := range first {
				assert.Equal(t, first[i].Year, second[i].Year)
				assert.Equal(t, first[i].State, second[i].State)
				assert.Equal(t, first[i].RemainingBTC.String(), second[i].RemainingBTC.String(), "year %d", first[i].Year)
				assert.Equal(t, first[i].WithdrawnBTC.String(), second[i].WithdrawnBTC.String(), "year %d", first[i].Year)
				assert.Equal(t, first[i].WithdrawalAmount.String(), second[i].WithdrawalAmount.String(), "year %d", first[i].Year)
				assert.Equal(t, first[i].GrossWithdrawalNative.String(), second[i].GrossWithdrawalNative.String(), "year %d", first[i].Year)
				assert.Equal(t, first[i].WithdrawalRate.String(), second[i].WithdrawalRate.String(), "year %d", first[i].Year)
			}
		})
	}
}

func TestDecumulatePercentageMode(t *testing.T) {
	in := fixedWithdrawalInput(0)
	in.Policy = domain.WithdrawalPolicy{Mode: domain.Percentage, Amount: decimal.NewFromInt(4)}

	rows, err := Decumulate(in)
	require.NoError(t, err)
	require.Len(t, rows, 26)

	expected := []float64{0.9498023467402898, 0.9021244978733618, 0.8568399651320247}
	for i, want := range expected {
		assert.InEpsilon(t, want, rows[i].RemainingBTC.InexactFloat64(), 1e-9, "year %d", rows[i].Year)
	}
	for _, row := range rows {
		assert.True(t, row.WithdrawalRate.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, domain.Active, row.State)
		assert.True(t, row.RemainingBTC.IsPositive())
	}
}

func TestDecumulateFixedModeRate(t *testing.T) {
	rows, err := Decumulate(fixedWithdrawalInput(1_000_000))
	require.NoError(t, err)

	row := rows[0]
	want := row.WithdrawnBTC.Div(row.RemainingBTC).Mul(decimal.NewFromInt(100))
	assert.True(t, row.WithdrawalRate.Equal(want))
}

func TestDecumulateHorizon(t *testing.T) {
	t.Run("zero years is a single row", func(t *testing.T) {
		in := fixedWithdrawalInput(1_000_000)
		in.Years = 0
		rows, err := Decumulate(in)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("end year overrides years", func(t *testing.T) {
		in := fixedWithdrawalInput(1_000_000)
		in.EndYear = 2030
		rows, err := Decumulate(in)
		require.NoError(t, err)
		require.Len(t, rows, 6)
		assert.Equal(t, 2030, rows[5].Year)
	})
}

func TestDecumulateConservativeDrawsFaster(t *testing.T) {
	standard, err := Decumulate(fixedWithdrawalInput(1_000_000))
	require.NoError(t, err)

	in := fixedWithdrawalInput(1_000_000)
	in.Model = domain.Conservative
	conservative, err := Decumulate(in)
	require.NoError(t, err)

	assert.True(t, conservative[0].WithdrawnBTC.GreaterThan(standard[0].WithdrawnBTC))
}

func TestDecumulateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.DecumulationInput)
		want   error
	}{
		{"zero holdings", func(in *domain.DecumulationInput) { in.InitialBTC = decimal.Zero }, domain.ErrInvalidInput},
		{"zero amount", func(in *domain.DecumulationInput) { in.Policy.Amount = decimal.Zero }, domain.ErrInvalidInput},
		{"unknown mode", func(in *domain.DecumulationInput) { in.Policy.Mode = domain.WithdrawalMode(5) }, domain.ErrInvalidInput},
		{"negative tax", func(in *domain.DecumulationInput) { in.TaxRatePercent = decimal.NewFromInt(-1) }, domain.ErrInvalidInput},
		{"tax of 100", func(in *domain.DecumulationInput) { in.TaxRatePercent = decimal.NewFromInt(100) }, domain.ErrInvalidInput},
		{"zero exchange rate", func(in *domain.DecumulationInput) { in.ExchangeRate = decimal.Zero }, domain.ErrInvalidInput},
		{"unknown model", func(in *domain.DecumulationInput) { in.Model = domain.PriceModelVariant(3) }, domain.ErrInvalidInput},
		{"negative years", func(in *domain.DecumulationInput) { in.Years = -1 }, domain.ErrInvalidInput},
		{"end before start", func(in *domain.DecumulationInput) { in.EndYear = 2020 }, domain.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixedWithdrawalInput(1_000_000)
			tt.mutate(&in)
			rows, err := Decumulate(in)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, rows)
		})
	}
}
