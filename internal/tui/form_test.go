package tui

import (
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFormValues(t *testing.T) {
	v := DefaultFormValues(domain.DefaultGlobalAssumptions(), 2027)
	assert.Equal(t, KindAccumulation, v.Kind)
	assert.Equal(t, "2027", v.StartYear)
	assert.Equal(t, "2050", v.EndYear)
	assert.Equal(t, "2040", v.ContribUntil)
	assert.Equal(t, "150", v.ExchangeRate)
	assert.Equal(t, "20.315", v.TaxRate)
	assert.Equal(t, "standard", v.Model)
	assert.NotNil(t, NewForm(&v))
}

func TestFormValuesAccumulation(t *testing.T) {
	v := DefaultFormValues(domain.DefaultGlobalAssumptions(), 2025)
	v.Name = "  stack sats "
	v.Amount = "25,000"
	v.InitialBTC = "0.1"
	v.Model = "conservative"

	cfg, err := v.Configuration(domain.DefaultGlobalAssumptions())
	require.NoError(t, err)
	assert.Empty(t, cfg.Withdrawal)
	require.Len(t, cfg.Accumulation, 1)

	s := cfg.Accumulation[0]
	assert.Equal(t, "stack sats", s.Name)
	assert.True(t, s.MonthlyContribution.Equal(decimal.NewFromInt(25000)))
	assert.True(t, s.InitialBTC.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, 2040, s.ContributionEndYear)
	assert.Equal(t, domain.Conservative, cfg.GlobalAssumptions.PriceModel)
	assert.Equal(t, "JPY", cfg.GlobalAssumptions.Currency)
}

func TestFormValuesWithdrawal(t *testing.T) {
	v := DefaultFormValues(domain.DefaultGlobalAssumptions(), 2030)
	v.Kind = KindWithdrawal
	v.InitialBTC = "1"
	v.Mode = "percentage"
	v.Amount = "4"
	v.TaxRate = "0"
	v.EndYear = "2055"

	cfg, err := v.Configuration(domain.DefaultGlobalAssumptions())
	require.NoError(t, err)
	require.Len(t, cfg.Withdrawal, 1)

	w := cfg.Withdrawal[0]
	assert.Equal(t, domain.Percentage, w.Mode)
	require.NotNil(t, w.TaxRatePercent)
	assert.True(t, w.TaxRatePercent.IsZero())
	assert.Equal(t, 2030, w.StartYear)
	assert.Equal(t, 2055, w.EndYear)

	in := w.Input(cfg.GlobalAssumptions, 2030)
	assert.NoError(t, in.Validate())
}

func TestFormValuesErrors(t *testing.T) {
	testCases := map[string]func(*FormValues){
		"bad number":   func(v *FormValues) { v.Amount = "lots" },
		"bad year":     func(v *FormValues) { v.StartYear = "1999" },
		"bad model":    func(v *FormValues) { v.Model = "moon" },
		"bad kind":     func(v *FormValues) { v.Kind = "gift" },
		"bad contrib":  func(v *FormValues) { v.ContribUntil = "" },
		"bad rate":     func(v *FormValues) { v.ExchangeRate = "x" },
		"bad tax text": func(v *FormValues) { v.Kind, v.TaxRate = KindWithdrawal, "n/a" },
	}
	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			v := DefaultFormValues(domain.DefaultGlobalAssumptions(), 2025)
			mutate(&v)
			_, err := v.Configuration(domain.DefaultGlobalAssumptions())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFieldValidators(t *testing.T) {
	assert.NoError(t, positiveDecimal("1,000"))
	assert.Error(t, positiveDecimal("0"))
	assert.NoError(t, nonNegativeDecimal("0"))
	assert.Error(t, nonNegativeDecimal("-0.1"))
	assert.NoError(t, taxRate("20.315"))
	assert.Error(t, taxRate("100"))
	assert.NoError(t, year("2030"))
	assert.Error(t, year("20x0"))
}
