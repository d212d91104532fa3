package integration

import (
	"context"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = "../testdata/example_config.yaml"

func loadAndRun(t *testing.T) *domain.SimulationReport {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)

	report, err := calculation.NewSimulationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return report
}

func TestEndToEndCalculation(t *testing.T) {
	report := loadAndRun(t)
	require.Len(t, report.Accumulation, 2)
	require.Len(t, report.Withdrawal, 3)
	assert.Len(t, report.Assumptions, 5)
}

func TestAccumulationScenario(t *testing.T) {
	dca := loadAndRun(t).Accumulation[0]
	require.Len(t, dca.Ledger, 26)

	first := dca.Ledger[0]
	assert.Equal(t, 2025, first.Year)
	assert.InEpsilon(t, 0.005795210865565139, first.AddedBTC.InexactFloat64(), 1e-9)

	for _, row := range dca.Ledger {
		if row.Year > 2040 {
			assert.True(t, row.AddedBTC.IsZero(), "year %d", row.Year)
			assert.False(t, row.IsAccumulating)
		} else {
			assert.True(t, row.AddedBTC.IsPositive(), "year %d", row.Year)
		}
	}
	assert.True(t, dca.Summary.TotalContributed.Equal(decimal.NewFromInt(1_920_000)))
}

func TestConservativeAccumulatesMoreBTC(t *testing.T) {
	report := loadAndRun(t)
	seeded := report.Accumulation[1]
	assert.Equal(t, domain.Conservative, seeded.Input.Model)

	// Same contribution bought at 70% of the price buys 1/0.7 as much BTC.
	standard := seeded.Input
	standard.Model = domain.Standard
	ledger, err := calculation.Accumulate(standard)
	require.NoError(t, err)

	ratio := seeded.Ledger[0].AddedBTC.Div(ledger[0].AddedBTC).InexactFloat64()
	assert.InEpsilon(t, 1/0.7, ratio, 1e-9)
}

func TestWithdrawalDrawsDown(t *testing.T) {
	fixed := loadAndRun(t).Withdrawal[0]
	assert.False(t, fixed.Summary.Depleted)
	require.Len(t, fixed.Ledger, 26)

	prev := fixed.Input.InitialBTC
	for _, row := range fixed.Ledger {
		assert.True(t, row.RemainingBTC.LessThan(prev), "year %d", row.Year)
		prev = row.RemainingBTC
	}
}

func TestWithdrawalDepletes(t *testing.T) {
	heavy := loadAndRun(t).Withdrawal[1]
	require.True(t, heavy.Summary.Depleted)

	last := heavy.Ledger[len(heavy.Ledger)-1]
	assert.True(t, last.RemainingBTC.IsZero())
	assert.True(t, last.WithdrawalRate.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.Depleted, last.State)
	assert.True(t, heavy.Summary.TotalBTCSold.Equal(decimal.NewFromInt(1)))
}

func TestPercentageScenarioOverrides(t *testing.T) {
	pct := loadAndRun(t).Withdrawal[2]
	assert.True(t, pct.Input.TaxRatePercent.IsZero())
	require.Len(t, pct.Ledger, 31)
	for _, row := range pct.Ledger {
		assert.True(t, row.WithdrawalRate.Equal(decimal.NewFromInt(4)))
	}
}
