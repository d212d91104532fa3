package calculation

import (
	"context"
	"fmt"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/google/uuid"
)

// Logger receives the engine's progress messages. *logrus.Logger and
// *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// SimulationEngine runs accumulation and withdrawal scenarios and assembles
// reports. It holds no per-run state, so one engine can serve concurrent
// callers.
type SimulationEngine struct {
	Debug  bool // log every ledger row at debug level
	Logger Logger
}

// NewSimulationEngine creates an engine with a no-op logger.
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// RunAccumulation runs one DCA scenario and summarizes it.
func (se *SimulationEngine) RunAccumulation(ctx context.Context, name string, in domain.AccumulationInput) (*domain.AccumulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger, err := Accumulate(in)
	if err != nil {
		return nil, fmt.Errorf("accumulation %q: %w", name, err)
	}

	summary := SummarizeAccumulation(name, in, ledger)
	se.Logger.Infof("accumulation %q: %d years, final %s BTC worth %s",
		name, summary.Years, summary.FinalBTC.StringFixed(4), summary.FinalValue.StringFixed(0))
	if se.Debug {
		for _, row := range ledger {
			se.Logger.Debugf("  %d price=%s added=%s total=%s value=%s accumulating=%t",
				row.Year, row.BTCPrice.StringFixed(0), row.AddedBTC.StringFixed(8),
				row.TotalBTC.StringFixed(8), row.TotalValue.StringFixed(0), row.IsAccumulating)
		}
	}

	return &domain.AccumulationResult{Name: name, Input: in, Ledger: ledger, Summary: summary}, nil
}

// RunWithdrawal runs one withdrawal scenario and summarizes it.
func (se *SimulationEngine) RunWithdrawal(ctx context.Context, name string, in domain.DecumulationInput) (*domain.DecumulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger, err := Decumulate(in)
	if err != nil {
		return nil, fmt.Errorf("withdrawal %q: %w", name, err)
	}

	summary := SummarizeDecumulation(name, ledger)
	if summary.Depleted {
		se.Logger.Warnf("withdrawal %q: holdings depleted in %d after %d funded years",
			name, summary.DepletionYear, summary.YearsFunded)
	} else {
		se.Logger.Infof("withdrawal %q: %d years funded, %s BTC left",
			name, summary.YearsFunded, summary.FinalBTC.StringFixed(4))
	}
	if se.Debug {
		for _, row := range ledger {
			se.Logger.Debugf("  %d price=%s withdrawn=%s remaining=%s rate=%s%% state=%s",
				row.Year, row.BTCPrice.StringFixed(0), row.WithdrawnBTC.StringFixed(8),
				row.RemainingBTC.StringFixed(8), row.WithdrawalRate.StringFixed(2), row.State)
		}
	}

	return &domain.DecumulationResult{Name: name, Input: in, Ledger: ledger, Summary: summary}, nil
}

// RunScenarios runs every scenario in the configuration and returns the
// combined report.
func (se *SimulationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.SimulationReport, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: configuration is required", domain.ErrInvalidInput)
	}

	global := config.GlobalAssumptions.WithDefaults()
	year := CurrentYear()
	report := NewReport(global)

	for i, scenario := range config.Accumulation {
		name := scenarioName(scenario.Name, "accumulation", i)
		result, err := se.RunAccumulation(ctx, name, scenario.Input(global, year))
		if err != nil {
			return nil, fmt.Errorf("RunScenarios failed: %w", err)
		}
		report.Accumulation = append(report.Accumulation, *result)
	}

	for i, scenario := range config.Withdrawal {
		name := scenarioName(scenario.Name, "withdrawal", i)
		result, err := se.RunWithdrawal(ctx, name, scenario.Input(global, year))
		if err != nil {
			return nil, fmt.Errorf("RunScenarios failed: %w", err)
		}
		report.Withdrawal = append(report.Withdrawal, *result)
	}

	return report, nil
}

// NewReport starts an empty report stamped with a fresh run ID.
func NewReport(global domain.GlobalAssumptions) *domain.SimulationReport {
	global = global.WithDefaults()
	return &domain.SimulationReport{
		RunID:       uuid.NewString(),
		GeneratedAt: nowFunc(),
		Currency:    global.Currency,
		Locale:      global.Locale,
		Assumptions: global.GenerateAssumptions(),
	}
}

func scenarioName(name, kind string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s-%d", kind, index+1)
}
