package output

import (
	"bytes"
	"fmt"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// ConsoleFormatter provides a concise one-line-per-scenario summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "summary" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	var buf bytes.Buffer
	cf := NewCurrencyFormatter(report.Currency, report.Locale)

	fmt.Fprintln(&buf, "BTC SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range report.Accumulation {
		s := r.Summary
		fmt.Fprintf(&buf, "%s: FinalBTC=%s FinalValue=%s Contributed=%s Multiple=%sx\n",
			r.Name, s.FinalBTC.StringFixed(4), cf.Format(s.FinalValue), cf.Format(s.TotalContributed), s.ValueMultiple.StringFixed(2))
	}
	for _, r := range report.Withdrawal {
		s := r.Summary
		status := "funded"
		if s.Depleted {
			status = fmt.Sprintf("depleted in %d", s.DepletionYear)
		}
		fmt.Fprintf(&buf, "%s: YearsFunded=%d Withdrawn=%s RemainingBTC=%s (%s)\n",
			r.Name, s.YearsFunded, cf.Format(s.TotalWithdrawn), s.FinalBTC.StringFixed(4), status)
	}

	h := AnalyzeScenarios(report)
	if h.BestAccumulation != "" || h.LongestWithdrawal != "" {
		fmt.Fprintln(&buf)
	}
	if h.BestAccumulation != "" {
		fmt.Fprintf(&buf, "Best accumulation: %s\n", h.BestAccumulation)
	}
	if h.LongestWithdrawal != "" {
		fmt.Fprintf(&buf, "Most durable withdrawal: %s\n", h.LongestWithdrawal)
	}
	return buf.Bytes(), nil
}
