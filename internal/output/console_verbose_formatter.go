package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// ConsoleVerboseFormatter renders every ledger as a terminal table with
// summaries and sparklines.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	var buf bytes.Buffer
	cf := NewCurrencyFormatter(report.Currency, report.Locale)

	fmt.Fprintln(&buf, renderTitle("BTC POWER-LAW SIMULATION"))
	fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("Run %s · %s", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04"))))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, r := range report.Accumulation {
		writeAccumulation(&buf, cf, i+1, r)
	}
	for i, r := range report.Withdrawal {
		writeWithdrawal(&buf, cf, i+1, r)
	}

	writeHighlights(&buf, AnalyzeScenarios(report))
	return buf.Bytes(), nil
}

func writeAccumulation(buf *bytes.Buffer, cf CurrencyFormatter, n int, r domain.AccumulationResult) {
	s := r.Summary
	fmt.Fprintf(buf, "ACCUMULATION %d: %s\n", n, r.Name)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Model: %s  |  Monthly: %s until %d  |  Initial: %s\n",
		r.Input.Model.Label(), cf.Format(r.Input.MonthlyContribution), r.Input.ContributionEndYear, FormatBTC(r.Input.InitialBTC))
	fmt.Fprintf(buf, "Contributed: %s over %d years\n", cf.Format(s.TotalContributed), s.ContributingYears)
	fmt.Fprintf(buf, "Final holdings: %s worth %s in %d\n",
		btcStyle.Render(FormatBTC(s.FinalBTC)), goodStyle.Render(cf.Format(s.FinalValue)), r.Input.EndYear)
	if s.ValueMultiple.IsPositive() {
		fmt.Fprintf(buf, "Value multiple: %sx\n", s.ValueMultiple.StringFixed(2))
	}
	fmt.Fprintln(buf)

	t := table{
		Headers: []string{"Year", "BTC price", "Added BTC", "Total BTC", "Total value"},
		Muted:   make(map[int]bool),
	}
	for i, row := range r.Ledger {
		t.Rows = append(t.Rows, []string{
			intToString(row.Year),
			cf.Format(row.BTCPrice),
			row.AddedBTC.StringFixed(4),
			row.TotalBTC.StringFixed(4),
			cf.Format(row.TotalValue),
		})
		if !row.IsAccumulating {
			t.Muted[i] = true
		}
	}
	fmt.Fprint(buf, renderTable(t))

	_, series := accumulationSeries(r)
	fmt.Fprintln(buf, labeledSparkline(series[0].Name, goodStyle, series[0].Values))
	fmt.Fprintln(buf, labeledSparkline(series[2].Name, btcStyle, series[2].Values))
	fmt.Fprintln(buf)
}

func writeWithdrawal(buf *bytes.Buffer, cf CurrencyFormatter, n int, r domain.DecumulationResult) {
	s := r.Summary
	in := r.Input
	fmt.Fprintf(buf, "WITHDRAWAL %d: %s\n", n, r.Name)
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	policy := cf.Format(in.Policy.Amount) + " per year"
	if in.Policy.Mode == domain.Percentage {
		policy = FormatPercentage(in.Policy.Amount) + " of holdings per year"
	}
	fmt.Fprintf(buf, "Model: %s  |  %s after %s tax  |  From %s, %d-%d\n",
		in.Model.Label(), policy, FormatPercentage(in.TaxRatePercent), FormatBTC(in.InitialBTC), in.StartYear, in.LastYear())

	if s.Depleted {
		fmt.Fprintf(buf, "Status: %s in %d after %d funded years\n", badStyle.Render("DEPLETED"), s.DepletionYear, s.YearsFunded)
	} else {
		fmt.Fprintf(buf, "Status: %s, %s left worth %s\n", goodStyle.Render("FUNDED"), FormatBTC(s.FinalBTC), cf.Format(s.FinalValue))
	}
	fmt.Fprintf(buf, "Withdrawn (after tax): %s  |  BTC sold: %s\n", cf.Format(s.TotalWithdrawn), FormatBTC(s.TotalBTCSold))
	fmt.Fprintln(buf)

	t := table{Headers: []string{"Year", "BTC price", "Withdrawal", "Sold BTC", "Remaining BTC", "Asset value", "Rate"}}
	for _, row := range r.Ledger {
		rate := FormatPercentage(row.WithdrawalRate)
		if row.IsDepleted() {
			rate = warnStyle.Render(rate)
		}
		t.Rows = append(t.Rows, []string{
			intToString(row.Year),
			cf.Format(row.BTCPrice),
			cf.Format(row.WithdrawalAmount),
			row.WithdrawnBTC.StringFixed(4),
			row.RemainingBTC.StringFixed(4),
			cf.Format(row.AssetValue),
			rate,
		})
	}
	fmt.Fprint(buf, renderTable(t))

	_, series := withdrawalSeries(r)
	fmt.Fprintln(buf, labeledSparkline(series[1].Name, goodStyle, series[1].Values))
	fmt.Fprintln(buf, labeledSparkline(series[2].Name, btcStyle, series[2].Values))
	fmt.Fprintln(buf)
}

func writeHighlights(buf *bytes.Buffer, h Highlights) {
	if h.BestAccumulation == "" && h.LongestWithdrawal == "" {
		return
	}
	fmt.Fprintln(buf, headerStyle.Render("HIGHLIGHTS"))
	if h.BestAccumulation != "" {
		fmt.Fprintf(buf, "Best accumulation: %s (%sx)\n", h.BestAccumulation, h.BestValueMultiple.StringFixed(2))
	}
	if h.LongestWithdrawal != "" {
		fmt.Fprintf(buf, "Most durable withdrawal: %s (%d years funded)\n", h.LongestWithdrawal, h.LongestYearsFunded)
	}
	if len(h.DepletedScenarios) > 0 {
		fmt.Fprintf(buf, "Depleted: %s\n", warnStyle.Render(strings.Join(h.DepletedScenarios, ", ")))
	}
}
