package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv-summary" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.SimulationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Scenario", "Model", "StartYear", "EndYear", "FinalBTC", "FinalValue", "TotalContributed", "ValueMultiple", "TotalWithdrawn", "YearsFunded", "Depleted", "DepletionYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Accumulation {
		s := r.Summary
		row := []string{
			"accumulation",
			r.Name,
			r.Input.Model.String(),
			intToString(r.Input.StartYear),
			intToString(r.Input.EndYear),
			s.FinalBTC.StringFixed(8),
			s.FinalValue.StringFixed(0),
			s.TotalContributed.StringFixed(0),
			s.ValueMultiple.StringFixed(4),
			"", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, r := range report.Withdrawal {
		s := r.Summary
		depletionYear := ""
		if s.Depleted {
			depletionYear = intToString(s.DepletionYear)
		}
		row := []string{
			"withdrawal",
			r.Name,
			r.Input.Model.String(),
			intToString(r.Input.StartYear),
			intToString(r.Input.LastYear()),
			s.FinalBTC.StringFixed(8),
			s.FinalValue.StringFixed(0),
			"", "",
			s.TotalWithdrawn.StringFixed(0),
			intToString(s.YearsFunded),
			boolToString(s.Depleted),
			depletionYear,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
