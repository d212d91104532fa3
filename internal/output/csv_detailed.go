package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// CSVDetailedExporter writes every ledger row, accumulation and withdrawal
// rows sharing one column set. Columns a row kind has no value for are empty.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.SimulationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Scenario", "Year", "BTCPrice", "AddedBTC", "TotalBTC", "TotalValue", "IsAccumulating", "WithdrawalAmount", "GrossWithdrawalNative", "WithdrawnBTC", "RemainingBTC", "AssetValue", "WithdrawalRate", "State"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Accumulation {
		for _, yr := range r.Ledger {
			row := []string{
				"accumulation",
				r.Name,
				intToString(yr.Year),
				yr.BTCPrice.StringFixed(2),
				yr.AddedBTC.StringFixed(8),
				yr.TotalBTC.StringFixed(8),
				yr.TotalValue.StringFixed(2),
				boolToString(yr.IsAccumulating),
				"", "", "", "", "", "", "",
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range report.Withdrawal {
		for _, yr := range r.Ledger {
			row := []string{
				"withdrawal",
				r.Name,
				intToString(yr.Year),
				yr.BTCPrice.StringFixed(2),
				"", "", "", "",
				yr.WithdrawalAmount.StringFixed(2),
				yr.GrossWithdrawalNative.StringFixed(2),
				yr.WithdrawnBTC.StringFixed(8),
				yr.RemainingBTC.StringFixed(8),
				yr.AssetValue.StringFixed(2),
				yr.WithdrawalRate.StringFixed(4),
				yr.State.String(),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
