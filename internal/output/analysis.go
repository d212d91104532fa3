package output

import (
	"sort"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights picks the standout scenarios of a report.
type Highlights struct {
	BestAccumulation   string
	BestValueMultiple  decimal.Decimal
	LongestWithdrawal  string
	LongestYearsFunded int
	DepletedScenarios  []string
}

// AnalyzeScenarios ranks accumulation scenarios by value multiple and
// withdrawal scenarios by funded years, surviving plans first. Ties keep
// report order.
func AnalyzeScenarios(report *domain.SimulationReport) Highlights {
	var h Highlights
	if report == nil {
		return h
	}

	if len(report.Accumulation) > 0 {
		acc := append([]domain.AccumulationResult(nil), report.Accumulation...)
		sort.SliceStable(acc, func(i, j int) bool {
			return acc[i].Summary.ValueMultiple.GreaterThan(acc[j].Summary.ValueMultiple)
		})
		h.BestAccumulation = acc[0].Name
		h.BestValueMultiple = acc[0].Summary.ValueMultiple
	}

	if len(report.Withdrawal) > 0 {
		wd := append([]domain.DecumulationResult(nil), report.Withdrawal...)
		sort.SliceStable(wd, func(i, j int) bool {
			a, b := wd[i].Summary, wd[j].Summary
			if a.Depleted != b.Depleted {
				return !a.Depleted
			}
			return a.YearsFunded > b.YearsFunded
		})
		h.LongestWithdrawal = wd[0].Name
		h.LongestYearsFunded = wd[0].Summary.YearsFunded
		for _, r := range report.Withdrawal {
			if r.Summary.Depleted {
				h.DepletedScenarios = append(h.DepletedScenarios, r.Name)
			}
		}
	}
	return h
}
