package output

import "github.com/fineflow77/btcpowerlawsimulator/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered when a report
// carries none of its own.
var DefaultAssumptions = domain.DefaultGlobalAssumptions().GenerateAssumptions()

func reportAssumptions(report *domain.SimulationReport) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}
