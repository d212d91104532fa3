package output

import (
	"encoding/json"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
