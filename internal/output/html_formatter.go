package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with inline SVG charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"btc": func(d decimal.Decimal) string { return d.StringFixed(4) },
	"pct": FormatPercentage,
	"add": func(i, j int) int { return i + j },
	"accumulationChart": func(r domain.AccumulationResult) template.HTML {
		return svgChart(accumulationSeries(r))
	},
	"withdrawalChart": func(r domain.DecumulationResult) template.HTML {
		return svgChart(withdrawalSeries(r))
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	var buf bytes.Buffer
	cf := NewCurrencyFormatter(report.Currency, report.Locale)

	data := struct {
		*domain.SimulationReport
		Highlights  Highlights
		Assumptions []string
		Curr        func(decimal.Decimal) string
	}{report, AnalyzeScenarios(report), reportAssumptions(report), cf.Format}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
