package output

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// chartSeries is one line of a dual-axis chart. Left-axis series are in
// local currency, right-axis series in BTC or percent.
type chartSeries struct {
	Name      string
	Color     string
	RightAxis bool
	Values    []float64
}

func floats(n int, get func(i int) decimal.Decimal) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = get(i).InexactFloat64()
	}
	return out
}

func accumulationSeries(r domain.AccumulationResult) ([]int, []chartSeries) {
	rows := r.Ledger
	years := make([]int, len(rows))
	for i, row := range rows {
		years[i] = row.Year
	}
	return years, []chartSeries{
		{Name: "Total value", Color: "#3AA99F", Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].TotalValue })},
		{Name: "BTC price", Color: "#DA702C", Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].BTCPrice })},
		{Name: "Total BTC", Color: "#4385BE", RightAxis: true, Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].TotalBTC })},
		{Name: "Added BTC", Color: "#8B7EC8", RightAxis: true, Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].AddedBTC })},
	}
}

func withdrawalSeries(r domain.DecumulationResult) ([]int, []chartSeries) {
	rows := r.Ledger
	years := make([]int, len(rows))
	for i, row := range rows {
		years[i] = row.Year
	}
	return years, []chartSeries{
		{Name: "BTC price", Color: "#DA702C", Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].BTCPrice })},
		{Name: "Asset value", Color: "#3AA99F", Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].AssetValue })},
		{Name: "Remaining BTC", Color: "#4385BE", RightAxis: true, Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].RemainingBTC })},
		{Name: "Withdrawal rate %", Color: "#D14D41", RightAxis: true, Values: floats(len(rows), func(i int) decimal.Decimal { return rows[i].WithdrawalRate })},
	}
}

const (
	chartWidth   = 720
	chartHeight  = 280
	chartPadX    = 70
	chartPadTop  = 20
	chartPadBtm  = 50
	chartTickCnt = 4
)

// svgChart draws the series as polylines on a shared year axis with
// independent left and right value axes.
func svgChart(years []int, series []chartSeries) template.HTML {
	if len(years) == 0 {
		return ""
	}

	var leftMax, rightMax float64
	for _, s := range series {
		for _, v := range s.Values {
			if s.RightAxis {
				rightMax = max(rightMax, v)
			} else {
				leftMax = max(leftMax, v)
			}
		}
	}
	if leftMax <= 0 {
		leftMax = 1
	}
	if rightMax <= 0 {
		rightMax = 1
	}

	plotW := float64(chartWidth - 2*chartPadX)
	plotH := float64(chartHeight - chartPadTop - chartPadBtm)
	x := func(i int) float64 {
		if len(years) == 1 {
			return chartPadX + plotW/2
		}
		return chartPadX + plotW*float64(i)/float64(len(years)-1)
	}
	y := func(v, top float64) float64 {
		return chartPadTop + plotH - plotH*v/top
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="chart" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img">`, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="#ccc"/>`, chartPadX, chartPadTop, plotW, plotH)

	for t := 0; t <= chartTickCnt; t++ {
		frac := float64(t) / chartTickCnt
		ty := chartPadTop + plotH - plotH*frac
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#eee"/>`, chartPadX, ty, chartPadX+plotW, ty)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="10" text-anchor="end">%s</text>`, chartPadX-4, ty+3, compactNumber(leftMax*frac))
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="start">%s</text>`, chartPadX+plotW+4, ty+3, compactNumber(rightMax*frac))
	}

	step := max(1, len(years)/6)
	for i := 0; i < len(years); i += step {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%d</text>`, x(i), chartPadTop+plotH+14, years[i])
	}

	for _, s := range series {
		top := leftMax
		if s.RightAxis {
			top = rightMax
		}
		points := make([]string, len(s.Values))
		for i, v := range s.Values {
			points[i] = fmt.Sprintf("%.1f,%.1f", x(i), y(v, top))
		}
		dash := ""
		if s.RightAxis {
			dash = ` stroke-dasharray="5,3"`
		}
		fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="2"%s points="%s"/>`, s.Color, dash, strings.Join(points, " "))
	}

	for i, s := range series {
		lx := chartPadX + i*150
		ly := chartHeight - 12
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="10" height="10" fill="%s"/>`, lx, ly-9, s.Color)
		axis := "L"
		if s.RightAxis {
			axis = "R"
		}
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="11">%s (%s)</text>`, lx+14, ly, template.HTMLEscapeString(s.Name), axis)
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// compactNumber abbreviates axis labels: 1.2K, 3.4M, 5.6B.
func compactNumber(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	case v >= 1 || v == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
