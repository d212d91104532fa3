package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette (Flexoki dark).
var (
	colorBorder    = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
	colorGreen     = lipgloss.Color("#879A39")
	colorOrange    = lipgloss.Color("#DA702C")
	colorRed       = lipgloss.Color("#D14D41")
	colorBlue      = lipgloss.Color("#4385BE")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	btcStyle    = lipgloss.NewStyle().Foreground(colorBlue)
)

// table is a bordered text table. Rows listed in muted render dimmed.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Muted   map[int]bool
}

func renderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func renderTable(t table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for r, row := range t.Rows {
		style := valueStyle
		if t.Muted[r] {
			style = mutedStyle
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// First column left-aligned, figures right-aligned.
			if i == 0 {
				cell = padRight(cell, widths[i])
			} else {
				cell = padLeft(cell, widths[i])
			}
			b.WriteString(style.Render(" " + cell + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}
	rule("╰", "┴", "╯")

	return b.String()
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// sparkline renders values as unicode blocks scaled to the series peak.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return buf.String()
}

func labeledSparkline(label string, style lipgloss.Style, values []float64) string {
	return fmt.Sprintf("  %s %s", padRight(label, 14), style.Render(sparkline(values)))
}
