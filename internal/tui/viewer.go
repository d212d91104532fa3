package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/fineflow77/btcpowerlawsimulator/internal/output"
)

var (
	accent     = lipgloss.Color("#3AA99F")
	textMuted  = lipgloss.Color("#6F6E69")
	textStrong = lipgloss.Color("#FFFCF0")
	red        = lipgloss.Color("#D14D41")

	tabActive   = lipgloss.NewStyle().Bold(true).Foreground(textStrong).Background(accent).Padding(0, 1)
	tabInactive = lipgloss.NewStyle().Foreground(textMuted).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(textMuted)
	valueStyle  = lipgloss.NewStyle().Foreground(textStrong)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(red)
)

const (
	// header, tab bar, summary and help lines around the table
	chromeHeight   = 8
	minTableHeight = 5
)

// page is one tab of the viewer: a scenario's summary and its ledger.
type page struct {
	title   string
	summary []string
	columns []table.Column
	rows    []table.Row
}

// Viewer is a Bubble Tea model that pages through the ledgers of a report.
type Viewer struct {
	pages  []page
	active int
	table  table.Model
	height int
	runID  string
}

// NewViewer builds one tab per scenario in the report.
func NewViewer(report *domain.SimulationReport) Viewer {
	cf := output.NewCurrencyFormatter(report.Currency, report.Locale)

	var pages []page
	for _, r := range report.Accumulation {
		pages = append(pages, accumulationPage(cf, r))
	}
	for _, r := range report.Withdrawal {
		pages = append(pages, withdrawalPage(cf, r))
	}

	v := Viewer{pages: pages, runID: report.RunID, height: 24}
	v.table = table.New(table.WithFocused(true), table.WithHeight(v.tableHeight()))
	v.loadPage()
	return v
}

func accumulationPage(cf output.CurrencyFormatter, r domain.AccumulationResult) page {
	s := r.Summary
	p := page{
		title: r.Name,
		summary: []string{
			fmt.Sprintf("Contributed %s over %d years", cf.Format(s.TotalContributed), s.ContributingYears),
			fmt.Sprintf("Final %s worth %s (x%s)", output.FormatBTC(s.FinalBTC), cf.Format(s.FinalValue), s.ValueMultiple.StringFixed(2)),
		},
		columns: []table.Column{
			{Title: "Year", Width: 6},
			{Title: "BTC Price", Width: 18},
			{Title: "Added BTC", Width: 12},
			{Title: "Total BTC", Width: 12},
			{Title: "Value", Width: 20},
			{Title: "DCA", Width: 4},
		},
	}
	for _, row := range r.Ledger {
		dca := ""
		if row.IsAccumulating {
			dca = "yes"
		}
		p.rows = append(p.rows, table.Row{
			strconv.Itoa(row.Year),
			cf.Format(row.BTCPrice),
			row.AddedBTC.StringFixed(6),
			row.TotalBTC.StringFixed(6),
			cf.Format(row.TotalValue),
			dca,
		})
	}
	return p
}

func withdrawalPage(cf output.CurrencyFormatter, r domain.DecumulationResult) page {
	s := r.Summary
	status := valueStyle.Render(fmt.Sprintf("Funded all %d years, %s left", s.YearsFunded, output.FormatBTC(s.FinalBTC)))
	if s.Depleted {
		status = alertStyle.Render(fmt.Sprintf("DEPLETED in %d after %d funded years", s.DepletionYear, s.YearsFunded))
	}
	p := page{
		title: r.Name,
		summary: []string{
			status,
			fmt.Sprintf("Withdrew %s selling %s", cf.Format(s.TotalWithdrawn), output.FormatBTC(s.TotalBTCSold)),
		},
		columns: []table.Column{
			{Title: "Year", Width: 6},
			{Title: "BTC Price", Width: 18},
			{Title: "Withdrawal", Width: 16},
			{Title: "Sold BTC", Width: 12},
			{Title: "Left BTC", Width: 12},
			{Title: "Assets", Width: 20},
			{Title: "Rate", Width: 8},
			{Title: "State", Width: 11},
		},
	}
	for _, row := range r.Ledger {
		p.rows = append(p.rows, table.Row{
			strconv.Itoa(row.Year),
			cf.Format(row.BTCPrice),
			cf.Format(row.WithdrawalAmount),
			row.WithdrawnBTC.StringFixed(6),
			row.RemainingBTC.StringFixed(6),
			cf.Format(row.AssetValue),
			output.FormatPercentage(row.WithdrawalRate),
			row.State.String(),
		})
	}
	return p
}

// Init implements tea.Model.
func (v Viewer) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.height = msg.Height
		v.table.SetHeight(v.tableHeight())
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return v, tea.Quit
		case "tab", "right", "l":
			v.switchPage(1)
			return v, nil
		case "shift+tab", "left", "h":
			v.switchPage(-1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View implements tea.Model.
func (v Viewer) View() string {
	if len(v.pages) == 0 {
		return labelStyle.Render("No scenarios to show.") + "\n"
	}

	var b strings.Builder
	tabs := make([]string, len(v.pages))
	for i, p := range v.pages {
		if i == v.active {
			tabs[i] = tabActive.Render(p.title)
		} else {
			tabs[i] = tabInactive.Render(p.title)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	for _, line := range v.pages[v.active].summary {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.table.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  tab/←→ switch scenario  ↑↓ scroll  q quit   run %s", v.runID)))
	b.WriteString("\n")
	return b.String()
}

// Active returns the title of the tab being shown.
func (v Viewer) Active() string {
	if len(v.pages) == 0 {
		return ""
	}
	return v.pages[v.active].title
}

func (v *Viewer) switchPage(delta int) {
	if len(v.pages) == 0 {
		return
	}
	v.active = (v.active + delta + len(v.pages)) % len(v.pages)
	v.loadPage()
}

// loadPage swaps the table contents. Rows are cleared first so the old rows
// never render against the new columns.
func (v *Viewer) loadPage() {
	if len(v.pages) == 0 {
		return
	}
	p := v.pages[v.active]
	v.table.SetRows(nil)
	v.table.SetColumns(p.columns)
	v.table.SetRows(p.rows)
	v.table.GotoTop()
}

func (v Viewer) tableHeight() int {
	return max(v.height-chromeHeight, minTableHeight)
}
