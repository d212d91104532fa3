package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// ErrAborted is returned when the user leaves the form without submitting.
var ErrAborted = errors.New("form aborted")

// PromptScenario runs the form on the terminal and returns the resulting
// one-scenario configuration.
func PromptScenario(g domain.GlobalAssumptions, currentYear int) (*domain.Configuration, error) {
	values := DefaultFormValues(g, currentYear)
	if err := NewForm(&values).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("form error: %w", err)
	}
	return values.Configuration(g)
}

// ShowReport opens the ledger viewer full screen until the user quits.
func ShowReport(report *domain.SimulationReport) error {
	p := tea.NewProgram(NewViewer(report), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
