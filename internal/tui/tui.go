package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/focus/internal/clock"
	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/timer"
)

// RunTimerTUI runs the full-screen timer until the user quits.
// The caller still owns engine and driver and closes them afterwards.
func RunTimerTUI(engine *timer.Engine, driver *clock.Driver) ([]models.Session, error) {
	model := NewTimerModel(engine, driver)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(TimerModel)
	if !ok {
		return nil, nil
	}

	// Handle exit messages after TUI closes
	state := engine.State()
	if state.Running {
		fmt.Printf("⏹️  %s stopped at %s.\n", state.Mode.Title(), timer.FormatClock(state.Seconds))
	}
	for _, s := range m.Saved() {
		fmt.Printf("✅ Saved \"%s\" · %s\n", s.Task, s.FormattedDuration)
	}

	return m.Saved(), nil
}

// RunHistoryTUI runs the interactive session history
func RunHistoryTUI(store HistoryStore) error {
	p := tea.NewProgram(NewHistoryModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
