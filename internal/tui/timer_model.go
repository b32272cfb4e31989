package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/focus/internal/clock"
	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/session"
	"github.com/balkashynov/focus/internal/timer"
)

const countdownStep = 5 // minutes per +/- press

type promptKind int

const (
	promptCompletion promptKind = iota
	promptReset
)

// tickMsg carries a clock tick into the update loop
type tickMsg clock.Tick

// driverClosedMsg is sent once the clock driver shut down
type driverClosedMsg struct{}

// TimerModel is the full-screen timer
type TimerModel struct {
	width  int
	height int

	engine *timer.Engine
	driver *clock.Driver

	keys      timerKeys
	help      help.Model
	taskInput textinput.Model
	editing   bool

	// Modal dialog, nil when none is open
	prompt     *PromptModel
	promptKind promptKind

	shimmer *Shimmer

	status      string
	statusColor string
	saved       []models.Session
}

// NewTimerModel creates the timer screen for engine, fed by driver
func NewTimerModel(engine *timer.Engine, driver *clock.Driver) TimerModel {
	input := textinput.New()
	input.Placeholder = "What are you working on? (#tags allowed)"
	input.CharLimit = 120
	input.Width = 48
	input.Prompt = "✎ "
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(lipgloss.Color(ColorAccentBright))
	h.Styles.FullKey = h.Styles.FullKey.Foreground(lipgloss.Color(ColorAccentBright))

	m := TimerModel{
		engine:    engine,
		driver:    driver,
		keys:      newTimerKeys(),
		help:      h,
		taskInput: input,
		shimmer:   NewShimmer(),
	}

	// Nothing but a Pomodoro starts without a task, so ask for one right away
	state := engine.State()
	if state.Task == "" && state.Mode != models.ModePomodoro {
		m.editing = true
		m.taskInput.Focus()
	}
	return m
}

// Saved returns the sessions recorded while the screen was open
func (m TimerModel) Saved() []models.Session {
	return m.saved
}

// waitForTick reads the next tick from the driver
func waitForTick(d *clock.Driver) tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-d.C()
		if !ok {
			return driverClosedMsg{}
		}
		return tickMsg(tick)
	}
}

// Init starts listening for clock ticks
func (m TimerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForTick(m.driver), m.shimmer.Tick()}
	if m.editing {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.prompt != nil {
			m.forwardToPrompt(msg)
		}
		return m, nil

	case tickMsg:
		if c := m.engine.Tick(clock.Tick(msg)); c != nil {
			m.openCompletion(*c)
		}
		return m, waitForTick(m.driver)

	case driverClosedMsg:
		return m, nil

	case shimmerTickMsg:
		m.shimmer.Advance(len([]rune(m.engine.State().Task)), time.Now())
		return m, m.shimmer.Tick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		if m.editing {
			return m.updateTaskInput(msg)
		}
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey maps a key press to an engine command
func (m TimerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if err := m.engine.Toggle(); err != nil {
			if errors.Is(err, timer.ErrMissingTask) {
				m.setStatus("Please enter a task name first", ColorWarning)
				return m.startEditing()
			}
			m.setError(err)
		}

	case key.Matches(msg, m.keys.Reset):
		err := m.engine.Reset(false)
		if errors.Is(err, timer.ErrConfirmationRequired) {
			p := NewPrompt("Reset Timer", "Are you sure you want to reset the timer?", []string{"Reset", "Cancel"}, true)
			m.openPrompt(p, promptReset)
		} else if err != nil {
			m.setError(err)
		}

	case key.Matches(msg, m.keys.Save):
		m.recordSession(m.engine.Save())

	case key.Matches(msg, m.keys.Lap):
		if !m.engine.Lap() {
			m.setStatus("Laps are marked while the stopwatch runs", ColorSecondaryText)
		}

	case key.Matches(msg, m.keys.Task):
		return m.startEditing()

	case key.Matches(msg, m.keys.Stopwatch):
		m.switchMode(models.ModeStopwatch)
	case key.Matches(msg, m.keys.Countdown):
		m.switchMode(models.ModeCountdown)
	case key.Matches(msg, m.keys.Pomodoro):
		m.switchMode(models.ModePomodoro)

	case key.Matches(msg, m.keys.More):
		m.adjustCountdown(countdownStep)
	case key.Matches(msg, m.keys.Less):
		m.adjustCountdown(-countdownStep)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *TimerModel) switchMode(mode models.TimerMode) {
	if err := m.engine.SwitchMode(mode); err != nil {
		m.setError(err)
	}
}

func (m *TimerModel) adjustCountdown(delta int) {
	state := m.engine.State()
	if state.Mode != models.ModeCountdown {
		m.setStatus("Switch to countdown (2) to change its length", ColorSecondaryText)
		return
	}
	if state.Running {
		m.setStatus("Pause the timer to change its length", ColorWarning)
		return
	}
	if err := m.engine.AdjustCountdown(delta); err != nil {
		m.setError(err)
	}
}

func (m TimerModel) startEditing() (tea.Model, tea.Cmd) {
	m.editing = true
	m.taskInput.SetValue(m.engine.State().Task)
	m.taskInput.CursorEnd()
	return m, m.taskInput.Focus()
}

// updateTaskInput handles keys while the task label is edited
func (m TimerModel) updateTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.engine.SetTask(m.taskInput.Value())
		m.editing = false
		m.taskInput.Blur()
		m.shimmer.Reset()
		return m, nil

	case tea.KeyEsc:
		m.editing = false
		m.taskInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m *TimerModel) openCompletion(c timer.Completion) {
	m.editing = false
	m.openPrompt(NewPrompt(c.Title, c.Message, c.Choices, false), promptCompletion)
}

func (m *TimerModel) openPrompt(p PromptModel, kind promptKind) {
	p.width = m.width
	p.height = m.height
	m.prompt = &p
	m.promptKind = kind
}

func (m *TimerModel) forwardToPrompt(msg tea.Msg) {
	updated, _ := m.prompt.Update(msg)
	p := updated.(PromptModel)
	m.prompt = &p
}

// updatePrompt feeds a key to the open dialog and applies its answer
func (m TimerModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.forwardToPrompt(msg)
	if !m.prompt.Answered() {
		return m, nil
	}

	p := *m.prompt
	m.prompt = nil

	switch m.promptKind {
	case promptReset:
		if p.Choice() == "Reset" {
			if err := m.engine.Reset(true); err != nil {
				m.setError(err)
			}
		}

	case promptCompletion:
		outcome, err := m.engine.Resolve(p.Choice())
		if outcome.Session != nil {
			m.recordSession(*outcome.Session, err)
			return m, nil
		}
		if err != nil {
			m.setError(err)
		}
		// A rejected save leaves the completion pending
		if c := m.engine.Pending(); c != nil {
			m.openCompletion(*c)
		}
	}

	return m, nil
}

// recordSession reports the result of a save
func (m *TimerModel) recordSession(s models.Session, err error) {
	switch {
	case err == nil:
		m.saved = append(m.saved, s)
		m.setStatus(fmt.Sprintf("✅ Saved \"%s\" · %s", s.Task, s.FormattedDuration), ColorSuccess)
	case errors.Is(err, session.ErrPersistence):
		m.saved = append(m.saved, s)
		m.setStatus(fmt.Sprintf("⚠️  \"%s\" kept for this run only: %v", s.Task, err), ColorWarning)
	default:
		m.setError(err)
	}
}

func (m *TimerModel) setStatus(text, color string) {
	m.status = text
	m.statusColor = color
}

func (m *TimerModel) setError(err error) {
	switch {
	case errors.Is(err, timer.ErrMissingTask):
		m.setStatus("Please enter a task name", ColorError)
	case errors.Is(err, timer.ErrZeroDuration):
		m.setStatus("Nothing to record yet", ColorError)
	default:
		m.setStatus("❌ "+err.Error(), ColorError)
	}
}

// View renders the timer screen
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.prompt != nil {
		return m.prompt.View()
	}

	state := m.engine.State()
	helpBar := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(m.help.View(m.keys))
	contentHeight := m.height - lipgloss.Height(helpBar) - 1

	var components []string
	components = append(components, m.renderModeTabs(state))
	if state.Mode == models.ModePomodoro {
		components = append(components, m.renderPhase(state))
	}
	components = append(components, m.renderTask(state))
	components = append(components, m.centered(renderBigClock(state.Seconds, phaseColor(state))))
	components = append(components, m.renderStatusLine(state))
	if laps := m.renderLaps(state); laps != "" {
		components = append(components, laps)
	}
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.statusColor)).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, statusStyle.Render(m.status))
	}

	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) centered(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width).Render(line)
	}
	return strings.Join(lines, "\n")
}

// renderModeTabs renders the three modes with the current one highlighted
func (m TimerModel) renderModeTabs(state models.TimerState) string {
	modes := []models.TimerMode{models.ModeStopwatch, models.ModeCountdown, models.ModePomodoro}

	tabs := make([]string, 0, len(modes))
	for i, mode := range modes {
		label := fmt.Sprintf("%d %s", i+1, mode.Title())
		style := lipgloss.NewStyle().Padding(0, 2)
		if mode == state.Mode {
			style = style.
				Foreground(lipgloss.Color(ColorPrimaryText)).
				Background(lipgloss.Color(ColorAccentMain)).
				Bold(true)
		} else {
			style = style.Foreground(lipgloss.Color(ColorDisabledText))
		}
		tabs = append(tabs, style.Render(label))
	}

	return m.centered(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderPhase renders the Pomodoro phase and cycle progress
func (m TimerModel) renderPhase(state models.TimerState) string {
	phaseStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(phaseColor(state))).
		Bold(true)

	every := m.engine.Config().PomodorosBeforeLongBreak
	done := state.CompletedFocus % every
	dots := strings.Repeat("●", done) + strings.Repeat("○", every-done)

	line := fmt.Sprintf("%s   %s   Completed: %d",
		phaseStyle.Render(state.Phase.Title()),
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(dots),
		state.CompletedFocus)
	return m.centered(line)
}

// renderTask renders the task label or its editor
func (m TimerModel) renderTask(state models.TimerState) string {
	if m.editing {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentBright)).
			Padding(0, 1).
			Render(m.taskInput.View())
		return m.centered(box)
	}

	if state.Mode == models.ModePomodoro {
		label := fmt.Sprintf("Pomodoro %d", state.CompletedFocus+1)
		if state.Phase.IsBreak() {
			label = "Take a breather"
		}
		return m.centered(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render(label))
	}

	if state.Task == "" {
		hint := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("no task yet · press t to name it")
		return m.centered(hint)
	}

	if state.Running {
		return m.centered(m.shimmer.Render(state.Task))
	}
	return m.centered(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render(state.Task))
}

// renderStatusLine renders running state and the countdown target
func (m TimerModel) renderStatusLine(state models.TimerState) string {
	var parts []string

	if state.Running {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("▶ running"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render("⏸ paused"))
	}

	if state.Mode == models.ModeCountdown {
		target := fmt.Sprintf("target %s (+/-)", session.FormatDuration(state.CountdownSeconds))
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(target))
	}
	if n := len(m.saved); n > 0 {
		saved := fmt.Sprintf("%d saved", n)
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(saved))
	}

	return m.centered(strings.Join(parts, "  ·  "))
}

// renderLaps renders the most recent stopwatch laps
func (m TimerModel) renderLaps(state models.TimerState) string {
	if state.Mode != models.ModeStopwatch || len(state.Laps) == 0 {
		return ""
	}

	const shown = 3
	start := max(0, len(state.Laps)-shown)

	lapStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	lines := make([]string, 0, shown)
	for i := len(state.Laps) - 1; i >= start; i-- {
		split := state.Laps[i]
		if i > 0 {
			split -= state.Laps[i-1]
		}
		lines = append(lines, lapStyle.Render(fmt.Sprintf("Lap %d   %s   +%s",
			i+1, timer.FormatClock(state.Laps[i]), timer.FormatClock(split))))
	}
	return m.centered(strings.Join(lines, "\n"))
}
