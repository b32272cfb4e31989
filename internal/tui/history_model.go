package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/session"
)

// HistoryStore is what the history screen reads and edits
type HistoryStore interface {
	History() []models.Session
	Stats() models.FocusStats
	Delete(id string) error
	ClearAll() error
}

type historyAction int

const (
	actionDelete historyAction = iota
	actionClear
)

// HistoryModel lists recent sessions next to the focus stats
type HistoryModel struct {
	width  int
	height int

	store    HistoryStore
	sessions []models.Session
	selected int

	keys    historyKeys
	help    help.Model
	shimmer *Shimmer

	prompt *PromptModel
	action historyAction

	status      string
	statusColor string
}

// NewHistoryModel creates the history screen
func NewHistoryModel(store HistoryStore) HistoryModel {
	return HistoryModel{
		store:    store,
		sessions: store.History(),
		keys:     newHistoryKeys(),
		help:     help.New(),
		shimmer:  NewShimmer(),
	}
}

// Init starts the selection shimmer
func (m HistoryModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if task := m.selectedTask(); task != "" {
			m.shimmer.Advance(len([]rune(task)), time.Now())
		}
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}

		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
				m.shimmer.Reset()
			}

		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.sessions)-1 {
				m.selected++
				m.shimmer.Reset()
			}

		case key.Matches(msg, m.keys.Delete):
			if len(m.sessions) == 0 {
				return m, nil
			}
			s := m.sessions[m.selected]
			m.openPrompt("Delete Session", fmt.Sprintf("Delete \"%s\" (%s)?", s.Task, s.FormattedDuration), actionDelete)

		case key.Matches(msg, m.keys.Clear):
			if len(m.sessions) == 0 {
				return m, nil
			}
			m.openPrompt("Clear All Sessions", "Are you sure you want to delete all sessions?", actionClear)
		}
	}

	return m, nil
}

func (m *HistoryModel) openPrompt(title, message string, action historyAction) {
	p := NewPrompt(title, message, []string{choiceYes, choiceNo}, true)
	p.width = m.width
	p.height = m.height
	m.prompt = &p
	m.action = action
}

func (m HistoryModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, _ := m.prompt.Update(msg)
	p := updated.(PromptModel)
	if !p.Answered() {
		m.prompt = &p
		return m, nil
	}
	m.prompt = nil
	if p.Choice() != choiceYes {
		return m, nil
	}

	var err error
	switch m.action {
	case actionDelete:
		err = m.store.Delete(m.sessions[m.selected].ID)
	case actionClear:
		err = m.store.ClearAll()
	}

	m.sessions = m.store.History()
	m.selected = min(m.selected, max(0, len(m.sessions)-1))
	m.shimmer.Reset()

	if err != nil {
		m.status = "❌ " + err.Error()
		m.statusColor = ColorError
	} else if m.action == actionClear {
		m.status = "🗑️  History cleared"
		m.statusColor = ColorSuccess
	} else {
		m.status = "🗑️  Session deleted"
		m.statusColor = ColorSuccess
	}
	return m, nil
}

func (m HistoryModel) selectedTask() string {
	if m.selected < len(m.sessions) {
		return m.sessions[m.selected].Task
	}
	return ""
}

// View renders the history screen
func (m HistoryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.prompt != nil {
		return m.prompt.View()
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSessionTable(leftWidth),
		" ",
		m.renderStats(rightWidth),
	)

	footer := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(m.help.View(m.keys))
	if m.status != "" {
		footer = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.statusColor)).
			Width(m.width).
			Align(lipgloss.Center).
			Render(m.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", content, "", footer)
}

// renderSessionTable renders the left panel with one row per session
func (m HistoryModel) renderSessionTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("📋 Recent Sessions"))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No sessions yet. Start a timer with 'focus timer'."))
	}

	durationWidth := 8
	dateWidth := 16
	taskWidth := max(12, width-durationWidth-dateWidth-10)

	for i, s := range m.sessions {
		task := truncate(s.Task, taskWidth)
		padding := strings.Repeat(" ", max(0, taskWidth-len([]rune(task))))

		if i == m.selected {
			task = m.shimmer.Render(task)
		} else {
			task = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(task)
		}

		duration := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render(fmt.Sprintf("%-*s", durationWidth, s.FormattedDuration))
		date := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(s.Date)

		row := task + padding + " " + duration + " " + date
		if i == m.selected {
			row = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Padding(0, 1).
				Render(row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderStats renders the right panel with the focus stats and the selected session
func (m HistoryModel) renderStats(width int) string {
	var b strings.Builder
	stats := m.store.Stats()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	b.WriteString(titleStyle.Render("📊 Focus Stats"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label + ": "))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	line("Today", fmt.Sprintf("%d min of %d min goal (%.0f%%)",
		stats.TodayFocusMinutes(), stats.WeeklyGoalMinutes, stats.WeeklyProgress()*100))
	b.WriteString(renderProgressBar(stats.WeeklyProgress(), width-6))
	b.WriteString("\n")
	line("Streak", fmt.Sprintf("%d day%s 🔥", stats.StreakDays, pluralS(stats.StreakDays)))
	line("Sessions", humanize.Comma(int64(stats.CompletedSessions)))
	line("Total focus", session.FormatDuration(stats.TotalFocusSeconds))

	if m.selected < len(m.sessions) {
		s := m.sessions[m.selected]
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("📝 " + s.Task))
		b.WriteString("\n\n")
		line("Duration", s.FormattedDuration)
		line("Saved", fmt.Sprintf("%s (%s)", s.Date, humanize.Time(s.CreatedAt)))
		if len(s.Tags) > 0 {
			line("Tags", "#"+strings.Join(s.Tags, " #"))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

func renderProgressBar(fraction float64, width int) string {
	width = max(10, width)
	filled := int(min(1, max(0, fraction)) * float64(width))

	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", width-filled))
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
