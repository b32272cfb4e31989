package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrDismissed is returned when a dialog is closed without a choice
var ErrDismissed = errors.New("dialog dismissed")

const (
	choiceYes = "Yes"
	choiceNo  = "No"
)

// PromptModel is a modal dialog offering a fixed set of choices
type PromptModel struct {
	title       string
	message     string
	choices     []string
	selected    int
	chosen      string
	dismissed   bool
	cancellable bool
	standalone  bool // quits its own program once answered

	keys   promptKeys
	help   help.Model
	width  int
	height int
}

// NewPrompt creates a dialog. A cancellable dialog can be closed with esc.
func NewPrompt(title, message string, choices []string, cancellable bool) PromptModel {
	return PromptModel{
		title:       title,
		message:     message,
		choices:     choices,
		cancellable: cancellable,
		keys:        newPromptKeys(),
		help:        help.New(),
	}
}

// Answered reports whether the dialog is finished
func (m PromptModel) Answered() bool {
	return m.chosen != "" || m.dismissed
}

// Choice returns the picked choice, empty when dismissed
func (m PromptModel) Choice() string {
	return m.chosen
}

// Init initializes the model
func (m PromptModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Prev):
			m.selected = (m.selected - 1 + len(m.choices)) % len(m.choices)
		case key.Matches(msg, m.keys.Next):
			m.selected = (m.selected + 1) % len(m.choices)
		case key.Matches(msg, m.keys.Choose):
			m.chosen = m.choices[m.selected]
		case key.Matches(msg, m.keys.Dismiss):
			forced := m.standalone && msg.String() == "ctrl+c"
			if !m.cancellable && !forced {
				return m, nil
			}
			m.dismissed = true
		default:
			// Y/N shortcuts for yes/no dialogs
			if choice, ok := m.shortcut(msg.String()); ok {
				m.chosen = choice
			}
		}

		if m.standalone && m.Answered() {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m PromptModel) shortcut(s string) (string, bool) {
	for _, choice := range m.choices {
		if strings.EqualFold(s, choice[:1]) && (choice == choiceYes || choice == choiceNo) {
			return choice, true
		}
	}
	return "", false
}

// View renders the dialog centered in the available space
func (m PromptModel) View() string {
	if m.standalone && m.Answered() {
		return ""
	}

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	content.WriteString(titleStyle.Render(m.title))
	content.WriteString("\n\n")

	if m.message != "" {
		messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		content.WriteString(messageStyle.Render(m.message))
		content.WriteString("\n\n")
	}

	buttons := make([]string, 0, len(m.choices)*2)
	for i, choice := range m.choices {
		style := lipgloss.NewStyle().Padding(0, 2)
		if i == m.selected {
			background := ColorAccentBright
			if isDestructive(choice) {
				background = ColorError
			}
			style = style.
				Background(lipgloss.Color(background)).
				Foreground(lipgloss.Color("#000000")).
				Bold(true)
		}
		if i > 0 {
			buttons = append(buttons, "   ")
		}
		buttons = append(buttons, style.Render(choice))
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))
	content.WriteString("\n\n")

	keys := m.keys
	keys.Dismiss.SetEnabled(m.cancellable)
	content.WriteString(m.help.View(keys))

	modal := lipgloss.NewStyle().
		Width(56).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content.String())

	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func isDestructive(choice string) bool {
	switch choice {
	case "Stop", "Reset", "Delete", "Clear", choiceNo:
		return true
	}
	return false
}

// Prompter asks the user in the terminal. It implements timer.Notifier
// for runs without the full-screen timer.
type Prompter struct {
	Options []tea.ProgramOption
}

// Notify shows a dialog and blocks until a choice is made or ctx ends
func (p Prompter) Notify(ctx context.Context, title, message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices to offer")
	}

	model := NewPrompt(title, message, choices, false)
	model.standalone = true
	return p.run(ctx, model)
}

// Confirm asks a yes/no question. Dismissing counts as no.
func (p Prompter) Confirm(ctx context.Context, title, message string) (bool, error) {
	model := NewPrompt(title, message, []string{choiceYes, choiceNo}, true)
	model.standalone = true

	choice, err := p.run(ctx, model)
	if errors.Is(err, ErrDismissed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return choice == choiceYes, nil
}

func (p Prompter) run(ctx context.Context, model PromptModel) (string, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.Options...)
	finalModel, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	m, ok := finalModel.(PromptModel)
	if !ok || m.chosen == "" {
		return "", ErrDismissed
	}
	return m.chosen, nil
}
