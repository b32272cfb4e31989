package tui

import "github.com/charmbracelet/bubbles/key"

// timerKeys are the bindings of the timer screen
type timerKeys struct {
	Toggle    key.Binding
	Reset     key.Binding
	Save      key.Binding
	Lap       key.Binding
	Task      key.Binding
	Stopwatch key.Binding
	Countdown key.Binding
	Pomodoro  key.Binding
	More      key.Binding
	Less      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newTimerKeys() timerKeys {
	return timerKeys{
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Lap:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lap")),
		Task:      key.NewBinding(key.WithKeys("t", "e"), key.WithHelp("t", "edit task")),
		Stopwatch: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "stopwatch")),
		Countdown: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "countdown")),
		Pomodoro:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pomodoro")),
		More:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "countdown minutes")),
		Less:      key.NewBinding(key.WithKeys("-", "_")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k timerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Save, k.Task, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k timerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Save, k.Lap},
		{k.Stopwatch, k.Countdown, k.Pomodoro, k.More},
		{k.Task, k.Help, k.Quit},
	}
}

// historyKeys are the bindings of the history screen
type historyKeys struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func newHistoryKeys() historyKeys {
	return historyKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Delete: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap
func (k historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// promptKeys are the bindings of a choice dialog
type promptKeys struct {
	Prev    key.Binding
	Next    key.Binding
	Choose  key.Binding
	Dismiss key.Binding
}

func newPromptKeys() promptKeys {
	return promptKeys{
		Prev:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/→", "choose")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "tab")),
		Choose:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Dismiss: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Choose, k.Dismiss}
}

// FullHelp implements help.KeyMap
func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
