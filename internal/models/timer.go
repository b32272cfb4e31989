package models

// TimerMode selects how the timer counts
type TimerMode string

const (
	ModeStopwatch TimerMode = "stopwatch"
	ModeCountdown TimerMode = "countdown"
	ModePomodoro  TimerMode = "pomodoro"
)

// Title returns the heading shown for the mode
func (m TimerMode) Title() string {
	switch m {
	case ModeStopwatch:
		return "Stopwatch"
	case ModeCountdown:
		return "Countdown Timer"
	case ModePomodoro:
		return "Pomodoro Timer"
	default:
		return "Timer"
	}
}

// CountsDown reports whether the mode decrements toward zero
func (m TimerMode) CountsDown() bool {
	return m == ModeCountdown || m == ModePomodoro
}

// PomodoroPhase is a step of the Pomodoro cycle
type PomodoroPhase string

const (
	PhaseFocus      PomodoroPhase = "focus"
	PhaseShortBreak PomodoroPhase = "short_break"
	PhaseLongBreak  PomodoroPhase = "long_break"
)

// Title returns the label shown for the phase
func (p PomodoroPhase) Title() string {
	switch p {
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

// IsBreak reports whether the phase is one of the breaks
func (p PomodoroPhase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// TimerState is the mutable core of the timer engine.
// Seconds is remaining time for Countdown/Pomodoro and elapsed time for Stopwatch.
type TimerState struct {
	Mode             TimerMode     `json:"mode"`
	Seconds          int           `json:"seconds"`
	Running          bool          `json:"running"`
	Phase            PomodoroPhase `json:"phase"`
	CompletedFocus   int           `json:"completedFocus"`
	CountdownSeconds int           `json:"countdownSeconds"`
	Task             string        `json:"task"`
	Laps             []int         `json:"laps,omitempty"`
}

// Clone returns a copy that shares no memory with s
func (s TimerState) Clone() TimerState {
	if s.Laps != nil {
		s.Laps = append([]int(nil), s.Laps...)
	}
	return s
}
