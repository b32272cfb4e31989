package tui

import "github.com/balkashynov/focus/internal/models"

// Color constants for the focus TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, task label, user input
	ColorSecondaryText = "#B1B8C7" // Subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Logo, active borders, focus phase
	ColorAccentBright = "#A78BFA" // Highlights, running clock

	// Phase Colors
	ColorShortBreak = "#4ECDC4" // Teal
	ColorLongBreak  = "#45B7D1" // Sky blue

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Saved sessions
	ColorWarning = "#F59E0B" // Paused, confirmations
)

// phaseColor returns the accent used for a timer state
func phaseColor(state models.TimerState) string {
	if state.Mode != models.ModePomodoro {
		if state.Running {
			return ColorAccentBright
		}
		return ColorSecondaryText
	}

	switch state.Phase {
	case models.PhaseShortBreak:
		return ColorShortBreak
	case models.PhaseLongBreak:
		return ColorLongBreak
	default:
		return ColorAccentMain
	}
}
