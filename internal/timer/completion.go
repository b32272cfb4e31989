package timer

import (
	"context"
	"fmt"
	"slices"

	"github.com/balkashynov/focus/internal/models"
)

// Choices offered when a run completes.
const (
	ChoiceSave       = "Save Session"
	ChoiceRestart    = "Restart"
	ChoiceTakeBreak  = "Take a Break"
	ChoiceNextFocus  = "Start Next Focus"
	ChoiceStartFocus = "Start Focus"
	ChoiceStop       = "Stop"
)

// Completion describes a Countdown or Pomodoro phase that reached zero
// and the choices the user has to pick from.
type Completion struct {
	Mode      models.TimerMode
	Phase     models.PomodoroPhase // phase that just ended
	NextBreak models.PomodoroPhase // break offered after a focus phase
	Title     string
	Message   string
	Choices   []string
}

// Offers reports whether choice is one of the completion's choices.
func (c Completion) Offers(choice string) bool {
	return slices.Contains(c.Choices, choice)
}

// Outcome is the result of resolving a completion.
type Outcome struct {
	Choice  string
	Session *models.Session // set when the choice saved a session
}

// Notifier asks the user to pick one of choices.
type Notifier interface {
	Notify(ctx context.Context, title, message string, choices []string) (string, error)
}

// Alerter fires a completion cue. Failures are ignored by the engine.
type Alerter interface {
	Alert() error
}

func (e *Engine) complete() *Completion {
	e.halt()
	if e.alerter != nil {
		if err := e.alerter.Alert(); err != nil {
			e.logger.Debug("alert failed", "err", err)
		}
	}

	c := Completion{Mode: e.state.Mode, Phase: e.state.Phase}
	switch {
	case e.state.Mode == models.ModeCountdown:
		c.Title = "⏰ Time's Up!"
		c.Message = "Your countdown timer has ended."
		if e.state.Task != "" {
			c.Message += "\nTask: " + e.state.Task
		}
		c.Choices = []string{ChoiceSave, ChoiceRestart}

	case e.state.Phase == models.PhaseFocus:
		e.state.CompletedFocus++
		c.NextBreak = models.PhaseShortBreak
		if e.state.CompletedFocus%e.cfg.PomodorosBeforeLongBreak == 0 {
			c.NextBreak = models.PhaseLongBreak
		}
		c.Title = "🎉 Focus Session Complete!"
		c.Message = fmt.Sprintf("Great work! You've completed %d pomodoro%s.",
			e.state.CompletedFocus, plural(e.state.CompletedFocus))
		c.Choices = []string{ChoiceTakeBreak, ChoiceNextFocus}

	default:
		c.Title = "⏰ Break Time Over!"
		c.Message = "Your break is complete. Ready to focus again?"
		c.Choices = []string{ChoiceStartFocus, ChoiceStop}
	}

	e.pending = &c
	e.logger.Info("timer completed", "mode", c.Mode, "phase", c.Phase, "completed_focus", e.state.CompletedFocus)
	e.emit(EventCompletion)

	result := c
	return &result
}

// Pending returns the unanswered completion, if any.
func (e *Engine) Pending() *Completion {
	if e.pending == nil {
		return nil
	}
	c := *e.pending
	return &c
}

// Resolve applies the user's answer to the pending completion.
// A Save that fails validation leaves the completion pending; a Save whose
// write failed still resolves and returns the session with the error.
func (e *Engine) Resolve(choice string) (Outcome, error) {
	if e.pending == nil {
		return Outcome{}, nil
	}
	if !e.pending.Offers(choice) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}
	outcome := Outcome{Choice: choice}

	switch choice {
	case ChoiceSave:
		session, err := e.recorder.Save(e.state.Clone())
		if err != nil && IsValidation(err) {
			return Outcome{}, err
		}
		e.pending = nil
		e.state.Seconds = e.state.CountdownSeconds
		e.emit(EventStateChange)
		outcome.Session = &session
		return outcome, err

	case ChoiceRestart:
		e.pending = nil
		e.state.Seconds = e.state.CountdownSeconds
		e.resume()

	case ChoiceTakeBreak:
		next := e.pending.NextBreak
		e.pending = nil
		e.enterPhase(next)
		e.resume()

	case ChoiceNextFocus, ChoiceStartFocus:
		e.pending = nil
		e.enterPhase(models.PhaseFocus)
		e.resume()

	case ChoiceStop:
		e.pending = nil
		e.state.Seconds = e.phaseSeconds(e.state.Phase)
		e.emit(EventStateChange)
	}

	return outcome, nil
}

// Prompt asks notifier for a choice on the pending completion and applies it.
// It returns immediately when nothing is pending.
func (e *Engine) Prompt(ctx context.Context, notifier Notifier) (Outcome, error) {
	if e.pending == nil {
		return Outcome{}, nil
	}
	c := *e.pending

	choice, err := notifier.Notify(ctx, c.Title, c.Message, c.Choices)
	if err != nil {
		return Outcome{}, err
	}
	return e.Resolve(choice)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
