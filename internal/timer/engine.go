// Package timer holds the stopwatch, countdown and Pomodoro engine.
//
// An Engine is owned by a single goroutine: the UI loop calls its commands
// and feeds it the ticks read from a clock.Driver. Nothing inside locks.
package timer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/balkashynov/focus/internal/clock"
	"github.com/balkashynov/focus/internal/models"
)

// Config contains the durations the engine counts with.
type Config struct {
	Focus                    time.Duration
	ShortBreak               time.Duration
	LongBreak                time.Duration
	PomodorosBeforeLongBreak int
	CountdownMinutes         int
}

// DefaultConfig returns the classic 25/5/15 cycle with a long break every fourth focus.
func DefaultConfig() Config {
	return Config{
		Focus:                    25 * time.Minute,
		ShortBreak:               5 * time.Minute,
		LongBreak:                15 * time.Minute,
		PomodorosBeforeLongBreak: 4,
		CountdownMinutes:         25,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Focus < time.Second {
		c.Focus = defaults.Focus
	}
	if c.ShortBreak < time.Second {
		c.ShortBreak = defaults.ShortBreak
	}
	if c.LongBreak < time.Second {
		c.LongBreak = defaults.LongBreak
	}
	if c.PomodorosBeforeLongBreak <= 0 {
		c.PomodorosBeforeLongBreak = defaults.PomodorosBeforeLongBreak
	}
	if c.CountdownMinutes <= 0 {
		c.CountdownMinutes = defaults.CountdownMinutes
	}
	return c
}

// Clock is the tick source an Engine arms and disarms.
type Clock interface {
	Start()
	Stop()
	Accept(clock.Tick) bool
}

// Recorder persists a session built from a state snapshot.
type Recorder interface {
	Save(state models.TimerState) (models.Session, error)
}

// Engine owns a TimerState and applies commands and ticks to it.
type Engine struct {
	cfg         Config
	clock       Clock
	recorder    Recorder
	alerter     Alerter
	logger      *log.Logger
	state       models.TimerState
	pending     *Completion
	subscribers []chan Event
}

// New creates an idle Stopwatch engine. alerter and logger may be nil.
func New(cfg Config, clk Clock, recorder Recorder, alerter Alerter, logger *log.Logger) *Engine {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:      cfg,
		clock:    clk,
		recorder: recorder,
		alerter:  alerter,
		logger:   logger,
		state: models.TimerState{
			Mode:             models.ModeStopwatch,
			Phase:            models.PhaseFocus,
			CountdownSeconds: cfg.CountdownMinutes * 60,
		},
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns a snapshot of the current state.
func (e *Engine) State() models.TimerState {
	return e.state.Clone()
}

// Start begins counting. Starting a running engine is a no-op.
func (e *Engine) Start() error {
	if e.pending != nil {
		return ErrAwaitingChoice
	}
	if e.state.Running {
		return nil
	}
	if e.state.Mode != models.ModePomodoro && strings.TrimSpace(e.state.Task) == "" {
		return ErrMissingTask
	}
	if e.state.Mode == models.ModeCountdown && e.state.Seconds <= 0 {
		return ErrZeroDuration
	}

	e.resume()
	e.logger.Info("timer started", "mode", e.state.Mode, "phase", e.state.Phase, "seconds", e.state.Seconds)
	return nil
}

// Pause stops counting and keeps the current value. No-op when paused.
func (e *Engine) Pause() {
	if !e.state.Running {
		return
	}
	e.halt()
	e.logger.Info("timer paused", "mode", e.state.Mode, "seconds", e.state.Seconds)
	e.emit(EventStateChange)
}

// Toggle starts a paused engine and pauses a running one.
func (e *Engine) Toggle() error {
	if e.state.Running {
		e.Pause()
		return nil
	}
	return e.Start()
}

// Tick applies one second. Ticks arriving while paused, or rejected by
// the clock as stale, are dropped. A non-nil result means the run completed.
func (e *Engine) Tick(tick clock.Tick) *Completion {
	if !e.state.Running || !e.clock.Accept(tick) {
		return nil
	}

	if e.state.Mode == models.ModeStopwatch {
		e.state.Seconds++
		e.emit(EventTick)
		return nil
	}

	if e.state.Seconds > 1 {
		e.state.Seconds--
		e.emit(EventTick)
		return nil
	}

	e.state.Seconds = 0
	return e.complete()
}

// Reset stops the timer and restores the mode's starting value.
// Resetting a running timer with time on it needs confirmed set;
// otherwise ErrConfirmationRequired is returned and nothing changes.
func (e *Engine) Reset(confirmed bool) error {
	if e.pending != nil {
		return ErrAwaitingChoice
	}
	if e.state.Running && e.state.Seconds > 0 && !confirmed {
		return ErrConfirmationRequired
	}

	e.halt()
	switch e.state.Mode {
	case models.ModeStopwatch:
		e.state.Seconds = 0
		e.state.Laps = nil
	case models.ModeCountdown:
		e.state.Seconds = e.state.CountdownSeconds
	case models.ModePomodoro:
		e.state.Seconds = e.phaseSeconds(e.state.Phase)
	}

	e.logger.Info("timer reset", "mode", e.state.Mode)
	e.emit(EventStateChange)
	return nil
}

// SwitchMode changes the timer mode. It fails while running.
func (e *Engine) SwitchMode(mode models.TimerMode) error {
	if e.pending != nil {
		return ErrAwaitingChoice
	}
	if e.state.Running {
		return ErrInvalidTransition
	}

	switch mode {
	case models.ModeStopwatch:
		e.state.Seconds = 0
		e.state.Laps = nil
	case models.ModeCountdown:
		e.state.Seconds = e.state.CountdownSeconds
	case models.ModePomodoro:
		e.state.Phase = models.PhaseFocus
		e.state.Seconds = e.phaseSeconds(models.PhaseFocus)
	default:
		return fmt.Errorf("unknown timer mode %q", mode)
	}
	e.state.Mode = mode

	e.logger.Debug("mode switched", "mode", mode)
	e.emit(EventStateChange)
	return nil
}

// SetCountdownMinutes sets the Countdown target. Ignored while running.
func (e *Engine) SetCountdownMinutes(minutes int) error {
	if e.state.Running {
		return nil
	}
	if e.pending != nil {
		return ErrAwaitingChoice
	}
	if minutes <= 0 {
		return ErrZeroDuration
	}

	e.state.CountdownSeconds = minutes * 60
	if e.state.Mode == models.ModeCountdown {
		e.state.Seconds = e.state.CountdownSeconds
	}
	e.emit(EventStateChange)
	return nil
}

// AdjustCountdown moves the Countdown target by delta minutes, never below one minute.
func (e *Engine) AdjustCountdown(delta int) error {
	minutes := e.state.CountdownSeconds/60 + delta
	if minutes < 1 {
		minutes = 1
	}
	return e.SetCountdownMinutes(minutes)
}

// SetTask sets the free-text label of the current activity.
func (e *Engine) SetTask(label string) {
	e.state.Task = strings.TrimSpace(label)
	e.emit(EventStateChange)
}

// Lap marks the current elapsed time. Only a running stopwatch takes laps.
func (e *Engine) Lap() bool {
	if e.state.Mode != models.ModeStopwatch || !e.state.Running {
		return false
	}
	e.state.Laps = append(e.state.Laps, e.state.Seconds)
	e.emit(EventStateChange)
	return true
}

// Save records the current run as a session.
func (e *Engine) Save() (models.Session, error) {
	if e.pending != nil {
		return models.Session{}, ErrAwaitingChoice
	}
	return e.recorder.Save(e.state.Clone())
}

// Close stops the clock and releases observers. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.halt()
	e.closeSubscribers()
}

// PhaseSeconds returns the configured length of phase in seconds.
func (e *Engine) PhaseSeconds(phase models.PomodoroPhase) int {
	return e.phaseSeconds(phase)
}

func (e *Engine) phaseSeconds(phase models.PomodoroPhase) int {
	switch phase {
	case models.PhaseShortBreak:
		return int(e.cfg.ShortBreak / time.Second)
	case models.PhaseLongBreak:
		return int(e.cfg.LongBreak / time.Second)
	default:
		return int(e.cfg.Focus / time.Second)
	}
}

func (e *Engine) enterPhase(phase models.PomodoroPhase) {
	e.state.Phase = phase
	e.state.Seconds = e.phaseSeconds(phase)
}

func (e *Engine) resume() {
	e.state.Running = true
	e.clock.Start()
	e.emit(EventStateChange)
}

func (e *Engine) halt() {
	e.state.Running = false
	e.clock.Stop()
}
