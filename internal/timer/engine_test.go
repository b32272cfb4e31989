package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/focus/internal/clock"
	"github.com/balkashynov/focus/internal/models"
)

type fakeClock struct {
	armed      bool
	generation uint64
	starts     int
}

func (c *fakeClock) Start() {
	if c.armed {
		return
	}
	c.armed = true
	c.generation++
	c.starts++
}

func (c *fakeClock) Stop() {
	c.armed = false
}

func (c *fakeClock) Accept(t clock.Tick) bool {
	return c.armed && t.Generation == c.generation
}

func (c *fakeClock) tick() clock.Tick {
	return clock.Tick{Generation: c.generation, At: time.Now()}
}

type fakeRecorder struct {
	saved []models.TimerState
	err   error
}

func (r *fakeRecorder) Save(state models.TimerState) (models.Session, error) {
	r.saved = append(r.saved, state)
	if r.err != nil && IsValidation(r.err) {
		return models.Session{}, r.err
	}
	return models.Session{ID: "s1", Task: state.Task, DurationSeconds: state.CountdownSeconds - state.Seconds}, r.err
}

type fakeAlerter struct {
	calls int
	err   error
}

func (a *fakeAlerter) Alert() error {
	a.calls++
	return a.err
}

type fakeNotifier struct {
	answer string
	asked  []string
}

func (n *fakeNotifier) Notify(_ context.Context, title, _ string, _ []string) (string, error) {
	n.asked = append(n.asked, title)
	return n.answer, nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock, *fakeRecorder) {
	t.Helper()
	clk := &fakeClock{}
	rec := &fakeRecorder{}
	e := New(DefaultConfig(), clk, rec, nil, nil)
	t.Cleanup(e.Close)
	return e, clk, rec
}

// advance delivers n ticks and returns the first completion raised.
func advance(e *Engine, clk *fakeClock, n int) *Completion {
	var completion *Completion
	for i := 0; i < n; i++ {
		if c := e.Tick(clk.tick()); c != nil && completion == nil {
			completion = c
		}
	}
	return completion
}

func TestNewEngineDefaults(t *testing.T) {
	e, clk, _ := newTestEngine(t)

	state := e.State()
	assert.Equal(t, models.ModeStopwatch, state.Mode)
	assert.Equal(t, 0, state.Seconds)
	assert.False(t, state.Running)
	assert.Equal(t, 25*60, state.CountdownSeconds)
	assert.False(t, clk.armed)
}

func TestStopwatchCountsUp(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("write report")
	require.NoError(t, e.Start())

	for i := 1; i <= 37; i++ {
		assert.Nil(t, e.Tick(clk.tick()))
		assert.Equal(t, i, e.State().Seconds)
	}
	assert.True(t, e.State().Running)
	assert.True(t, clk.armed)
}

func TestStartRequiresTask(t *testing.T) {
	for _, mode := range []models.TimerMode{models.ModeStopwatch, models.ModeCountdown} {
		t.Run(string(mode), func(t *testing.T) {
			e, clk, _ := newTestEngine(t)
			require.NoError(t, e.SwitchMode(mode))
			e.SetTask("   ")
			before := e.State()

			err := e.Start()
			assert.ErrorIs(t, err, ErrMissingTask)
			assert.Equal(t, before, e.State())
			assert.False(t, clk.armed)
		})
	}
}

func TestPomodoroStartsWithoutTask(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModePomodoro))

	require.NoError(t, e.Start())
	assert.True(t, clk.armed)
}

func TestCountdownStartRejectsZero(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("read")
	e.state.Seconds = 0

	assert.ErrorIs(t, e.Start(), ErrZeroDuration)
	assert.False(t, e.State().Running)
	assert.False(t, clk.armed)
}

func TestCountdownCompletesAfterTargetTicks(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	alerter := &fakeAlerter{err: errors.New("no speaker")}
	e.alerter = alerter

	require.NoError(t, e.SetCountdownMinutes(5))
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("read chapter")
	require.NoError(t, e.Start())

	assert.Nil(t, advance(e, clk, 299))
	assert.Equal(t, 1, e.State().Seconds)

	completion := e.Tick(clk.tick())
	require.NotNil(t, completion)
	assert.Equal(t, models.ModeCountdown, completion.Mode)
	assert.Equal(t, []string{ChoiceSave, ChoiceRestart}, completion.Choices)
	assert.Contains(t, completion.Message, "read chapter")
	assert.Equal(t, 1, alerter.calls)

	state := e.State()
	assert.Equal(t, 0, state.Seconds)
	assert.False(t, state.Running)
	assert.False(t, clk.armed)

	// further ticks are dropped, the value never goes negative
	assert.Nil(t, e.Tick(clk.tick()))
	assert.Equal(t, 0, e.State().Seconds)

	outcome, err := e.Resolve(ChoiceRestart)
	require.NoError(t, err)
	assert.Equal(t, ChoiceRestart, outcome.Choice)
	assert.Nil(t, outcome.Session)
	assert.Equal(t, 300, e.State().Seconds)
	assert.True(t, e.State().Running)
	assert.True(t, clk.armed)
	assert.Nil(t, e.Pending())
}

func TestCountdownSaveChoice(t *testing.T) {
	e, clk, rec := newTestEngine(t)
	require.NoError(t, e.SetCountdownMinutes(1))
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("stretch")
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 60))

	outcome, err := e.Resolve(ChoiceSave)
	require.NoError(t, err)
	require.NotNil(t, outcome.Session)
	assert.Equal(t, 60, outcome.Session.DurationSeconds)

	require.Len(t, rec.saved, 1)
	assert.Equal(t, "stretch", rec.saved[0].Task)
	assert.Equal(t, 0, rec.saved[0].Seconds)

	state := e.State()
	assert.False(t, state.Running)
	assert.Equal(t, 60, state.Seconds)
	assert.Nil(t, e.Pending())
}

func TestSaveChoiceValidationKeepsCompletionPending(t *testing.T) {
	e, clk, rec := newTestEngine(t)
	rec.err = ErrMissingTask
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("x")
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))

	_, err := e.Resolve(ChoiceSave)
	assert.ErrorIs(t, err, ErrMissingTask)
	assert.NotNil(t, e.Pending())

	_, err = e.Resolve(ChoiceRestart)
	require.NoError(t, err)
	assert.True(t, e.State().Running)
}

func TestSaveChoiceWriteFailureStillResolves(t *testing.T) {
	e, clk, rec := newTestEngine(t)
	writeErr := errors.New("disk full")
	rec.err = writeErr
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("x")
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))

	outcome, err := e.Resolve(ChoiceSave)
	assert.ErrorIs(t, err, writeErr)
	assert.NotNil(t, outcome.Session)
	assert.Nil(t, e.Pending())
}

func TestPomodoroLongBreakCadence(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())

	for i := 1; i <= 12; i++ {
		completion := advance(e, clk, 25*60)
		require.NotNil(t, completion, "focus %d", i)
		assert.Equal(t, models.PhaseFocus, completion.Phase)
		assert.Equal(t, i, e.State().CompletedFocus)

		want := models.PhaseShortBreak
		if i%4 == 0 {
			want = models.PhaseLongBreak
		}
		assert.Equal(t, want, completion.NextBreak, "focus %d", i)
		assert.Equal(t, []string{ChoiceTakeBreak, ChoiceNextFocus}, completion.Choices)

		_, err := e.Resolve(ChoiceNextFocus)
		require.NoError(t, err)
		assert.Equal(t, models.PhaseFocus, e.State().Phase)
		assert.Equal(t, 25*60, e.State().Seconds)
		assert.True(t, e.State().Running)
	}
}

func TestPomodoroCadenceFollowsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Focus = 2 * time.Second
	cfg.PomodorosBeforeLongBreak = 2
	clk := &fakeClock{}
	e := New(cfg, clk, &fakeRecorder{}, nil, nil)
	defer e.Close()

	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())

	first := advance(e, clk, 2)
	require.NotNil(t, first)
	assert.Equal(t, models.PhaseShortBreak, first.NextBreak)
	_, err := e.Resolve(ChoiceNextFocus)
	require.NoError(t, err)

	second := advance(e, clk, 2)
	require.NotNil(t, second)
	assert.Equal(t, models.PhaseLongBreak, second.NextBreak)
}

func TestPomodoroBreakCycle(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))

	_, err := e.Resolve(ChoiceTakeBreak)
	require.NoError(t, err)
	state := e.State()
	assert.Equal(t, models.PhaseShortBreak, state.Phase)
	assert.Equal(t, 5*60, state.Seconds)
	assert.True(t, state.Running)

	completion := advance(e, clk, 5*60)
	require.NotNil(t, completion)
	assert.Equal(t, models.PhaseShortBreak, completion.Phase)
	assert.Equal(t, []string{ChoiceStartFocus, ChoiceStop}, completion.Choices)
	assert.Equal(t, 1, e.State().CompletedFocus, "break completion does not count")

	_, err = e.Resolve(ChoiceStop)
	require.NoError(t, err)
	state = e.State()
	assert.False(t, state.Running)
	assert.Equal(t, models.PhaseShortBreak, state.Phase)
	assert.Equal(t, 5*60, state.Seconds)

	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 5*60))
	_, err = e.Resolve(ChoiceStartFocus)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseFocus, e.State().Phase)
	assert.True(t, e.State().Running)
}

func TestPauseIsIdempotent(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("code")
	require.NoError(t, e.Start())
	advance(e, clk, 3)

	e.Pause()
	once := e.State()
	e.Pause()

	assert.Equal(t, once, e.State())
	assert.False(t, clk.armed)
}

func TestTickAfterPauseIsDropped(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("code")
	require.NoError(t, e.Start())

	inFlight := clk.tick()
	e.Pause()
	assert.Nil(t, e.Tick(inFlight))
	assert.Equal(t, 0, e.State().Seconds)

	require.NoError(t, e.Start())
	assert.Nil(t, e.Tick(inFlight), "tick from an earlier arming")
	assert.Equal(t, 0, e.State().Seconds)

	e.Tick(clk.tick())
	assert.Equal(t, 1, e.State().Seconds)
}

func TestSwitchModeWhileRunningFails(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("code")
	require.NoError(t, e.Start())
	advance(e, clk, 4)
	before := e.State()

	for _, mode := range []models.TimerMode{models.ModeCountdown, models.ModePomodoro, models.ModeStopwatch} {
		assert.ErrorIs(t, e.SwitchMode(mode), ErrInvalidTransition)
		assert.Equal(t, before, e.State())
	}
}

func TestSwitchModeInitialisesSeconds(t *testing.T) {
	e, clk, _ := newTestEngine(t)

	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	assert.Equal(t, 25*60, e.State().Seconds)

	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))
	_, err := e.Resolve(ChoiceTakeBreak)
	require.NoError(t, err)
	e.Pause()

	require.NoError(t, e.SwitchMode(models.ModeStopwatch))
	assert.Equal(t, 0, e.State().Seconds)

	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	state := e.State()
	assert.Equal(t, models.PhaseFocus, state.Phase)
	assert.Equal(t, 25*60, state.Seconds)
	assert.Equal(t, 1, state.CompletedFocus, "focus count survives mode switches")

	assert.Error(t, e.SwitchMode(models.TimerMode("lap")))
}

func TestResetPausedPomodoroNeedsNoConfirmation(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())
	advance(e, clk, 10)
	e.Pause()
	assert.Equal(t, 1490, e.State().Seconds)

	require.NoError(t, e.Reset(false))
	assert.Equal(t, 1500, e.State().Seconds)
	assert.Equal(t, models.PhaseFocus, e.State().Phase)
}

func TestResetRunningNeedsConfirmation(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("code")
	require.NoError(t, e.Start())
	advance(e, clk, 5)
	require.True(t, e.Lap())

	before := e.State()
	assert.ErrorIs(t, e.Reset(false), ErrConfirmationRequired)
	assert.Equal(t, before, e.State())
	assert.True(t, clk.armed)

	require.NoError(t, e.Reset(true))
	state := e.State()
	assert.Equal(t, 0, state.Seconds)
	assert.Empty(t, state.Laps)
	assert.False(t, state.Running)
	assert.False(t, clk.armed)
}

func TestResetCountdownRestoresTarget(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SetCountdownMinutes(10))
	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	e.SetTask("read")
	require.NoError(t, e.Start())
	advance(e, clk, 42)

	require.NoError(t, e.Reset(true))
	assert.Equal(t, 600, e.State().Seconds)
}

func TestSetCountdownMinutes(t *testing.T) {
	e, _, _ := newTestEngine(t)

	require.NoError(t, e.SetCountdownMinutes(45))
	assert.Equal(t, 45*60, e.State().CountdownSeconds)
	assert.Equal(t, 0, e.State().Seconds, "stopwatch value untouched")

	require.NoError(t, e.SwitchMode(models.ModeCountdown))
	require.NoError(t, e.SetCountdownMinutes(15))
	assert.Equal(t, 15*60, e.State().Seconds)

	assert.ErrorIs(t, e.SetCountdownMinutes(0), ErrZeroDuration)

	require.NoError(t, e.AdjustCountdown(-30))
	assert.Equal(t, 60, e.State().CountdownSeconds)

	e.SetTask("read")
	require.NoError(t, e.Start())
	before := e.State()
	require.NoError(t, e.SetCountdownMinutes(90))
	assert.Equal(t, before, e.State(), "ignored while running")
}

func TestLapsOnlyWhileStopwatchRuns(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	e.SetTask("run")
	assert.False(t, e.Lap())

	require.NoError(t, e.Start())
	advance(e, clk, 3)
	assert.True(t, e.Lap())
	advance(e, clk, 4)
	assert.True(t, e.Lap())
	assert.Equal(t, []int{3, 7}, e.State().Laps)

	e.Pause()
	assert.False(t, e.Lap())
}

func TestCommandsWaitForChoice(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))

	assert.ErrorIs(t, e.Start(), ErrAwaitingChoice)
	assert.ErrorIs(t, e.Reset(true), ErrAwaitingChoice)
	assert.ErrorIs(t, e.SwitchMode(models.ModeStopwatch), ErrAwaitingChoice)
	assert.ErrorIs(t, e.SetCountdownMinutes(5), ErrAwaitingChoice)
	_, err := e.Save()
	assert.ErrorIs(t, err, ErrAwaitingChoice)

	_, err = e.Resolve(ChoiceRestart)
	assert.ErrorIs(t, err, ErrUnknownChoice)
	assert.NotNil(t, e.Pending())
}

func TestPromptAsksNotifier(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	notifier := &fakeNotifier{answer: ChoiceTakeBreak}

	outcome, err := e.Prompt(context.Background(), notifier)
	require.NoError(t, err)
	assert.Empty(t, outcome.Choice)
	assert.Empty(t, notifier.asked, "nothing pending")

	require.NoError(t, e.SwitchMode(models.ModePomodoro))
	require.NoError(t, e.Start())
	require.NotNil(t, advance(e, clk, 25*60))

	outcome, err = e.Prompt(context.Background(), notifier)
	require.NoError(t, err)
	assert.Equal(t, ChoiceTakeBreak, outcome.Choice)
	assert.Len(t, notifier.asked, 1)
	assert.Equal(t, models.PhaseShortBreak, e.State().Phase)
}

func TestManualSaveDelegates(t *testing.T) {
	e, clk, rec := newTestEngine(t)
	e.SetTask("email")
	require.NoError(t, e.Start())
	advance(e, clk, 120)

	_, err := e.Save()
	require.NoError(t, err)
	require.Len(t, rec.saved, 1)
	assert.Equal(t, 120, rec.saved[0].Seconds)
	assert.Equal(t, models.ModeStopwatch, rec.saved[0].Mode)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	events := e.Subscribe(8)

	e.SetTask("code")
	require.NoError(t, e.Start())
	e.Tick(clk.tick())

	var kinds []EventKind
	for len(events) > 0 {
		kinds = append(kinds, (<-events).Kind)
	}
	assert.Equal(t, []EventKind{EventStateChange, EventStateChange, EventTick}, kinds)

	e.Close()
	_, ok := <-events
	assert.False(t, ok)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:00", FormatClock(-5))
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "59:59", FormatClock(3599))
	assert.Equal(t, "1:00:05", FormatClock(3605))
}
