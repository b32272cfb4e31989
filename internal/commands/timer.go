package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/focus/internal/clock"
	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/parser"
	"github.com/balkashynov/focus/internal/session"
	"github.com/balkashynov/focus/internal/timer"
	"github.com/balkashynov/focus/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:     "timer [task]",
	Aliases: []string{"start"},
	Short:   "Run the stopwatch, countdown or Pomodoro timer",
	Long: `Run the timer. Opens the interactive timer by default, use --no-ui for plain output.

Examples:
  focus timer "Write report #work"              # Stopwatch
  focus timer -m countdown -d 45m "Read paper"  # 45 minute countdown
  focus timer -m pomodoro                       # Pomodoro cycle
  focus timer "Fix bug" --no-ui                 # Stopwatch without UI, ctrl+c saves`,
	Args: cobra.ArbitraryArgs,
	Run:  withApp(runTimer),
}

func runTimer(cmd *cobra.Command, args []string, a *app) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	durationFlag, _ := cmd.Flags().GetString("duration")
	noUI, _ := cmd.Flags().GetBool("no-ui")

	mode, err := parseMode(modeFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	driver := clock.New(time.Second, nil)
	defer driver.Close()
	engine := timer.New(a.cfg.Timer(), driver, a.recorder, tui.Bell{}, a.logger)
	defer engine.Close()

	if task := strings.Join(args, " "); task != "" {
		engine.SetTask(task)
	}
	if durationFlag != "" {
		minutes, err := parser.ParseCountdown(durationFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := engine.SetCountdownMinutes(minutes); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	if err := engine.SwitchMode(mode); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if noUI {
		if err := runHeadless(cmd.Context(), engine, driver); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	if _, err := tui.RunTimerTUI(engine, driver); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

// runHeadless runs the engine with progress lines instead of the full-screen UI.
// An interrupt stops the timer; a running stopwatch is saved first.
func runHeadless(ctx context.Context, engine *timer.Engine, driver *clock.Driver) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := engine.Subscribe(16)
	if err := engine.Start(); err != nil {
		if errors.Is(err, timer.ErrMissingTask) {
			return errors.New("a task is required: focus timer \"what you are working on\"")
		}
		return err
	}

	state := engine.State()
	fmt.Printf("⏱️  %s started", state.Mode.Title())
	if state.Task != "" && state.Mode != models.ModePomodoro {
		fmt.Printf(" for: %s", state.Task)
	}
	fmt.Println(" (ctrl+c to stop)")

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return stopHeadless(engine)

		case event := <-events:
			if event.Kind == timer.EventTick {
				printProgress(event.State)
			}

		case tick, ok := <-driver.C():
			if !ok {
				return nil
			}
			if engine.Tick(tick) == nil {
				continue
			}

			fmt.Println()
			outcome, err := engine.Prompt(ctx, tui.Prompter{})
			if err != nil {
				if errors.Is(err, tui.ErrDismissed) || errors.Is(err, context.Canceled) {
					fmt.Println("Stopped.")
					return nil
				}
				if !errors.Is(err, session.ErrPersistence) {
					return err
				}
				fmt.Printf("⚠️  %v\n", err)
			}
			if outcome.Session != nil {
				fmt.Printf("✅ Saved \"%s\" · %s\n", outcome.Session.Task, outcome.Session.FormattedDuration)
			}
			if !engine.State().Running {
				return nil
			}
			state := engine.State()
			fmt.Printf("▶️  %s\n", phaseLabel(state))
		}
	}
}

// stopHeadless pauses the engine and keeps a stopwatch run
func stopHeadless(engine *timer.Engine) error {
	engine.Pause()
	state := engine.State()

	if state.Mode != models.ModeStopwatch || state.Seconds == 0 {
		fmt.Printf("⏹️  Stopped at %s\n", timer.FormatClock(state.Seconds))
		return nil
	}

	s, err := engine.Save()
	if err != nil && !errors.Is(err, session.ErrPersistence) {
		return err
	}
	fmt.Printf("⏹️  Stopped tracking: %s\n", s.Task)
	fmt.Printf("📊 Session duration: %s\n", s.FormattedDuration)
	return err
}

func printProgress(state models.TimerState) {
	fmt.Printf("\r%s  %s   ", timer.FormatClock(state.Seconds), phaseLabel(state))
}

func phaseLabel(state models.TimerState) string {
	if state.Mode == models.ModePomodoro {
		return fmt.Sprintf("%s · %d completed", state.Phase.Title(), state.CompletedFocus)
	}
	return state.Task
}

func parseMode(value string) (models.TimerMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "stopwatch", "sw":
		return models.ModeStopwatch, nil
	case "countdown", "cd":
		return models.ModeCountdown, nil
	case "pomodoro", "pomo":
		return models.ModePomodoro, nil
	}
	return "", fmt.Errorf("unknown mode %q: use stopwatch, countdown or pomodoro", value)
}

func init() {
	timerCmd.Flags().StringP("mode", "m", "stopwatch", "Timer mode: stopwatch|countdown|pomodoro")
	timerCmd.Flags().StringP("duration", "d", "", "Countdown length (25, 25m, 1h30m, 90 minutes)")
	timerCmd.Flags().Bool("no-ui", false, "Run without the interactive timer")
}
