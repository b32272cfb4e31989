package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for focus",
	Long:  `Display detailed help for all focus commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███████╗ ██████╗  ██████╗██╗   ██╗███████╗
██╔════╝██╔═══██╗██╔════╝██║   ██║██╔════╝
█████╗  ██║   ██║██║     ██║   ██║███████╗
██╔══╝  ██║   ██║██║     ██║   ██║╚════██║
██║     ╚██████╔╝╚██████╗╚██████╔╝███████║
╚═╝      ╚═════╝  ╚═════╝ ╚═════╝ ╚══════╝

focus - Stopwatch, Countdown & Pomodoro timer

COMMANDS:

  timer [task]            Run the timer (alias: start)
    -m, --mode            stopwatch|countdown|pomodoro (default stopwatch)
    -d, --duration        Countdown length: 25, 25m, 1h30m, 90 minutes
    --no-ui               Plain progress output, ctrl+c stops (and saves a stopwatch)

    Task labels:
      #hashtags     Stored as session tags

    Timer keys:
      space         Start/pause
      r             Reset (asks while running)
      s             Save session
      l             Lap (stopwatch)
      t             Edit task
      1/2/3         Stopwatch / Countdown / Pomodoro
      +/-           Countdown length
      ?             All keys
      q             Quit

    Example:
      focus timer -m countdown -d 45m "Review PR #work"

  history                 Browse recent sessions (alias: h)
    --no-ui               Plain table
    --json                JSON output
    ls                    Print recent sessions
    rm <id>               Delete a session
    clear                 Delete all sessions
      -y, --yes           Skip confirmation
      --all               Also reset focus stats

  stats                   Today's focus, streak and totals
    --json                JSON output

  config                  Show the effective configuration
    init                  Write ~/.focus/config.yaml with defaults

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.focus/config.yaml)
  --debug                 Debug logging to ~/.focus/focus.log

`)
}
