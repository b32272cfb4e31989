package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/balkashynov/focus/internal/config"
	"github.com/balkashynov/focus/internal/db"
	"github.com/balkashynov/focus/internal/logging"
	"github.com/balkashynov/focus/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "A terminal focus timer",
	Long: `focus is a stopwatch, countdown and Pomodoro timer for the terminal.
Completed sessions are kept in a short history together with your daily focus stats.`,
	SilenceUsage: true,
}

// app holds what a command needs once config, log and storage are open
type app struct {
	cfg      config.Config
	logger   *log.Logger
	store    *db.Store
	recorder *session.Recorder
	closers  []io.Closer
}

// openApp loads the config, opens the log file and the database and
// reads the session history
func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.Open(cfg.LogPath, debug)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logFile}}

	store, err := db.Open(cfg.DatabasePath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, store)

	a.recorder = session.NewRecorder(store, cfg.Recorder(), logger)
	a.recorder.Load()

	logger.Debug("app opened", "db", cfg.DatabasePath, "sessions", len(a.recorder.History()))
	return a, nil
}

// Close releases everything openApp opened, newest first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
}

// withApp wraps a command function to open the app first
func withApp(fn func(*cobra.Command, []string, *app)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.Close()
		fn(cmd, args, a)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("focus %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.focus/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug output to the log file")

	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
