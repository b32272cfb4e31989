package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/tui"
)

const shortIDLength = 8

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Browse recent focus sessions",
	Long: `Browse the most recent sessions with the interactive history, or print them with --no-ui.

Quick actions:
  ↑/↓    Navigate sessions
  d      Delete selected session
  c      Clear all sessions
  esc/q  Quit`,
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		noUI, _ := cmd.Flags().GetBool("no-ui")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		switch {
		case jsonOutput:
			renderHistoryJSON(a.recorder.History())
		case noUI:
			renderHistoryTable(a.recorder.History())
		default:
			if err := tui.RunHistoryTUI(a.recorder); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}),
}

var historyListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Print recent sessions",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			renderHistoryJSON(a.recorder.History())
			return
		}
		renderHistoryTable(a.recorder.History())
	}),
}

var historyRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a session by id or the short id shown by ls",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		s, err := findSession(a.recorder.History(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := a.recorder.Delete(s.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted \"%s\" (%s, %s)\n", s.Task, s.FormattedDuration, s.Date)
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		yes, _ := cmd.Flags().GetBool("yes")
		all, _ := cmd.Flags().GetBool("all")

		message := "Are you sure you want to delete all sessions?"
		if all {
			message = "Delete all sessions and reset your focus stats?"
		}

		if !yes {
			ok, err := tui.Prompter{}.Confirm(context.Background(), "Clear All Sessions", message)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				fmt.Println("❌ Nothing deleted.")
				return
			}
		}

		wipe := a.recorder.ClearAll
		if all {
			wipe = a.recorder.Purge
		}
		if err := wipe(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ History cleared.")
	}),
}

// findSession resolves a full id, or a short id matching exactly one session
func findSession(sessions []models.Session, ref string) (models.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Session{}, fmt.Errorf("empty session id")
	}

	var matches []models.Session
	for _, s := range sessions {
		if s.ID == ref {
			return s, nil
		}
		if strings.HasSuffix(strings.ReplaceAll(s.ID, "-", ""), ref) || strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return models.Session{}, fmt.Errorf("no session with id %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Session{}, fmt.Errorf("id %q matches %d sessions, use more characters", ref, len(matches))
	}
}

// renderHistoryTable prints sessions as a plain table
func renderHistoryTable(sessions []models.Session) {
	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Use 'focus timer \"task\"' to record your first one.")
		return
	}

	fmt.Printf("%-*s  %-36s  %-8s  %-16s  %s\n", shortIDLength, "ID", "TASK", "TIME", "DATE", "SAVED")
	fmt.Println(strings.Repeat("-", 90))

	for _, s := range sessions {
		task := s.Task
		if len(s.Tags) > 0 {
			task += " #" + strings.Join(s.Tags, " #")
		}
		if len([]rune(task)) > 36 {
			task = string([]rune(task)[:33]) + "..."
		}

		fmt.Printf("%-*s  %-36s  %-8s  %-16s  %s\n",
			shortIDLength, shortID(s.ID),
			task,
			s.FormattedDuration,
			s.Date,
			humanize.Time(s.CreatedAt))
	}
}

// renderHistoryJSON prints sessions in their stored form
func renderHistoryJSON(sessions []models.Session) {
	if sessions == nil {
		sessions = []models.Session{}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sessions); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

// shortID returns the last characters of id, the random part of a UUIDv7
func shortID(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) <= shortIDLength {
		return compact
	}
	return compact[len(compact)-shortIDLength:]
}

func init() {
	historyCmd.Flags().Bool("no-ui", false, "Print sessions instead of opening the interactive history")
	historyCmd.Flags().Bool("json", false, "Print sessions as JSON")
	historyListCmd.Flags().Bool("json", false, "Print sessions as JSON")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	historyClearCmd.Flags().Bool("all", false, "Also reset the focus stats")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
}
