package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/focus/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's focus, streak and totals",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		stats := a.recorder.Stats()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stats); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		progress := stats.WeeklyProgress()
		barWidth := 30
		filled := int(min(1, progress) * float64(barWidth))

		fmt.Println("📊 Focus Stats")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Today:        %d min of %d min goal (%.0f%%)\n",
			stats.TodayFocusMinutes(), stats.WeeklyGoalMinutes, progress*100)
		fmt.Printf("              [%s%s]\n", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled))
		fmt.Printf("Streak:       %d day(s) 🔥\n", stats.StreakDays)
		fmt.Printf("Sessions:     %s\n", humanize.Comma(int64(stats.CompletedSessions)))
		fmt.Printf("Total focus:  %s\n", session.FormatDuration(stats.TotalFocusSeconds))
	}),
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print stats as JSON")
}
