package session

import "fmt"

// DateLayout is how a session's creation time is displayed
const DateLayout = "Jan 2, 03:04 PM"

// FormatDuration renders seconds as "Xh Ym", or "N min" under an hour
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%d min", minutes)
}
