package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxCountdownMinutes caps a countdown at one day
const MaxCountdownMinutes = 24 * 60

var relativeRegex = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hr|hrs|hour|hours)$`)

// ParseCountdown parses a countdown length into whole minutes
// Supported formats:
// - plain minutes (e.g., "25")
// - Go durations (e.g., "25m", "1h30m")
// - X minutes / X hours (e.g., "90 minutes", "2 hours", "45 min")
func ParseCountdown(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Plain number of minutes first
	if minutes, err := strconv.Atoi(input); err == nil {
		return validateMinutes(minutes)
	}

	if minutes, err := parseRelativeMinutes(input); err == nil {
		return validateMinutes(minutes)
	}

	if d, err := time.ParseDuration(input); err == nil {
		if d%time.Minute != 0 {
			return 0, fmt.Errorf("countdown must be a whole number of minutes")
		}
		return validateMinutes(int(d / time.Minute))
	}

	return 0, fmt.Errorf("invalid duration format. Use: 25, 25m, 1h30m, X minutes or X hours")
}

// parseRelativeMinutes parses formats like "90 minutes" or "2 hours"
func parseRelativeMinutes(input string) (int, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid relative duration format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "h", "hr", "hrs", "hour", "hours":
		return amount * 60, nil
	default:
		return amount, nil
	}
}

func validateMinutes(minutes int) (int, error) {
	if minutes < 1 || minutes > MaxCountdownMinutes {
		return 0, fmt.Errorf("countdown must be between 1 and %d minutes", MaxCountdownMinutes)
	}
	return minutes, nil
}
