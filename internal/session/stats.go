package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/balkashynov/focus/internal/models"
)

const dayLayout = "2006-01-02"

// Stats returns the focus stats as of now. Today's minutes drop to zero on
// a new day and the streak lapses after a day without focus.
func (r *Recorder) Stats() models.FocusStats {
	stats := r.stats
	now := r.now()

	switch stats.LastFocusDate {
	case now.Format(dayLayout):
	case now.AddDate(0, 0, -1).Format(dayLayout):
		stats.TodayFocusSeconds = 0
	default:
		stats.TodayFocusSeconds = 0
		stats.StreakDays = 0
	}
	return stats
}

func addSession(stats models.FocusStats, seconds int, now time.Time) models.FocusStats {
	today := now.Format(dayLayout)

	switch stats.LastFocusDate {
	case today:
		stats.TodayFocusSeconds += seconds
		if stats.StreakDays == 0 {
			stats.StreakDays = 1
		}
	case now.AddDate(0, 0, -1).Format(dayLayout):
		stats.StreakDays++
		stats.TodayFocusSeconds = seconds
	default:
		stats.StreakDays = 1
		stats.TodayFocusSeconds = seconds
	}

	stats.LastFocusDate = today
	stats.CompletedSessions++
	stats.TotalFocusSeconds += seconds
	return stats
}

func (r *Recorder) persistStats() error {
	data, err := json.Marshal(r.stats)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := r.store.Set(KeyStats, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
