package models

import "time"

// Session is a persisted record of one completed or manually saved focus interval
type Session struct {
	ID                string    `json:"id"`
	Task              string    `json:"task"`
	Tags              []string  `json:"tags,omitempty"`
	DurationSeconds   int       `json:"time"`
	Date              string    `json:"date"` // display form of CreatedAt
	FormattedDuration string    `json:"formattedTime"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FocusStats holds the aggregate counters shown next to the history
type FocusStats struct {
	TodayFocusSeconds int    `json:"todayFocusSeconds"`
	WeeklyGoalMinutes int    `json:"weeklyGoal"`
	CompletedSessions int    `json:"completedSessions"`
	StreakDays        int    `json:"streak"`
	TotalFocusSeconds int    `json:"totalFocusTime"`
	LastFocusDate     string `json:"lastFocusDate,omitempty"` // yyyy-mm-dd, local time
}

// TodayFocusMinutes returns today's focus time in whole minutes
func (s FocusStats) TodayFocusMinutes() int {
	return s.TodayFocusSeconds / 60
}

// WeeklyProgress returns today's focus as a fraction of the weekly goal
func (s FocusStats) WeeklyProgress() float64 {
	if s.WeeklyGoalMinutes <= 0 {
		return 0
	}
	return float64(s.TodayFocusMinutes()) / float64(s.WeeklyGoalMinutes)
}
