// Package session turns timer runs into persisted session records and
// keeps the bounded history and focus stats.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/balkashynov/focus/internal/models"
	"github.com/balkashynov/focus/internal/parser"
	"github.com/balkashynov/focus/internal/timer"
)

// Keys of the persisted values.
const (
	KeySessions = "focusSessions"
	KeyStats    = "focusStats"
)

// DefaultLimit is how many sessions the history keeps.
const DefaultLimit = 10

// ErrPersistence marks a failed durable write. The in-memory history
// already holds the change when it is returned.
var ErrPersistence = errors.New("failed to save session")

// Store is the key-value persistence the recorder writes through.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
	RemoveAll(keys ...string) error
}

// Config controls what a recorder keeps.
type Config struct {
	Limit             int
	FocusDuration     time.Duration // nominal length recorded for a Pomodoro session
	WeeklyGoalMinutes int
}

// Recorder persists sessions and maintains the history, newest first.
type Recorder struct {
	store   Store
	cfg     Config
	logger  *log.Logger
	now     func() time.Time
	history []models.Session
	stats   models.FocusStats
}

// NewRecorder creates a recorder with an empty history. Call Load to read
// what is persisted.
func NewRecorder(store Store, cfg Config, logger *log.Logger) *Recorder {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.FocusDuration <= 0 {
		cfg.FocusDuration = timer.DefaultConfig().Focus
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		stats:  models.FocusStats{WeeklyGoalMinutes: cfg.WeeklyGoalMinutes},
	}
}

// Load reads the persisted history and stats. Missing or unreadable data
// yields an empty history; the problem is logged, never returned.
func (r *Recorder) Load() []models.Session {
	r.history = nil
	if raw, ok := r.read(KeySessions); ok {
		var sessions []models.Session
		if err := json.Unmarshal(raw, &sessions); err != nil {
			r.logger.Warn("discarding corrupt session history", "err", err)
		} else {
			r.history = truncate(sessions, r.cfg.Limit)
		}
	}

	r.stats = models.FocusStats{}
	if raw, ok := r.read(KeyStats); ok {
		if err := json.Unmarshal(raw, &r.stats); err != nil {
			r.logger.Warn("discarding corrupt focus stats", "err", err)
			r.stats = models.FocusStats{}
		}
	}
	if r.cfg.WeeklyGoalMinutes > 0 {
		r.stats.WeeklyGoalMinutes = r.cfg.WeeklyGoalMinutes
	}

	r.logger.Debug("history loaded", "sessions", len(r.history))
	return r.History()
}

// History returns the sessions, newest first.
func (r *Recorder) History() []models.Session {
	return append([]models.Session(nil), r.history...)
}

// Save builds a session from state, prepends it to the history and persists
// the history. A Pomodoro session records the nominal focus length under a
// "Pomodoro <N>" label; other modes need a task label.
func (r *Recorder) Save(state models.TimerState) (models.Session, error) {
	task, tags, duration := r.describe(state)
	if task == "" {
		return models.Session{}, timer.ErrMissingTask
	}
	if duration <= 0 {
		return models.Session{}, timer.ErrZeroDuration
	}

	now := r.now()
	session := models.Session{
		ID:                newID(),
		Task:              task,
		Tags:              tags,
		DurationSeconds:   duration,
		Date:              now.Format(DateLayout),
		FormattedDuration: FormatDuration(duration),
		CreatedAt:         now,
	}

	r.history = truncate(append([]models.Session{session}, r.history...), r.cfg.Limit)
	r.stats = addSession(r.stats, duration, now)

	if err := r.persist(); err != nil {
		r.logger.Error("session kept in memory only", "id", session.ID, "err", err)
		return session, err
	}
	if err := r.persistStats(); err != nil {
		r.logger.Warn("focus stats not saved", "err", err)
	}

	r.logger.Info("session saved", "id", session.ID, "task", session.Task, "seconds", duration)
	return session, nil
}

// Delete removes the session with id. An unknown id leaves the history as
// is, but the history is written either way.
func (r *Recorder) Delete(id string) error {
	kept := r.history[:0:0]
	for _, s := range r.history {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.history = kept

	if err := r.persist(); err != nil {
		r.logger.Error("delete not persisted", "id", id, "err", err)
		return err
	}
	return nil
}

// ClearAll empties the history.
func (r *Recorder) ClearAll() error {
	r.history = nil
	if err := r.store.Remove(KeySessions); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	r.logger.Info("history cleared")
	return nil
}

// Purge empties the history and resets the focus stats.
func (r *Recorder) Purge() error {
	r.history = nil
	r.stats = models.FocusStats{WeeklyGoalMinutes: r.cfg.WeeklyGoalMinutes}
	if err := r.store.RemoveAll(KeySessions, KeyStats); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	r.logger.Info("history and stats purged")
	return nil
}

func (r *Recorder) describe(state models.TimerState) (string, []string, int) {
	switch state.Mode {
	case models.ModePomodoro:
		return fmt.Sprintf("Pomodoro %d", state.CompletedFocus+1), nil, int(r.cfg.FocusDuration / time.Second)
	case models.ModeCountdown:
		label := parser.ParseLabel(state.Task)
		return label.Task, label.Tags, state.CountdownSeconds - state.Seconds
	default:
		label := parser.ParseLabel(state.Task)
		return label.Task, label.Tags, state.Seconds
	}
}

func (r *Recorder) read(key string) ([]byte, bool) {
	raw, ok, err := r.store.Get(key)
	if err != nil {
		r.logger.Warn("read failed", "key", key, "err", err)
		return nil, false
	}
	return raw, ok
}

func (r *Recorder) persist() error {
	sessions := r.history
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := r.store.Set(KeySessions, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func truncate(sessions []models.Session, limit int) []models.Session {
	if len(sessions) > limit {
		return sessions[:limit]
	}
	return sessions
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
