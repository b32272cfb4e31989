package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/focus/internal/models"
)

func TestParseMode(t *testing.T) {
	cases := map[string]models.TimerMode{
		"":          models.ModeStopwatch,
		"Stopwatch": models.ModeStopwatch,
		"cd":        models.ModeCountdown,
		" pomodoro": models.ModePomodoro,
		"pomo":      models.ModePomodoro,
	}
	for input, want := range cases {
		got, err := parseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseMode("lap")
	assert.Error(t, err)
}

func TestFindSession(t *testing.T) {
	sessions := []models.Session{
		{ID: "01890a5d-ac96-774b-bcce-b302099a8057", Task: "write"},
		{ID: "01890a5d-ac96-774b-bcce-b302099a1111", Task: "read"},
	}

	s, err := findSession(sessions, sessions[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "read", s.Task)

	s, err = findSession(sessions, shortID(sessions[0].ID))
	require.NoError(t, err)
	assert.Equal(t, "write", s.Task)

	_, err = findSession(sessions, "01890a5d")
	assert.ErrorContains(t, err, "matches 2 sessions")

	_, err = findSession(sessions, "ffff")
	assert.ErrorContains(t, err, "no session")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "099a8057", shortID("01890a5d-ac96-774b-bcce-b302099a8057"))
	assert.Equal(t, "abc", shortID("abc"))
}
