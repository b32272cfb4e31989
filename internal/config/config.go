// Package config loads the user's timer preferences from ~/.focus/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/focus/internal/parser"
	"github.com/balkashynov/focus/internal/session"
	"github.com/balkashynov/focus/internal/timer"
)

const (
	dirName  = ".focus"
	fileName = "config.yaml"
)

// Config is the effective configuration after defaults are applied.
type Config struct {
	Focus             time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakAfter    int
	CountdownMinutes  int
	HistoryLimit      int
	WeeklyGoalMinutes int
	DatabasePath      string
	LogPath           string
}

type yamlPomodoro struct {
	Focus          string `yaml:"focus,omitempty"`
	ShortBreak     string `yaml:"short_break,omitempty"`
	LongBreak      string `yaml:"long_break,omitempty"`
	LongBreakAfter int    `yaml:"long_break_after,omitempty"`
}

type yamlConfig struct {
	Pomodoro          yamlPomodoro `yaml:"pomodoro"`
	CountdownMinutes  int          `yaml:"countdown_minutes,omitempty"`
	HistoryLimit      int          `yaml:"history_limit,omitempty"`
	WeeklyGoalMinutes int          `yaml:"weekly_goal_minutes,omitempty"`
	DatabasePath      string       `yaml:"database_path,omitempty"`
	LogPath           string       `yaml:"log_path,omitempty"`
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	t := timer.DefaultConfig()
	return Config{
		Focus:             t.Focus,
		ShortBreak:        t.ShortBreak,
		LongBreak:         t.LongBreak,
		LongBreakAfter:    t.PomodorosBeforeLongBreak,
		CountdownMinutes:  t.CountdownMinutes,
		HistoryLimit:      session.DefaultLimit,
		WeeklyGoalMinutes: 300,
		DatabasePath:      filepath.Join(home, dirName, "focus.db"),
		LogPath:           filepath.Join(home, dirName, "focus.log"),
	}
}

// DefaultPath returns ~/.focus/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the config file at path, or the default path when empty.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	cfg := Default(home)

	if path == "" {
		path = filepath.Join(home, dirName, fileName)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file yamlConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := apply(&cfg, file, home); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Marshal renders cfg in the config file format.
func Marshal(cfg Config) ([]byte, error) {
	file := yamlConfig{
		Pomodoro: yamlPomodoro{
			Focus:          minutes(cfg.Focus),
			ShortBreak:     minutes(cfg.ShortBreak),
			LongBreak:      minutes(cfg.LongBreak),
			LongBreakAfter: cfg.LongBreakAfter,
		},
		CountdownMinutes:  cfg.CountdownMinutes,
		HistoryLimit:      cfg.HistoryLimit,
		WeeklyGoalMinutes: cfg.WeeklyGoalMinutes,
		DatabasePath:      cfg.DatabasePath,
		LogPath:           cfg.LogPath,
	}

	serialized, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return serialized, nil
}

// Timer returns the engine settings.
func (c Config) Timer() timer.Config {
	return timer.Config{
		Focus:                    c.Focus,
		ShortBreak:               c.ShortBreak,
		LongBreak:                c.LongBreak,
		PomodorosBeforeLongBreak: c.LongBreakAfter,
		CountdownMinutes:         c.CountdownMinutes,
	}
}

// Recorder returns the session recorder settings.
func (c Config) Recorder() session.Config {
	return session.Config{
		Limit:             c.HistoryLimit,
		FocusDuration:     c.Focus,
		WeeklyGoalMinutes: c.WeeklyGoalMinutes,
	}
}

func apply(cfg *Config, file yamlConfig, home string) error {
	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"pomodoro.focus", file.Pomodoro.Focus, &cfg.Focus},
		{"pomodoro.short_break", file.Pomodoro.ShortBreak, &cfg.ShortBreak},
		{"pomodoro.long_break", file.Pomodoro.LongBreak, &cfg.LongBreak},
	}
	for _, d := range durations {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		m, err := parser.ParseCountdown(d.value)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = time.Duration(m) * time.Minute
	}

	if file.Pomodoro.LongBreakAfter > 0 {
		cfg.LongBreakAfter = file.Pomodoro.LongBreakAfter
	}
	if file.CountdownMinutes > 0 {
		cfg.CountdownMinutes = file.CountdownMinutes
	}
	if file.HistoryLimit > 0 {
		cfg.HistoryLimit = file.HistoryLimit
	}
	if file.WeeklyGoalMinutes > 0 {
		cfg.WeeklyGoalMinutes = file.WeeklyGoalMinutes
	}
	if file.DatabasePath != "" {
		cfg.DatabasePath = expandHome(file.DatabasePath, home)
	}
	if file.LogPath != "" {
		cfg.LogPath = expandHome(file.LogPath, home)
	}
	return nil
}

func minutes(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d/time.Minute))
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
