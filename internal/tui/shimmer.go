package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	shimmerInterval   = 100 * time.Millisecond
	shimmerCycle      = 1800 * time.Millisecond
	shimmerPause      = 500 * time.Millisecond
	shimmerWidthRatio = 0.25
)

// shimmerTickMsg advances the shimmer animation
type shimmerTickMsg struct{}

// Shimmer sweeps a soft highlight across a line of text
type Shimmer struct {
	center   float64
	pausedAt time.Time
	active   bool
}

// NewShimmer creates an active shimmer
func NewShimmer() *Shimmer {
	return &Shimmer{active: true}
}

// Tick schedules the next animation frame, or nothing when inactive
func (s *Shimmer) Tick() tea.Cmd {
	if !s.active {
		return nil
	}
	return tea.Tick(shimmerInterval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// SetActive turns the animation on or off
func (s *Shimmer) SetActive(active bool) {
	s.active = active
}

// Reset restarts the sweep (call when the highlighted text changes)
func (s *Shimmer) Reset() {
	s.center = 0
	s.pausedAt = time.Time{}
}

// Advance moves the highlight by one frame for text of length n
func (s *Shimmer) Advance(n int, now time.Time) {
	if !s.active || n == 0 {
		return
	}

	if !s.pausedAt.IsZero() {
		if now.Sub(s.pausedAt) >= shimmerPause {
			s.pausedAt = time.Time{}
			s.center = -float64(n) * shimmerWidthRatio
		}
		return
	}

	// The sweep starts before the text and ends after it
	framesPerCycle := float64(shimmerCycle) / float64(shimmerInterval)
	distance := float64(n) * (1 + 2*shimmerWidthRatio)
	s.center += distance / framesPerCycle

	end := float64(n) * (1 + shimmerWidthRatio)
	if s.center >= end {
		s.center = end
		s.pausedAt = now
	}
}

// Render colors text with the highlight at its current position
func (s *Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.active {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(text)
	}

	sigma := math.Max(1, shimmerWidthRatio*float64(len(runes))/2)

	// Base #B1B8C7 blends toward #EAE6FF
	base := [3]float64{177, 184, 199}
	highlight := [3]float64{234, 230, 255}

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))

		color := fmt.Sprintf("#%02X%02X%02X",
			int(base[0]*(1-w)+highlight[0]*w),
			int(base[1]*(1-w)+highlight[1]*w),
			int(base[2]*(1-w)+highlight[2]*w))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}
	return b.String()
}
