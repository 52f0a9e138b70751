package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ClockStyle renders the live countdown.
	ClockStyle = lipgloss.NewStyle().Bold(true)

	// PhaseStyle renders the timer phase next to the countdown.
	PhaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// PausedStyle highlights a paused countdown.
	PausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	// OKStyle renders healthy status values.
	OKStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// WarnStyle renders degraded status values.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// ErrorStyle renders failure status values.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// LabelStyle renders field labels in status output.
	LabelStyle = lipgloss.NewStyle().Bold(true)
)

const progressBarWidth = 20

// ProgressBar renders a fixed-width bar for a [0, 1] ratio.
func ProgressBar(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * progressBarWidth)
	bar := make([]rune, progressBarWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
