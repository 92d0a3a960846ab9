package report

import "github.com/charmbracelet/lipgloss"

var (
	colorInfo    = lipgloss.Color("39")
	colorSuccess = lipgloss.Color("34")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("240")
)

var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInfo).
			MarginTop(1)
)
