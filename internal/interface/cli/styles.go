package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#9146ff")
	colorLive   = lipgloss.Color("#eb0400")
	colorMuted  = lipgloss.Color("#6b6d8a")
	colorWarn   = lipgloss.Color("#ffb31a")
	colorText   = lipgloss.Color("#ecedf5")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	textStyle  = lipgloss.NewStyle().Foreground(colorText)
	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorLive)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn)

	liveBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorLive).
			Padding(0, 1)
	offlineBadge = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("#3a3b52")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	panelStyle  = lipgloss.NewStyle().Padding(1, 2)
)
