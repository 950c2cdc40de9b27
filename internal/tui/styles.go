package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface1 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	statusStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	addButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBase).
			Background(colorAccent).
			Padding(0, 1)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginTop(1)

	formBusyStyle = formStyle.BorderForeground(colorSurface1)

	rowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorSurface1).
			PaddingLeft(1)

	dayOnStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorMuted).
			Padding(0, 1)

	dayOffStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurface1).
			Padding(0, 1)

	dayCursorStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1).
			MarginTop(1)
)

func alertColor(k alertKind) lipgloss.Color {
	if k == alertWarning {
		return colorWarn
	}
	return colorError
}
