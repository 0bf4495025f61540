package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorRunning = colorGreen
	colorPaused  = colorPeach
	colorError   = colorRed
	colorInfo    = colorTeal
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText)

	stateStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusStyle  = lipgloss.NewStyle().Foreground(colorInfo)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	accentStyle  = lipgloss.NewStyle().Foreground(colorMauve)
	footerStyle  = lipgloss.NewStyle().Background(colorSurface0).Padding(0, 2)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
)

// clockStyleFor tints the clock border by running state.
func clockStyleFor(running bool, elapsed int) lipgloss.Style {
	switch {
	case running:
		return clockStyle.BorderForeground(colorRunning)
	case elapsed > 0:
		return clockStyle.BorderForeground(colorPaused)
	default:
		return clockStyle
	}
}
