package report

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleFile = lipgloss.NewStyle().
			Bold(true)

	styleOK = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	stylePath = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleDetail = lipgloss.NewStyle().
			PaddingLeft(2)
)

// StatusIcon returns a colored status indicator
func StatusIcon(status string) string {
	switch status {
	case "ok":
		return styleOK.Render("✔")
	case "warning":
		return styleWarning.Render("!")
	case "error":
		return styleError.Render("✘")
	default:
		return styleMuted.Render("?")
	}
}
