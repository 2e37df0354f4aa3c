package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and a
// status message on the right. Error messages are shown in red.
func RenderStatusBar(width int, hints, status string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	statusStyle := style
	if isErr {
		statusStyle = statusStyle.Foreground(t.Red)
	} else {
		statusStyle = statusStyle.Foreground(t.Green)
	}

	left := " " + hints
	right := ""
	if status != "" {
		right = status + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Render(left+strings.Repeat(" ", padding)) + statusStyle.Render(right)
}
