package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

// ShareBar renders a labeled bar for a phase's share of the total fee,
// followed by the formatted value.
func ShareBar(label string, share float64, value string, labelW, barWidth int) string {
	t := theme.Active

	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(share) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", share*100)) +
		spaceStyle.Render("  ") +
		valueStyle.Render(value)
}
