// Package components provides reusable TUI widgets for the feeplan estimator.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard renders a small card with a label, a value and an optional note.
// outerWidth is the total rendered width including border.
func MetricCard(label, value, note string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := []string{labelStyle.Render(label), valueStyle.Render(value)}
	if note != "" {
		lines = append(lines, noteStyle.Render(note))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// CardRow joins cards horizontally, padding shorter cards to the tallest so
// the row keeps the surface background all the way down.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active

	maxH := 0
	for _, c := range cards {
		if h := lipgloss.Height(c); h > maxH {
			maxH = h
		}
	}

	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.NewStyle().
			Background(t.Background).
			Width(lipgloss.Width(c)).
			Height(maxH).
			Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}
