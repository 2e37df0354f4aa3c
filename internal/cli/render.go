package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	subtotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Widths   []int        // optional column widths, auto-calculated if nil
	TextCols int          // leading left-aligned columns; 0 means 1
	Emphasis map[int]bool // row indices rendered in the subtotal style
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderMuted renders a dim annotation line.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderWarning renders a warning line.
func RenderWarning(s string) string {
	return warnStyle.Render(s)
}

func separatorLine(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

// RenderTable renders a bordered table with headers and rows.
// A row of exactly {"---"} renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	textCols := t.TextCols
	if textCols <= 0 {
		textCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if w := lipgloss.Width(h); w > widths[i] {
				widths[i] = w
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if w := lipgloss.Width(cell); i < numCols && w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	separatorLine(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i < textCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")

		separatorLine(&b, widths, "├", "┼", "┤")
	}

	for ri, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			separatorLine(&b, widths, "├", "┼", "┤")
			continue
		}

		style := valueStyle
		if t.Emphasis[ri] {
			style = subtotalStyle
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(style.Render(pad(cell, widths[i], i < textCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	separatorLine(&b, widths, "╰", "┴", "╯")

	return b.String()
}

// pad left- or right-aligns s in a cell of width w plus one space each side.
// Widths are measured in cells so currency symbols like € line up.
func pad(s string, w int, left bool) string {
	gap := w - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + s + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + s + " "
}

// RenderHorizontalBar renders a horizontal bar chart entry.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	if barLen > maxWidth {
		barLen = maxWidth
	}
	return fmt.Sprintf("%s%s",
		valueStyle.Render(strings.Repeat("█", barLen)),
		dimStyle.Render(strings.Repeat("░", maxWidth-barLen)))
}
