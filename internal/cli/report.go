package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/feeplan/internal/model"
)

// SubtotalLabel is the phase cell text of a subtotal row.
func SubtotalLabel(phase string) string {
	return phase + " Subtotal"
}

// EstimateHeaders are the report columns.
var EstimateHeaders = []string{"Phase", "Task", "Hours", "Fee"}

// EstimateRows formats the result rows as display strings. Subtotal rows show
// "<phase> Subtotal" with a blank task.
func EstimateRows(res model.EstimateResult, l Locale) [][]string {
	rows := make([][]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		phase := r.Phase
		if r.IsSubtotal() {
			phase = SubtotalLabel(r.Phase)
		}
		rows = append(rows, []string{phase, r.Task, l.FormatHours(r.Hours), l.FormatFee(r.Fee)})
	}
	return rows
}

// EstimateTable builds the report table with a trailing total row.
func EstimateTable(title string, res model.EstimateResult, l Locale) Table {
	rows := EstimateRows(res, l)
	emphasis := make(map[int]bool)
	for i, r := range res.Rows {
		if r.IsSubtotal() {
			emphasis[i] = true
		}
	}

	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", l.FormatHours(res.TotalHours), l.FormatFee(res.TotalFee)})
	emphasis[len(rows)-1] = true

	return Table{
		Title:    title,
		Headers:  EstimateHeaders,
		Rows:     rows,
		TextCols: 2,
		Emphasis: emphasis,
	}
}

// SummaryLine is the one-line total shown under a report.
func SummaryLine(res model.EstimateResult, l Locale) string {
	return fmt.Sprintf("Total: %s hrs | %s", l.FormatHours(res.TotalHours), l.FormatFee(res.TotalFee))
}

// RenderPhaseBars renders one bar per phase, sized by fee share.
func RenderPhaseBars(res model.EstimateResult, l Locale, width int) string {
	var maxFee float64
	labelW := 0
	for _, s := range res.Subtotals {
		if s.Fee > maxFee {
			maxFee = s.Fee
		}
		if len(s.Phase) > labelW {
			labelW = len(s.Phase)
		}
	}
	if maxFee <= 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range res.Subtotals {
		share := 0.0
		if res.TotalFee > 0 {
			share = s.Fee / res.TotalFee
		}
		fmt.Fprintf(&b, "  %-*s  %s  %s %s\n",
			labelW, s.Phase,
			RenderHorizontalBar(s.Fee, maxFee, width),
			l.FormatFee(s.Fee),
			mutedStyle.Render("("+FormatPercent(share)+")"))
	}
	return b.String()
}
