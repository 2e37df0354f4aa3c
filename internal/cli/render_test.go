package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/feeplan/internal/model"
)

func init() {
	// Plain output so assertions can match cell text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleResult() model.EstimateResult {
	return model.EstimateResult{
		Rows: []model.Row{
			{Kind: model.RowTask, Phase: "SD", Task: "Design", Hours: 10, Fee: 1500},
			{Kind: model.RowSubtotal, Phase: "SD", Hours: 10, Fee: 1500},
			{Kind: model.RowTask, Phase: "DD", Task: "Drawings", Hours: 20, Fee: 3000},
			{Kind: model.RowSubtotal, Phase: "DD", Hours: 20, Fee: 3000},
		},
		Subtotals: []model.PhaseSubtotal{
			{Phase: "SD", Hours: 10, Fee: 1500},
			{Phase: "DD", Hours: 20, Fee: 3000},
		},
		TotalHours: 30,
		TotalFee:   4500,
	}
}

func TestEstimateRows(t *testing.T) {
	rows := EstimateRows(sampleResult(), DefaultLocale())
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	want := []string{"SD Subtotal", "", "10.0", "$1,500"}
	for i, cell := range rows[1] {
		if cell != want[i] {
			t.Errorf("subtotal cell %d = %q, want %q", i, cell, want[i])
		}
	}
	if rows[2][1] != "Drawings" || rows[2][3] != "$3,000" {
		t.Errorf("task row = %v", rows[2])
	}
}

func TestRenderEstimateTable(t *testing.T) {
	out := RenderTable(EstimateTable("Electrical", sampleResult(), DefaultLocale()))

	for _, s := range []string{"Electrical", "Phase", "Fee", "SD Subtotal", "DD Subtotal", "TOTAL", "30.0", "$4,500"} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] // skip title
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, line)
		}
	}
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"Name", "Note", "Amount"},
		Rows:     [][]string{{"a", "x", "1"}, {"bbb", "yyy", "100"}},
		TextCols: 2,
	})
	if !strings.Contains(out, "│ a    │ x    │      1 │") {
		t.Errorf("unexpected alignment:\n%s", out)
	}
}

func TestSummaryLine(t *testing.T) {
	got := SummaryLine(sampleResult(), DefaultLocale())
	if got != "Total: 30.0 hrs | $4,500" {
		t.Fatalf("SummaryLine = %q", got)
	}
}

func TestRenderPhaseBars(t *testing.T) {
	out := RenderPhaseBars(sampleResult(), DefaultLocale(), 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d bar lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], strings.Repeat("█", 10)) {
		t.Errorf("largest phase should fill the bar: %q", lines[1])
	}
	if !strings.Contains(lines[0], strings.Repeat("█", 5)+strings.Repeat("░", 5)) {
		t.Errorf("half-size phase bar wrong: %q", lines[0])
	}
	if RenderPhaseBars(model.EstimateResult{}, DefaultLocale(), 10) != "" {
		t.Error("empty result should render no bars")
	}
}
