// Package tui provides the interactive Bubble Tea estimator for feeplan.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/export"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/model"
	"github.com/theirongolddev/feeplan/internal/tui/components"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

// Options seeds the estimator with resolved defaults.
type Options struct {
	Params     estimate.Params
	Discipline catalog.Discipline
	Locale     cli.Locale
	ExportDir  string
}

// App is the root Bubble Tea model.
type App struct {
	params     estimate.Params
	discipline catalog.Discipline
	locale     cli.Locale
	exportDir  string

	result model.EstimateResult
	table  table.Model

	// Input form (huh). vals outlives the form so edits survive Update copies.
	form *huh.Form
	vals *inputValues

	// UI state
	width    int
	height   int
	showHelp bool
	status   string
	statusOK bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minTableHeight   = 5
	barWidth         = 24
)

// NewApp builds the estimator and computes the first result.
func NewApp(opts Options) App {
	if opts.Discipline == "" {
		opts.Discipline = catalog.Electrical
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	tbl := table.New(
		table.WithColumns(columnsFor(maxContentWidth)),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)

	a := App{
		params:     opts.Params,
		discipline: opts.Discipline,
		locale:     opts.Locale,
		exportDir:  opts.ExportDir,
		table:      tbl,
	}
	a.recompute()
	return a
}

// Result returns the estimate currently on screen.
func (a App) Result() model.EstimateResult {
	return a.result
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

func (a *App) recompute() {
	res, err := estimate.ForDiscipline(a.discipline, a.params)
	if err != nil {
		a.setStatus(err.Error(), false)
		return
	}
	a.result = res
	a.table.SetRows(tableRows(res, a.locale))
	a.table.GotoTop()
	logger.For("tui").Debug().
		Str("discipline", string(a.discipline)).
		Float64("scale", res.Scale).
		Float64("total_fee", res.TotalFee).
		Msg("recomputed estimate")
}

func (a *App) setStatus(msg string, ok bool) {
	a.status = msg
	a.statusOK = ok
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetColumns(columnsFor(a.contentWidth()))
		a.table.SetHeight(a.tableHeight())
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The input form intercepts all keys while open
		if a.form != nil {
			return a.updateForm(msg)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = true
			return a, nil
		case key.Matches(msg, keys.Edit):
			a.vals = newInputValues(a.params, a.discipline)
			a.form = newInputForm(a.vals)
			if a.width > 0 {
				a.form = a.form.WithWidth(a.contentWidth())
			}
			return a, a.form.Init()
		case key.Matches(msg, keys.Discipline):
			a.discipline = nextDiscipline(a.discipline)
			a.recompute()
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportCSV()
			return a, nil
		}

		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		a.applyInputs()
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.setStatus("edit cancelled", true)
		return a, nil
	}
	return a, cmd
}

// applyInputs validates the form values and recomputes on success. Rejected
// input leaves the previous estimate in place.
func (a *App) applyInputs() {
	p, d, err := a.vals.params()
	if err != nil {
		a.setStatus(err.Error(), false)
		return
	}
	a.params = p
	a.discipline = d
	a.setStatus("", true)
	a.recompute()
}

func (a *App) exportCSV() {
	paths, err := export.Write(export.Request{
		Dir:    a.exportDir,
		Format: export.FormatCSV,
		Result: a.result,
		Params: a.params,
		Locale: a.locale,
	})
	if err != nil {
		a.setStatus("export failed: "+err.Error(), false)
		return
	}
	a.setStatus("saved "+filepath.Base(paths[0]), true)
}

func nextDiscipline(d catalog.Discipline) catalog.Discipline {
	all := catalog.Disciplines()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func columnsFor(width int) []table.Column {
	// Phase, hours and fee are fixed; the task column takes the rest.
	phaseW, hoursW, feeW := 14, 10, 12
	taskW := width - phaseW - hoursW - feeW - 10
	if taskW < 16 {
		taskW = 16
	}
	return []table.Column{
		{Title: "Phase", Width: phaseW},
		{Title: "Task", Width: taskW},
		{Title: "Hours", Width: hoursW},
		{Title: "Fee", Width: feeW},
	}
}

func tableRows(res model.EstimateResult, l cli.Locale) []table.Row {
	rows := make([]table.Row, 0, len(res.Rows))
	for _, r := range cli.EstimateRows(res, l) {
		rows = append(rows, table.Row(r))
	}
	return rows
}

// visibleRange is the window of rows that keeps the cursor on screen.
func visibleRange(cursor, height, n int) (start, end int) {
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, min(start+height, n)
}

// renderTable draws the bubbles table's visible rows with lipgloss so that
// phase subtotal rows can carry their own style; the bubbles model still
// owns the cursor and key handling.
func (a App) renderTable() string {
	t := theme.Active
	cols := a.table.Columns()
	cursor := a.table.Cursor()
	rows := a.table.Rows()
	start, end := visibleRange(cursor, a.table.Height(), len(rows))

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}
	visible := make([][]string, 0, end-start)
	for _, r := range rows[start:end] {
		visible = append(visible, r)
	}

	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Padding(0, 1)
	header := cell.Foreground(t.Accent).Bold(true)
	subtotal := cell.Foreground(t.Subtotal).Bold(true)
	selected := cell.Background(t.Border)

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(visible...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == ltable.HeaderRow:
				s = header
			case start+row == cursor:
				s = selected
			case a.isSubtotal(start + row):
				s = subtotal
			default:
				s = cell
			}
			if col >= 2 {
				s = s.Align(lipgloss.Right)
			}
			return s.Width(cols[col].Width + 2)
		}).
		Render()
}

func (a App) isSubtotal(i int) bool {
	return i >= 0 && i < len(a.result.Rows) && a.result.Rows[i].IsSubtotal()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	if cw == 0 {
		cw = maxContentWidth
	}
	return cw
}

func (a App) tableHeight() int {
	// cards (5) + bars + total + status bar + margins
	h := a.height - 8 - len(a.result.Subtotals) - 5
	if h < minTableHeight {
		h = minTableHeight
	}
	return h
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  feeplan needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, k := range keys.all() {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", k.Help().Key)),
			descStyle.Render(k.Help().Desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()
	res := a.result
	l := a.locale

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	title := titleStyle.Render(" "+strings.ToUpper(a.discipline.Label())+" WORK PLAN") +
		mutedStyle.Render(fmt.Sprintf("  %s x %s", l.FormatRate(a.params.StandardRate), formatInput(a.params.Multiplier)))

	targetNote := "no target"
	if res.TargetFee > 0 {
		targetNote = "target " + l.FormatFee(res.TargetFee)
	}
	widths := components.LayoutRow(cw, 4)
	cards := components.CardRow([]string{
		components.MetricCard("Billing Rate", l.FormatRate(res.BillingRate), "", widths[0]),
		components.MetricCard("Scale", cli.FormatScale(res.Scale), targetNote, widths[1]),
		components.MetricCard("Total Hours", l.FormatHours(res.TotalHours), "", widths[2]),
		components.MetricCard("Total Fee", l.FormatFee(res.TotalFee), "", widths[3]),
	})

	var bars strings.Builder
	labelW := 0
	for _, s := range res.Subtotals {
		if len(s.Phase) > labelW {
			labelW = len(s.Phase)
		}
	}
	for _, s := range res.Subtotals {
		share := 0.0
		if res.TotalFee > 0 {
			share = s.Fee / res.TotalFee
		}
		bars.WriteString(" " + components.ShareBar(s.Phase, share, l.FormatFee(s.Fee), labelW, barWidth) + "\n")
	}

	total := totalStyle.Render(" " + cli.SummaryLine(res, l))

	status := components.RenderStatusBar(cw, keys.shortHelp(), a.status, !a.statusOK && a.status != "")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		cards,
		a.renderTable(),
		total,
		"",
		strings.TrimRight(bars.String(), "\n"),
		status,
	)
}
