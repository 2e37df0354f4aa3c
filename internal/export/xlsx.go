package export

import (
	"fmt"
	"io"

	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	planSheet  = "Work Plan"
	tasksSheet = "Tasks"

	hoursNumFmt = "#,##0.0"
	feeNumFmt   = "$#,##0"
)

type workbookStyles struct {
	header   int
	hours    int
	fee      int
	subHours int
	subFee   int
	subText  int
}

// WriteXLSX writes a workbook with the full report on one sheet and the
// tasks-only table on a second. Hours and fees are numeric cells carrying
// display number formats.
func WriteXLSX(w io.Writer, res model.EstimateResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), planSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(tasksSheet); err != nil {
		return fmt.Errorf("adding tasks sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("creating styles: %w", err)
	}

	if err := writePlanSheet(f, res, st); err != nil {
		return fmt.Errorf("writing %s: %w", planSheet, err)
	}
	if err := writeTasksSheet(f, res, st); err != nil {
		return fmt.Errorf("writing %s: %w", tasksSheet, err)
	}

	for _, sheet := range []string{planSheet, tasksSheet} {
		if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "C", "D", 14); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (workbookStyles, error) {
	var st workbookStyles
	var err error

	hoursFmt := hoursNumFmt
	feeFmt := feeNumFmt

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"24837B"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return st, err
	}
	if st.hours, err = f.NewStyle(&excelize.Style{CustomNumFmt: &hoursFmt}); err != nil {
		return st, err
	}
	if st.fee, err = f.NewStyle(&excelize.Style{CustomNumFmt: &feeFmt}); err != nil {
		return st, err
	}

	subFill := excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1}
	bold := &excelize.Font{Bold: true}
	if st.subText, err = f.NewStyle(&excelize.Style{Font: bold, Fill: subFill}); err != nil {
		return st, err
	}
	if st.subHours, err = f.NewStyle(&excelize.Style{Font: bold, Fill: subFill, CustomNumFmt: &hoursFmt}); err != nil {
		return st, err
	}
	if st.subFee, err = f.NewStyle(&excelize.Style{Font: bold, Fill: subFill, CustomNumFmt: &feeFmt}); err != nil {
		return st, err
	}
	return st, nil
}

func writeHeader(f *excelize.File, sheet string, st workbookStyles) error {
	if err := f.SetSheetRow(sheet, "A1", &Header); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", "D1", st.header)
}

func writePlanSheet(f *excelize.File, res model.EstimateResult, st workbookStyles) error {
	if err := writeHeader(f, planSheet, st); err != nil {
		return err
	}

	row := 2
	for _, r := range res.Rows {
		phase := r.Phase
		if r.IsSubtotal() {
			phase = cli.SubtotalLabel(r.Phase)
		}
		if err := setRow(f, planSheet, row, phase, r.Task, r.Hours, r.Fee); err != nil {
			return err
		}
		if r.IsSubtotal() {
			if err := styleSubtotal(f, planSheet, row, st); err != nil {
				return err
			}
		} else if err := styleNumbers(f, planSheet, row, st); err != nil {
			return err
		}
		row++
	}

	if err := setRow(f, planSheet, row, "TOTAL", "", res.TotalHours, res.TotalFee); err != nil {
		return err
	}
	return styleSubtotal(f, planSheet, row, st)
}

func writeTasksSheet(f *excelize.File, res model.EstimateResult, st workbookStyles) error {
	if err := writeHeader(f, tasksSheet, st); err != nil {
		return err
	}
	for i, ct := range res.Tasks {
		row := i + 2
		if err := setRow(f, tasksSheet, row, ct.Phase, ct.Task, ct.ExactHours, ct.ExactFee); err != nil {
			return err
		}
		if err := styleNumbers(f, tasksSheet, row, st); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, phase, task string, hours, fee float64) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := []any{phase, task, hours, fee}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleNumbers(f *excelize.File, sheet string, row int, st workbookStyles) error {
	if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), st.hours); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), st.fee)
}

func styleSubtotal(f *excelize.File, sheet string, row int, st workbookStyles) error {
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), st.subText); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), st.subHours); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), st.subFee)
}
