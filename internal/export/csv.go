// Package export writes estimate reports as flat files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/model"
)

// Header is the column row shared by every export.
var Header = []string{"Phase", "Task", "Hours", "Fee ($)"}

// WriteCSV writes the full report, subtotal rows included, using the same
// formatted values as the terminal table.
func WriteCSV(w io.Writer, res model.EstimateResult, l cli.Locale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range cli.EstimateRows(res, l) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTasksCSV writes task rows only, as plain unrounded numbers.
func WriteTasksCSV(w io.Writer, res model.EstimateResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ct := range res.Tasks {
		rec := []string{
			ct.Phase,
			ct.Task,
			strconv.FormatFloat(ct.ExactHours, 'f', -1, 64),
			strconv.FormatFloat(ct.ExactFee, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
