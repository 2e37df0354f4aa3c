package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/model"
	"github.com/theirongolddev/feeplan/internal/store"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) model.EstimateResult {
	t.Helper()
	cat := catalog.New(
		model.TaskRecord{Phase: "SD", Task: "Site Visit", BaseHours: 3},
		model.TaskRecord{Phase: "SD", Task: "Code Review", BaseHours: 4.6},
		model.TaskRecord{Phase: "DD", Task: "Lighting Layout", BaseHours: 1000},
	)
	res, err := estimate.Run(cat, estimate.Params{StandardRate: 25, Multiplier: 4, TargetFee: 200000})
	if err != nil {
		t.Fatal(err)
	}
	res.Discipline = "electrical"
	return res
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

func TestWriteCSV(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, res, cli.DefaultLocale()); err != nil {
		t.Fatal(err)
	}

	recs := readCSV(t, buf.Bytes())
	// header + 3 tasks + 2 subtotals
	if len(recs) != 6 {
		t.Fatalf("got %d records, want 6", len(recs))
	}
	if recs[0][3] != "Fee ($)" {
		t.Errorf("header[3] = %q, want %q", recs[0][3], "Fee ($)")
	}
	if recs[3][0] != "SD Subtotal" || recs[3][1] != "" {
		t.Errorf("row 3 = %v, want SD subtotal", recs[3])
	}
	if recs[4][2] != "1,984.9" {
		t.Errorf("DD hours = %q, want %q", recs[4][2], "1,984.9")
	}
	if recs[5][3] != "$198,491" {
		t.Errorf("DD subtotal fee = %q, want %q", recs[5][3], "$198,491")
	}
}

func TestWriteTasksCSV(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteTasksCSV(&buf, res); err != nil {
		t.Fatal(err)
	}

	recs := readCSV(t, buf.Bytes())
	if len(recs) != 1+len(res.Tasks) {
		t.Fatalf("got %d records, want %d", len(recs), 1+len(res.Tasks))
	}
	for i, ct := range res.Tasks {
		rec := recs[i+1]
		if rec[0] != ct.Phase || rec[1] != ct.Task {
			t.Errorf("row %d = %v, want %s/%s", i, rec, ct.Phase, ct.Task)
		}
		h, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			t.Fatalf("row %d hours %q: %v", i, rec[2], err)
		}
		if h != ct.ExactHours {
			t.Errorf("row %d hours = %v, want exact %v", i, h, ct.ExactHours)
		}
		f, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			t.Fatalf("row %d fee %q: %v", i, rec[3], err)
		}
		if f != ct.ExactFee {
			t.Errorf("row %d fee = %v, want exact %v", i, f, ct.ExactFee)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, res); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != planSheet || sheets[1] != tasksSheet {
		t.Fatalf("sheets = %v, want [%s %s]", sheets, planSheet, tasksSheet)
	}

	plan, err := f.GetRows(planSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	// header + 5 report rows + total
	if len(plan) != 7 {
		t.Fatalf("plan rows = %d, want 7", len(plan))
	}
	if plan[3][0] != "SD Subtotal" {
		t.Errorf("A4 = %q, want SD Subtotal", plan[3][0])
	}
	last := plan[len(plan)-1]
	if last[0] != "TOTAL" {
		t.Errorf("last row label = %q, want TOTAL", last[0])
	}
	total, err := strconv.ParseFloat(last[3], 64)
	if err != nil {
		t.Fatal(err)
	}
	if total != res.TotalFee {
		t.Errorf("TOTAL fee = %v, want %v", total, res.TotalFee)
	}

	tasks, err := f.GetRows(tasksSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1+len(res.Tasks) {
		t.Errorf("tasks rows = %d, want %d", len(tasks), 1+len(res.Tasks))
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "tasks-csv", "XLSX", "sqlite", "all"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(pdf) err = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := sampleResult(t)
	p := estimate.Params{StandardRate: 25, Multiplier: 4, TargetFee: 200000}

	paths, err := Write(Request{Dir: dir, Format: FormatAll, Result: res, Params: p, Locale: cli.DefaultLocale()})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"electrical-workplan.csv", "electrical-tasks.csv", "electrical-workplan.xlsx", DBName}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %d files", paths, len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], name)
		}
		if _, err := os.Stat(paths[i]); err != nil {
			t.Errorf("stat %s: %v", paths[i], err)
		}
	}

	s, err := store.Open(filepath.Join(dir, DBName))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()
	list, err := s.ListEstimates()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].TotalFee != res.TotalFee {
		t.Errorf("stored estimates = %+v, want one with fee %v", list, res.TotalFee)
	}
}

func TestWriteSingleFormat(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(Request{Dir: dir, Format: FormatTasksCSV, Result: sampleResult(t), Locale: cli.DefaultLocale()})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "electrical-tasks.csv" {
		t.Fatalf("paths = %v, want only the tasks csv", paths)
	}
}
