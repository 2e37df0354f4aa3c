package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/config"
	"github.com/theirongolddev/feeplan/internal/export"
)

// planDefaults resets the plan flags.
func planDefaults(t *testing.T) {
	t.Helper()
	setFlag(t, &flagInit, "")
	setFlag(t, &flagProject, "")
	setFlag(t, &flagDetail, false)
	setFlag(t, &flagPlanFormat, "")
	setFlag(t, &flagPhaseSplit, false)
	setFlag(t, &flagOut, "")
	setFlag(t, &flagQuiet, true)
}

func TestRunPlanExportWritesEveryDiscipline(t *testing.T) {
	withConfig(t, config.DefaultConfig())
	var buf bytes.Buffer
	planDefaults(t)
	dir := t.TempDir()
	setFlag(t, &flagPlanFormat, "csv")
	setFlag(t, &flagOut, dir)

	cmd := newFlagCmd(t)
	cmd.SetOut(&buf)
	if err := runPlan(cmd, nil); err != nil {
		t.Fatal(err)
	}

	for _, d := range catalog.Disciplines() {
		csvName, tasksName, _ := export.FileNames(string(d))
		if _, err := os.Stat(filepath.Join(dir, csvName)); err != nil {
			t.Errorf("%s: %v", csvName, err)
		}
		if _, err := os.Stat(filepath.Join(dir, tasksName)); err == nil {
			t.Errorf("%s written for csv format", tasksName)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(catalog.Disciplines()) {
		t.Errorf("wrote %d files, want %d", len(entries), len(catalog.Disciplines()))
	}
	if !strings.Contains(buf.String(), "Discipline split") {
		t.Errorf("plan summary missing from output:\n%s", buf.String())
	}
}

func TestRunPlanPhaseSplit(t *testing.T) {
	withConfig(t, config.DefaultConfig())
	var buf bytes.Buffer
	planDefaults(t)
	setFlag(t, &flagPhaseSplit, true)

	cmd := newFlagCmd(t)
	cmd.SetOut(&buf)
	if err := runPlan(cmd, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Phase split", "Schematic Design", "Construction Administration"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "normalized") {
		t.Errorf("default splits should not warn:\n%s", out)
	}
}

func TestPrintPlanWarnsOnUnbalancedSplit(t *testing.T) {
	c := config.DefaultConfig()
	c.Split.Electrical, c.Split.Plumbing, c.Split.Mechanical = 30, 30, 30
	c.PhaseSplit.CA = 0
	withConfig(t, c)
	var buf bytes.Buffer
	planDefaults(t)
	setFlag(t, &flagPhaseSplit, true)

	cmd := newFlagCmd(t)
	cmd.SetOut(&buf)
	if err := runPlan(cmd, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Discipline split sums to 90%") {
		t.Errorf("missing discipline split warning:\n%s", out)
	}
	if !strings.Contains(out, "Phase split sums to 81.5%") {
		t.Errorf("missing phase split warning:\n%s", out)
	}
}
