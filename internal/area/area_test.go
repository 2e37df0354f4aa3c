package area

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/feeplan/internal/estimate"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestDefaultContextFees(t *testing.T) {
	c := DefaultContext()

	if got := c.TotalArea(); got != 296500 {
		t.Fatalf("TotalArea = %v, want 296500", got)
	}
	if got := c.ConstructionCost(); got != 88_950_000 {
		t.Fatalf("ConstructionCost = %v, want 88950000", got)
	}
	if got := c.ArchFee(); !near(got, 3_113_250) {
		t.Fatalf("ArchFee = %v, want 3113250", got)
	}
	if got := c.TypicalMEPFee(); !near(got, 466_987.5) {
		t.Fatalf("TypicalMEPFee = %v, want 466987.5", got)
	}

	// 18000*1.25 + 14000*0.75 + 5000*0.95 + 4500*0.95 + 80000*0.45 + 175000*1.01
	want := 22500 + 10500 + 4750 + 4275 + 36000 + 176750.0
	if got := c.MEPFee(); !near(got, want) {
		t.Fatalf("MEPFee = %v, want %v", got, want)
	}
	if got := c.MEPShareOfArchFee(); !near(got, want/3_113_250) {
		t.Fatalf("MEPShareOfArchFee = %v, want %v", got, want/3_113_250)
	}
}

func TestSpaceRateOverride(t *testing.T) {
	s := Space{Type: "Site Lighting", AreaSF: 1000}
	if s.Cost() != 0 {
		t.Fatalf("site lighting without override cost = %v, want 0", s.Cost())
	}
	s.Override = true
	s.OverrideRate = 0.2
	if !near(s.Cost(), 200) {
		t.Fatalf("override cost = %v, want 200", s.Cost())
	}
}

func TestMEPShareZeroArchFee(t *testing.T) {
	c := Context{Spaces: []Space{{Type: "Classroom", AreaSF: 100}}}
	if got := c.MEPShareOfArchFee(); got != 0 {
		t.Fatalf("MEPShareOfArchFee = %v, want 0", got)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultContext().Validate(); err != nil {
		t.Fatalf("default context invalid: %v", err)
	}

	bad := []Context{
		{Spaces: []Space{{Type: "Classroom", AreaSF: -5}}},
		{Spaces: []Space{{Type: "Classroom", Override: true, OverrideRate: -1}}},
		{ConstructionCostPSF: -1},
		{Spaces: []Space{{Name: "Lab", Type: "Laboratory", AreaSF: 10}}},
	}
	for i, c := range bad {
		if err := c.Validate(); !errors.Is(err, estimate.ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.toml")
	if err := SaveProject(path, DefaultContext()); err != nil {
		t.Fatal(err)
	}

	got, err := LoadProject(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Spaces) != 6 {
		t.Fatalf("len(Spaces) = %d, want 6", len(got.Spaces))
	}
	if !near(got.MEPFee(), DefaultContext().MEPFee()) {
		t.Fatalf("MEPFee = %v, want %v", got.MEPFee(), DefaultContext().MEPFee())
	}
}

func TestLoadProjectDefaultsCostContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.toml")
	data := `
[[spaces]]
name = "Kitchen"
type = "Restaurant (Kitchen / Dining Areas)"
area_sf = 2000
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadProject(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ConstructionCostPSF != 300 || got.ArchFeePct != 3.5 {
		t.Fatalf("cost context = (%v, %v), want defaults (300, 3.5)", got.ConstructionCostPSF, got.ArchFeePct)
	}
	if !near(got.MEPFee(), 5500) {
		t.Fatalf("MEPFee = %v, want 5500", got.MEPFee())
	}
}

func TestLoadProjectRejectsNegativeArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.toml")
	data := "[[spaces]]\nname = \"x\"\ntype = \"Classroom\"\narea_sf = -10\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(path); !errors.Is(err, estimate.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
