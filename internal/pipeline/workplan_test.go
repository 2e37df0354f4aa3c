package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/feeplan/internal/area"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/estimate"
)

func TestSplitFractions(t *testing.T) {
	f := DefaultSplit().Fractions()
	if math.Abs(f[catalog.Electrical]-0.28) > 1e-12 {
		t.Errorf("electrical = %v, want 0.28", f[catalog.Electrical])
	}
	if math.Abs(f[catalog.Mechanical]-0.48) > 1e-12 {
		t.Errorf("mechanical = %v, want 0.48", f[catalog.Mechanical])
	}

	f = Split{Electrical: 1, Plumbing: 1, Mechanical: 2}.Fractions()
	if f[catalog.Mechanical] != 0.5 {
		t.Errorf("unnormalized split mechanical = %v, want 0.5", f[catalog.Mechanical])
	}

	f = Split{Electrical: -5, Plumbing: 0, Mechanical: 0}.Fractions()
	for d, v := range f {
		if math.Abs(v-1.0/3) > 1e-12 {
			t.Errorf("zero split %s = %v, want 1/3", d, v)
		}
	}
}

func TestBuildWorkPlan(t *testing.T) {
	ctx := area.DefaultContext()
	p := estimate.Params{StandardRate: 56, Multiplier: 3.6, TargetFee: 1}

	plan, err := BuildWorkPlan(ctx, DefaultSplit(), p)
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Disciplines) != 3 {
		t.Fatalf("len(Disciplines) = %d, want 3", len(plan.Disciplines))
	}
	if plan.Disciplines[0].Discipline != catalog.Electrical {
		t.Fatalf("first discipline = %s, want electrical", plan.Disciplines[0].Discipline)
	}

	mep := ctx.MEPFee()
	var sumTarget, sumFee, sumHours float64
	for _, dp := range plan.Disciplines {
		sumTarget += dp.TargetFee
		sumFee += dp.Result.TotalFee
		sumHours += dp.Result.TotalHours
		if dp.Result.TargetFee != dp.TargetFee {
			t.Errorf("%s estimate target = %v, want %v", dp.Discipline, dp.Result.TargetFee, dp.TargetFee)
		}
		bound := 0.5 * float64(len(dp.Result.Tasks))
		if math.Abs(dp.Result.TotalFee-dp.TargetFee) > bound+1e-6 {
			t.Errorf("%s TotalFee = %v, target %v (bound %v)", dp.Discipline, dp.Result.TotalFee, dp.TargetFee, bound)
		}
	}
	if math.Abs(sumTarget-mep) > 1e-6 {
		t.Fatalf("sum of targets = %v, want MEP fee %v", sumTarget, mep)
	}
	if plan.TotalFee != estimate.Round(sumFee, 0) {
		t.Errorf("TotalFee = %v, want %v", plan.TotalFee, sumFee)
	}
	if plan.TotalHours != estimate.Round(sumHours, 1) {
		t.Errorf("TotalHours = %v, want %v", plan.TotalHours, sumHours)
	}
	if plan.Summary.MEPFee != mep {
		t.Errorf("Summary.MEPFee = %v, want %v", plan.Summary.MEPFee, mep)
	}
}

func TestBuildWorkPlanRejectsBadInput(t *testing.T) {
	_, err := BuildWorkPlan(area.DefaultContext(), DefaultSplit(), estimate.Params{StandardRate: -1, Multiplier: 1})
	if !errors.Is(err, estimate.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	bad := area.Context{Spaces: []area.Space{{Type: "Classroom", AreaSF: -1}}}
	_, err = BuildWorkPlan(bad, DefaultSplit(), estimate.Params{StandardRate: 56, Multiplier: 3.6})
	if !errors.Is(err, estimate.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSplitTotal(t *testing.T) {
	if got := DefaultSplit().Total(); got != 100 {
		t.Errorf("DefaultSplit().Total() = %v, want 100", got)
	}
	if got := (Split{Electrical: 30, Plumbing: 30, Mechanical: 30}).Total(); got != 90 {
		t.Errorf("Total = %v, want 90", got)
	}
	if got := DefaultPhaseSplit().Total(); got != 100 {
		t.Errorf("DefaultPhaseSplit().Total() = %v, want 100", got)
	}
}

func TestPhaseSplitFractions(t *testing.T) {
	f := DefaultPhaseSplit().Fractions()
	want := map[string]float64{"SD": 0.12, "DD": 0.40, "CD": 0.28, "Bidding": 0.015, "CA": 0.185}
	for ph, w := range want {
		if math.Abs(f[ph]-w) > 1e-12 {
			t.Errorf("%s = %v, want %v", ph, f[ph], w)
		}
	}

	f = PhaseSplit{SD: -10}.Fractions()
	for ph, v := range f {
		if v != 0.2 {
			t.Errorf("zero split %s = %v, want 0.2", ph, v)
		}
	}
}

func TestBuildPhasedWorkPlan(t *testing.T) {
	ctx := area.DefaultContext()
	p := estimate.Params{StandardRate: 56, Multiplier: 3.6}
	phases := DefaultPhaseSplit()

	plan, err := BuildPhasedWorkPlan(ctx, DefaultSplit(), phases, p)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.ByPhase {
		t.Error("ByPhase = false, want true")
	}

	frac := phases.Fractions()
	for _, dp := range plan.Disciplines {
		bound := 0.5 * float64(len(dp.Result.Tasks))
		for _, sub := range dp.Result.Subtotals {
			want := dp.TargetFee * frac[sub.Phase]
			if math.Abs(sub.Fee-want) > bound+1e-6 {
				t.Errorf("%s %s subtotal = %v, want %v (bound %v)", dp.Discipline, sub.Phase, sub.Fee, want, bound)
			}
		}
	}

	if _, err := BuildPhasedWorkPlan(ctx, DefaultSplit(), phases, estimate.Params{StandardRate: math.Inf(1), Multiplier: 1}); !errors.Is(err, estimate.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
