// Package pipeline turns a project's area context into a full MEP work plan:
// area-based fee, discipline split, then one estimate per discipline.
package pipeline

import (
	"fmt"

	"github.com/theirongolddev/feeplan/internal/area"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/model"
)

// Split holds each discipline's share of the MEP fee, in percent.
type Split struct {
	Electrical float64 `toml:"electrical"`
	Plumbing   float64 `toml:"plumbing"`
	Mechanical float64 `toml:"mechanical"`
}

// DefaultSplit is the usual MEP fee split.
func DefaultSplit() Split {
	return Split{Electrical: 28, Plumbing: 24, Mechanical: 48}
}

// Total is the raw sum of the shares. Anything other than 100 is
// normalized by Fractions.
func (s Split) Total() float64 {
	return s.Electrical + s.Plumbing + s.Mechanical
}

// Fractions normalizes the split to fractions that sum to 1. Negative shares
// count as zero; an all-zero split is divided evenly.
func (s Split) Fractions() map[catalog.Discipline]float64 {
	return normalize(map[catalog.Discipline]float64{
		catalog.Electrical: s.Electrical,
		catalog.Plumbing:   s.Plumbing,
		catalog.Mechanical: s.Mechanical,
	})
}

// PhaseSplit holds each phase's share of a discipline fee, in percent.
type PhaseSplit struct {
	SD      float64 `toml:"sd"`
	DD      float64 `toml:"dd"`
	CD      float64 `toml:"cd"`
	Bidding float64 `toml:"bidding"`
	CA      float64 `toml:"ca"`
}

// DefaultPhaseSplit is the usual fee distribution over project phases.
func DefaultPhaseSplit() PhaseSplit {
	return PhaseSplit{SD: 12, DD: 40, CD: 28, Bidding: 1.5, CA: 18.5}
}

// Total is the raw sum of the shares.
func (s PhaseSplit) Total() float64 {
	return s.SD + s.DD + s.CD + s.Bidding + s.CA
}

// Fractions normalizes the split by phase code, like Split.Fractions.
func (s PhaseSplit) Fractions() map[string]float64 {
	return normalize(map[string]float64{
		"SD":      s.SD,
		"DD":      s.DD,
		"CD":      s.CD,
		"Bidding": s.Bidding,
		"CA":      s.CA,
	})
}

func normalize[K comparable](raw map[K]float64) map[K]float64 {
	var total float64
	for k, v := range raw {
		raw[k] = max(v, 0)
		total += raw[k]
	}

	out := make(map[K]float64, len(raw))
	for k, v := range raw {
		if total <= 0 {
			out[k] = 1 / float64(len(raw))
			continue
		}
		out[k] = v / total
	}
	return out
}

// Summary is the project fee context shown above a work plan.
type Summary struct {
	TotalArea         float64
	ConstructionCost  float64
	ArchFee           float64
	TypicalMEPFee     float64
	MEPFee            float64
	MEPShareOfArchFee float64
}

// DisciplinePlan is one discipline's share and its estimate.
type DisciplinePlan struct {
	Discipline catalog.Discipline
	Share      float64
	TargetFee  float64
	Result     model.EstimateResult
}

// WorkPlan is the full MEP plan.
type WorkPlan struct {
	Summary     Summary
	ByPhase     bool // discipline fees were allocated with a PhaseSplit
	Disciplines []DisciplinePlan
	TotalHours  float64
	TotalFee    float64
}

// Summarize computes the fee context of a project.
func Summarize(ctx area.Context) Summary {
	return Summary{
		TotalArea:         ctx.TotalArea(),
		ConstructionCost:  ctx.ConstructionCost(),
		ArchFee:           ctx.ArchFee(),
		TypicalMEPFee:     ctx.TypicalMEPFee(),
		MEPFee:            ctx.MEPFee(),
		MEPShareOfArchFee: ctx.MEPShareOfArchFee(),
	}
}

// BuildWorkPlan splits the area-based MEP fee across disciplines and scales
// each discipline's library to its share. p.TargetFee is ignored; each
// discipline's target comes from the split.
func BuildWorkPlan(ctx area.Context, split Split, p estimate.Params) (WorkPlan, error) {
	return build(ctx, split, p, estimate.ForDiscipline)
}

// BuildPhasedWorkPlan is BuildWorkPlan with each discipline's fee allocated
// across phases by phases instead of scaled proportionally.
func BuildPhasedWorkPlan(ctx area.Context, split Split, phases PhaseSplit, p estimate.Params) (WorkPlan, error) {
	frac := phases.Fractions()
	plan, err := build(ctx, split, p, func(d catalog.Discipline, dp estimate.Params) (model.EstimateResult, error) {
		return estimate.ForDisciplineByPhase(d, dp, frac)
	})
	plan.ByPhase = err == nil
	return plan, err
}

type estimator func(catalog.Discipline, estimate.Params) (model.EstimateResult, error)

func build(ctx area.Context, split Split, p estimate.Params, run estimator) (WorkPlan, error) {
	if err := ctx.Validate(); err != nil {
		return WorkPlan{}, err
	}
	p.TargetFee = 0
	if err := p.Validate(); err != nil {
		return WorkPlan{}, err
	}

	plan := WorkPlan{Summary: Summarize(ctx)}
	fractions := split.Fractions()

	var totalHours, totalFee float64
	for _, d := range catalog.Disciplines() {
		dp := DisciplinePlan{
			Discipline: d,
			Share:      fractions[d],
			TargetFee:  plan.Summary.MEPFee * fractions[d],
		}

		dparams := p
		dparams.TargetFee = dp.TargetFee
		res, err := run(d, dparams)
		if err != nil {
			return WorkPlan{}, fmt.Errorf("estimating %s: %w", d, err)
		}
		dp.Result = res

		totalHours += res.TotalHours
		totalFee += res.TotalFee
		plan.Disciplines = append(plan.Disciplines, dp)
	}

	plan.TotalHours = estimate.Round(totalHours, 1)
	plan.TotalFee = estimate.Round(totalFee, 0)
	return plan, nil
}
