// Package estimate scales catalog hours to a billing rate and optional target
// fee, and aggregates them into phase subtotals and totals.
package estimate

import (
	"math"

	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/model"
)

const (
	hourPlaces = 1
	feePlaces  = 0
)

// Round rounds v to the given number of decimal places, halves away from zero.
// Every rounded value in an estimate goes through here.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Scale returns the multiplier that brings the catalog's fee at billingRate to
// targetFee. A zero target means no scaling; a target that cannot be reached
// because the base fee is zero scales everything to nothing.
func Scale(baseTotalHours, billingRate, targetFee float64) float64 {
	if targetFee <= 0 {
		return 1
	}
	baseTotalFee := baseTotalHours * billingRate
	if baseTotalFee <= 0 {
		return 0
	}
	return targetFee / baseTotalFee
}

// Run validates p and computes the estimate for cat.
func Run(cat catalog.Catalog, p Params) (model.EstimateResult, error) {
	if err := p.Validate(); err != nil {
		return model.EstimateResult{}, err
	}
	return Compute(cat, p.BillingRate(), p.TargetFee), nil
}

// Compute is the pure estimate: no validation, no side effects, identical
// output for identical input.
func Compute(cat catalog.Catalog, billingRate, targetFee float64) model.EstimateResult {
	records := cat.Records()

	res := model.EstimateResult{
		BillingRate:    billingRate,
		TargetFee:      targetFee,
		BaseTotalHours: cat.BaseTotalHours(),
	}
	res.BaseTotalFee = res.BaseTotalHours * billingRate
	res.Scale = Scale(res.BaseTotalHours, billingRate, targetFee)

	res.Tasks = make([]model.ComputedTask, 0, len(records))
	for _, r := range records {
		res.Tasks = append(res.Tasks, task(r.Phase, r.Task, r.BaseHours*res.Scale, billingRate))
	}
	group(&res)
	return res
}

// Allocate is the phase-split rule: targetFee is divided across phases by
// phaseFrac, and each phase's hours are spread over its tasks by base-hour
// weight. Phases are visited in catalog.Phases order; a phase with no tasks
// is skipped and its share of the fee is not reassigned.
func Allocate(cat catalog.Catalog, billingRate, targetFee float64, phaseFrac map[string]float64) model.EstimateResult {
	records := cat.Records()

	res := model.EstimateResult{
		BillingRate:    billingRate,
		TargetFee:      targetFee,
		BaseTotalHours: cat.BaseTotalHours(),
	}
	res.BaseTotalFee = res.BaseTotalHours * billingRate
	res.Scale = Scale(res.BaseTotalHours, billingRate, targetFee)

	res.Tasks = make([]model.ComputedTask, 0, len(records))
	for _, ph := range catalog.Phases {
		var tasks []model.TaskRecord
		var wsum float64
		for _, r := range records {
			if r.Phase == ph.Code {
				tasks = append(tasks, r)
				wsum += r.BaseHours
			}
		}
		if len(tasks) == 0 {
			continue
		}

		var phaseHours float64
		if billingRate > 0 {
			phaseHours = targetFee * phaseFrac[ph.Code] / billingRate
		}
		for _, r := range tasks {
			var hours float64
			if wsum > 0 {
				hours = r.BaseHours / wsum * phaseHours
			}
			res.Tasks = append(res.Tasks, task(r.Phase, r.Task, hours, billingRate))
		}
	}
	group(&res)
	return res
}

func task(phase, name string, exactHours, billingRate float64) model.ComputedTask {
	exactFee := exactHours * billingRate
	return model.ComputedTask{
		Phase:      phase,
		Task:       name,
		Hours:      Round(exactHours, hourPlaces),
		Fee:        Round(exactFee, feePlaces),
		ExactHours: exactHours,
		ExactFee:   exactFee,
	}
}

// group fills Rows, Subtotals and totals from res.Tasks. Phases keep their
// first-occurrence order; subtotals sum the rounded task values.
func group(res *model.EstimateResult) {
	var phases []string
	byPhase := make(map[string][]model.ComputedTask)
	for _, ct := range res.Tasks {
		if _, ok := byPhase[ct.Phase]; !ok {
			phases = append(phases, ct.Phase)
		}
		byPhase[ct.Phase] = append(byPhase[ct.Phase], ct)
	}

	res.Subtotals = make([]model.PhaseSubtotal, 0, len(phases))
	res.Rows = make([]model.Row, 0, len(res.Tasks)+len(phases))

	var totalHours, totalFee float64
	for _, ph := range phases {
		var hours, fee float64
		for _, ct := range byPhase[ph] {
			hours += ct.Hours
			fee += ct.Fee
			res.Rows = append(res.Rows, model.Row{
				Kind:  model.RowTask,
				Phase: ct.Phase,
				Task:  ct.Task,
				Hours: ct.Hours,
				Fee:   ct.Fee,
			})
		}
		sub := model.PhaseSubtotal{
			Phase: ph,
			Hours: Round(hours, hourPlaces),
			Fee:   Round(fee, feePlaces),
		}
		res.Subtotals = append(res.Subtotals, sub)
		res.Rows = append(res.Rows, model.Row{
			Kind:  model.RowSubtotal,
			Phase: ph,
			Hours: sub.Hours,
			Fee:   sub.Fee,
		})

		totalHours += hours
		totalFee += fee
	}

	res.TotalHours = Round(totalHours, hourPlaces)
	res.TotalFee = Round(totalFee, feePlaces)
}

// ForDiscipline runs an estimate against a discipline's library and tags the
// result with the discipline name.
func ForDiscipline(d catalog.Discipline, p Params) (model.EstimateResult, error) {
	cat, err := catalog.For(d)
	if err != nil {
		return model.EstimateResult{}, err
	}
	res, err := Run(cat, p)
	if err != nil {
		return res, err
	}
	res.Discipline = string(d)
	return res, nil
}

// ForDisciplineByPhase is ForDiscipline under the phase-split rule.
func ForDisciplineByPhase(d catalog.Discipline, p Params, phaseFrac map[string]float64) (model.EstimateResult, error) {
	if err := p.Validate(); err != nil {
		return model.EstimateResult{}, err
	}
	cat, err := catalog.For(d)
	if err != nil {
		return model.EstimateResult{}, err
	}
	res := Allocate(cat, p.BillingRate(), p.TargetFee, phaseFrac)
	res.Discipline = string(d)
	return res, nil
}
