package estimate

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/model"
)

const propTasks = 12

// catalogFrom spreads generated base hours over the phase list so groups
// interleave and first-occurrence order matters.
func catalogFrom(hours []float64) catalog.Catalog {
	records := make([]model.TaskRecord, len(hours))
	for i, h := range hours {
		ph := catalog.Phases[(i*3)%len(catalog.Phases)].Code
		records[i] = model.TaskRecord{Phase: ph, Task: fmt.Sprintf("task-%02d", i), BaseHours: h}
	}
	return catalog.New(records...)
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func hoursGen() gopter.Gen {
	return gen.SliceOfN(propTasks, gen.Float64Range(0.5, 400))
}

func TestEstimateProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("no target keeps base hours", prop.ForAll(
		func(hours []float64, rate float64) bool {
			res := Compute(catalogFrom(hours), rate, 0)
			if res.Scale != 1 {
				return false
			}
			for i, ct := range res.Tasks {
				if math.Abs(ct.Hours-hours[i]) > 0.05+1e-9 {
					return false
				}
			}
			return true
		},
		hoursGen(),
		gen.Float64Range(1, 500),
	))

	properties.Property("fees reconcile to the target within rounding", prop.ForAll(
		func(hours []float64, rate, target float64) bool {
			res := Compute(catalogFrom(hours), rate, target)
			var sum float64
			for _, ct := range res.Tasks {
				sum += ct.Fee
			}
			return math.Abs(sum-target) <= 0.5*float64(len(res.Tasks))+1e-6
		},
		hoursGen(),
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 2_000_000),
	))

	properties.Property("identical inputs give identical results", prop.ForAll(
		func(hours []float64, rate, target float64) bool {
			cat := catalogFrom(hours)
			return reflect.DeepEqual(Compute(cat, rate, target), Compute(cat, rate, target))
		},
		hoursGen(),
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 2_000_000),
	))

	properties.Property("rows follow catalog phase and task order", prop.ForAll(
		func(hours []float64, rate float64) bool {
			cat := catalogFrom(hours)
			res := Compute(cat, rate, 0)

			var phases []string
			for _, r := range res.Rows {
				if r.IsSubtotal() {
					phases = append(phases, r.Phase)
				}
			}
			if !reflect.DeepEqual(phases, cat.PhaseOrder()) {
				return false
			}

			// Within each phase, tasks appear in catalog order.
			pos := make(map[string]int)
			for i, rec := range cat.Records() {
				pos[rec.Task] = i
			}
			last := make(map[string]int)
			for _, r := range res.Rows {
				if r.IsSubtotal() {
					continue
				}
				if p, ok := last[r.Phase]; ok && pos[r.Task] <= p {
					return false
				}
				last[r.Phase] = pos[r.Task]
			}
			return true
		},
		hoursGen(),
		gen.Float64Range(1, 500),
	))

	properties.Property("subtotals equal rounded sums of rounded tasks", prop.ForAll(
		func(hours []float64, rate, target float64) bool {
			res := Compute(catalogFrom(hours), rate, target)
			for _, s := range res.Subtotals {
				var h, f float64
				for _, ct := range res.Tasks {
					if ct.Phase == s.Phase {
						h += ct.Hours
						f += ct.Fee
					}
				}
				if s.Hours != Round(h, 1) || s.Fee != Round(f, 0) {
					return false
				}
			}
			return true
		},
		hoursGen(),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 2_000_000),
	))

	properties.Property("zero billing rate means zero fees", prop.ForAll(
		func(hours []float64, target float64) bool {
			res := Compute(catalogFrom(hours), 0, target)
			for _, ct := range res.Tasks {
				if ct.Fee != 0 {
					return false
				}
			}
			return res.TotalFee == 0
		},
		hoursGen(),
		gen.Float64Range(0, 2_000_000),
	))

	properties.TestingRun(t)
}
