// Package model defines domain types for feeplan estimates.
package model

// TaskRecord is one compiled-in catalog line: a task within a phase and its
// effort at scale 1.0.
type TaskRecord struct {
	Phase     string
	Task      string
	BaseHours float64
}

// ComputedTask holds the scaled hours and fee for one catalog task.
// Hours and Fee are rounded for display; the exact values are kept for the
// tasks-only export.
type ComputedTask struct {
	Phase      string
	Task       string
	Hours      float64
	Fee        float64
	ExactHours float64
	ExactFee   float64
}

// PhaseSubtotal aggregates the rounded task values of one phase.
type PhaseSubtotal struct {
	Phase string
	Hours float64
	Fee   float64
}

// RowKind distinguishes task rows from subtotal rows in a report.
type RowKind int

const (
	RowTask RowKind = iota
	RowSubtotal
)

// Row is one line of the report table. Subtotal rows carry an empty Task.
type Row struct {
	Kind  RowKind
	Phase string
	Task  string
	Hours float64
	Fee   float64
}

// IsSubtotal reports whether the row is a phase subtotal.
func (r Row) IsSubtotal() bool {
	return r.Kind == RowSubtotal
}

// EstimateResult is the full output of one estimate run.
type EstimateResult struct {
	Discipline     string
	BillingRate    float64
	TargetFee      float64
	Scale          float64
	BaseTotalHours float64
	BaseTotalFee   float64

	Tasks     []ComputedTask
	Subtotals []PhaseSubtotal
	Rows      []Row // tasks in catalog order, each phase followed by its subtotal

	TotalHours float64
	TotalFee   float64
}
