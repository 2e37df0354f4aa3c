// Package catalog holds the compiled-in task libraries for each MEP discipline.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/feeplan/internal/model"
)

// ErrUnknownDiscipline is returned when a discipline name does not match any library.
var ErrUnknownDiscipline = errors.New("unknown discipline")

// Discipline identifies one engineering trade with its own task library.
type Discipline string

const (
	Electrical Discipline = "electrical"
	Plumbing   Discipline = "plumbing"
	Mechanical Discipline = "mechanical"
)

// Label returns the display name of the discipline.
func (d Discipline) Label() string {
	switch d {
	case Electrical:
		return "Electrical"
	case Plumbing:
		return "Plumbing / Fire"
	case Mechanical:
		return "Mechanical"
	}
	return string(d)
}

// Disciplines returns all disciplines in display order.
func Disciplines() []Discipline {
	return []Discipline{Electrical, Plumbing, Mechanical}
}

var disciplineAliases = map[string]Discipline{
	"electrical":    Electrical,
	"elec":          Electrical,
	"e":             Electrical,
	"plumbing":      Plumbing,
	"plumbing/fire": Plumbing,
	"fire":          Plumbing,
	"p":             Plumbing,
	"mechanical":    Mechanical,
	"mech":          Mechanical,
	"m":             Mechanical,
}

// ParseDiscipline resolves a user-supplied name or alias, case-insensitively.
func ParseDiscipline(s string) (Discipline, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	if d, ok := disciplineAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDiscipline, s)
}

// Phase describes one project stage in display order.
type Phase struct {
	Code string
	Name string
}

// Phases lists every phase a library may use, in display order.
var Phases = []Phase{
	{Code: "SD", Name: "Schematic Design"},
	{Code: "DD", Name: "Design Development"},
	{Code: "CD", Name: "Construction Documents"},
	{Code: "Bidding", Name: "Bidding"},
	{Code: "CA", Name: "Construction Administration"},
}

// PhaseName returns the long name for a phase code, or the code itself.
func PhaseName(code string) string {
	for _, p := range Phases {
		if p.Code == code {
			return p.Name
		}
	}
	return code
}

// Catalog is an immutable, ordered list of task records.
type Catalog struct {
	records []model.TaskRecord
}

// New builds a catalog from records in the given order.
func New(records ...model.TaskRecord) Catalog {
	rs := make([]model.TaskRecord, len(records))
	copy(rs, records)
	return Catalog{records: rs}
}

// For returns the library for a discipline.
func For(d Discipline) (Catalog, error) {
	records, ok := libraries[d]
	if !ok {
		return Catalog{}, fmt.Errorf("%w: %q", ErrUnknownDiscipline, string(d))
	}
	return New(records...), nil
}

// Records returns a copy of the records in catalog order.
func (c Catalog) Records() []model.TaskRecord {
	rs := make([]model.TaskRecord, len(c.records))
	copy(rs, c.records)
	return rs
}

// Len returns the number of tasks.
func (c Catalog) Len() int {
	return len(c.records)
}

// BaseTotalHours sums the unscaled hours of every task.
func (c Catalog) BaseTotalHours() float64 {
	var total float64
	for _, r := range c.records {
		total += r.BaseHours
	}
	return total
}

// PhaseOrder returns distinct phase names in first-occurrence order.
func (c Catalog) PhaseOrder() []string {
	seen := make(map[string]struct{})
	var order []string
	for _, r := range c.records {
		if _, ok := seen[r.Phase]; ok {
			continue
		}
		seen[r.Phase] = struct{}{}
		order = append(order, r.Phase)
	}
	return order
}
