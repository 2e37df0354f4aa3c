package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/estimate"
)

// inputValues backs the huh form. The form writes through pointers, so the
// App keeps a pointer to one of these across Update copies.
type inputValues struct {
	StandardRate string
	Multiplier   string
	TargetFee    string
	Discipline   string
}

func newInputValues(p estimate.Params, d catalog.Discipline) *inputValues {
	return &inputValues{
		StandardRate: formatInput(p.StandardRate),
		Multiplier:   formatInput(p.Multiplier),
		TargetFee:    formatInput(p.TargetFee),
		Discipline:   string(d),
	}
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount accepts a non-negative number, ignoring "$", "," and spaces.
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("must be >= 0")
	}
	return v, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

// params converts the form values, rejecting anything the estimate would.
func (v *inputValues) params() (estimate.Params, catalog.Discipline, error) {
	var p estimate.Params
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"standard rate", v.StandardRate, &p.StandardRate},
		{"multiplier", v.Multiplier, &p.Multiplier},
		{"target fee", v.TargetFee, &p.TargetFee},
	}
	for _, f := range fields {
		n, err := parseAmount(f.raw)
		if err != nil {
			return p, "", fmt.Errorf("%w: %s %v", estimate.ErrInvalidInput, f.name, err)
		}
		*f.dst = n
	}
	if err := p.Validate(); err != nil {
		return p, "", err
	}

	d, err := catalog.ParseDiscipline(v.Discipline)
	if err != nil {
		return p, "", err
	}
	return p, d, nil
}

func newInputForm(vals *inputValues) *huh.Form {
	options := make([]huh.Option[string], 0, len(catalog.Disciplines()))
	for _, d := range catalog.Disciplines() {
		options = append(options, huh.NewOption(d.Label(), string(d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Estimate inputs").
				Description("Billing rate = standard rate x multiplier.\nA target fee of 0 keeps the catalog hours."),

			huh.NewInput().
				Title("Standard hourly rate").
				Placeholder("56").
				Value(&vals.StandardRate).
				Validate(validateAmount),

			huh.NewInput().
				Title("Multiplier").
				Placeholder("3.6").
				Value(&vals.Multiplier).
				Validate(validateAmount),

			huh.NewInput().
				Title("Target fee").
				Description("0 for no target").
				Placeholder("0").
				Value(&vals.TargetFee).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Title("Discipline").
				Options(options...).
				Value(&vals.Discipline),
		),
	).WithShowHelp(true)
}
