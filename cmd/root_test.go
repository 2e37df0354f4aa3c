package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/config"
	"github.com/theirongolddev/feeplan/internal/estimate"
)

// newFlagCmd returns a command carrying the estimate flags, parsed from args.
func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	f := c.Flags()
	f.Float64Var(&flagRate, "rate", 56, "")
	f.Float64Var(&flagMultiplier, "multiplier", 3.6, "")
	f.Float64Var(&flagTargetFee, "target-fee", 0, "")
	f.StringVar(&flagDiscipline, "discipline", "electrical", "")
	if err := c.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return c
}

func withConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestResolveInputsUsesConfigDefaults(t *testing.T) {
	c := config.DefaultConfig()
	c.Rates.StandardRate = 80
	c.Rates.TargetFee = 5000
	c.General.Discipline = "mechanical"
	withConfig(t, c)

	p, d, err := resolveInputs(newFlagCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if p.StandardRate != 80 || p.Multiplier != 3.6 || p.TargetFee != 5000 {
		t.Errorf("params = %+v, want config values", p)
	}
	if d != catalog.Mechanical {
		t.Errorf("discipline = %s, want mechanical", d)
	}
}

func TestResolveInputsFlagsWin(t *testing.T) {
	c := config.DefaultConfig()
	c.Rates.StandardRate = 80
	withConfig(t, c)

	p, d, err := resolveInputs(newFlagCmd(t, "--rate", "100", "--discipline", "plumbing"))
	if err != nil {
		t.Fatal(err)
	}
	if p.StandardRate != 100 {
		t.Errorf("StandardRate = %v, want 100", p.StandardRate)
	}
	if d != catalog.Plumbing {
		t.Errorf("discipline = %s, want plumbing", d)
	}
}

func TestResolveInputsRejectsNegative(t *testing.T) {
	withConfig(t, config.DefaultConfig())

	cases := [][]string{
		{"--target-fee", "-1"},
		{"--rate", "Inf"},
		{"--rate", "1e200", "--multiplier", "1e200", "--target-fee", "1000"},
	}
	for _, args := range cases {
		_, _, err := resolveInputs(newFlagCmd(t, args...))
		if !errors.Is(err, estimate.ErrInvalidInput) {
			t.Errorf("resolveInputs(%v) err = %v, want ErrInvalidInput", args, err)
		}
	}
}

func TestNonNegativeRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"-1", "Inf", "NaN", "abc"} {
		if nonNegative(s) == nil {
			t.Errorf("nonNegative(%q) = nil, want error", s)
		}
	}
	if err := nonNegative("56"); err != nil {
		t.Errorf("nonNegative(56) = %v", err)
	}
}

func TestResolveInputsRejectsUnknownDiscipline(t *testing.T) {
	withConfig(t, config.DefaultConfig())

	_, _, err := resolveInputs(newFlagCmd(t, "--discipline", "civil"))
	if !errors.Is(err, catalog.ErrUnknownDiscipline) {
		t.Fatalf("err = %v, want ErrUnknownDiscipline", err)
	}
}
