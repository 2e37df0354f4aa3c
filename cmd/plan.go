package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/area"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/config"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/export"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/pipeline"
)

var (
	flagProject    string
	flagInit       string
	flagDetail     bool
	flagPlanFormat string
	flagPhaseSplit bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Split an area-based MEP fee across disciplines",
	Long: "Compute the MEP fee from a project's spaces and construction cost, split it\n" +
		"across electrical, plumbing and mechanical, and scale each work plan to its share.\n\n" +
		"With --phase-split each discipline's share is divided across SD, DD, CD, Bidding\n" +
		"and CA by the [phase_split] percentages, then spread over each phase's tasks.",
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&flagProject, "project", "p", "", "Project TOML file (default: built-in sample project)")
	planCmd.Flags().StringVar(&flagInit, "init", "", "Write a sample project file to this path and exit")
	planCmd.Flags().BoolVar(&flagDetail, "detail", false, "Print each discipline's work plan table")
	planCmd.Flags().BoolVar(&flagPhaseSplit, "phase-split", false, "Allocate each discipline fee by the configured phase split")
	planCmd.Flags().StringVar(&flagPlanFormat, "export", "", "Also export each discipline: csv, tasks-csv, xlsx, sqlite, all")
	planCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output directory for --export")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if flagInit != "" {
		if err := area.SaveProject(flagInit, area.DefaultContext()); err != nil {
			return err
		}
		progressf("  Wrote %s\n", flagInit)
		return nil
	}

	ctx := area.DefaultContext()
	if flagProject != "" {
		var err error
		if ctx, err = area.LoadProject(flagProject); err != nil {
			return err
		}
	}

	p, _, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	var plan pipeline.WorkPlan
	if flagPhaseSplit {
		plan, err = pipeline.BuildPhasedWorkPlan(ctx, cfg.Split, cfg.PhaseSplit, p)
	} else {
		plan, err = pipeline.BuildWorkPlan(ctx, cfg.Split, p)
	}
	if err != nil {
		return err
	}
	logger.For("plan").Info().
		Float64("mep_fee", plan.Summary.MEPFee).
		Float64("total_fee", plan.TotalFee).
		Bool("by_phase", plan.ByPhase).
		Msg("built work plan")

	w := cmd.OutOrStdout()
	printPlan(w, ctx, plan)

	if flagDetail {
		for _, dp := range plan.Disciplines {
			printEstimate(w, strings.ToUpper(dp.Discipline.Label())+" WORK PLAN", dp.Result, p)
		}
	}

	if flagPlanFormat != "" {
		format, err := export.ParseFormat(flagPlanFormat)
		if err != nil {
			return err
		}
		for _, dp := range plan.Disciplines {
			dparams := p
			dparams.TargetFee = dp.TargetFee
			paths, err := export.Write(export.Request{
				Dir:    exportDir(),
				Format: format,
				Result: dp.Result,
				Params: dparams,
				Locale: cfg.Locale(),
			})
			for _, path := range paths {
				progressf("  Wrote %s\n", path)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", dp.Discipline, err)
			}
		}
	}
	return nil
}

func printPlan(w io.Writer, ctx area.Context, plan pipeline.WorkPlan) {
	l := cfg.Locale()
	s := plan.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle("MEP FEE AND WORK PLAN"))
	fmt.Fprintln(w)

	spaceRows := make([][]string, 0, len(ctx.Spaces))
	for _, sp := range ctx.Spaces {
		rate := "n/a"
		if r := sp.Rate(); r > 0 || sp.Override {
			rate = l.FormatUnitRate(r, "SF")
		}
		spaceRows = append(spaceRows, []string{sp.Name, sp.Type, l.FormatArea(sp.AreaSF), rate, l.FormatFee(sp.Cost())})
	}
	spaceRows = append(spaceRows, []string{"---"})
	spaceRows = append(spaceRows, []string{"TOTAL", "", l.FormatArea(s.TotalArea), "", l.FormatFee(s.ConstructionCost)})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:    "Spaces",
		Headers:  []string{"Space", "Type", "Area", "Rate", "Cost"},
		Rows:     spaceRows,
		TextCols: 2,
		Emphasis: map[int]bool{len(spaceRows) - 1: true},
	}))
	fmt.Fprintln(w)

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Fee context",
		Headers: []string{"Item", "Value"},
		Rows: [][]string{
			{"Construction cost", l.FormatFee(s.ConstructionCost)},
			{"Architectural fee", l.FormatFee(s.ArchFee) + "  (" + cli.FormatPercent(ctx.ArchFeePct/100) + ")"},
			{"Typical MEP fee", l.FormatFee(s.TypicalMEPFee) + "  (" + cli.FormatPercent(area.TypicalMEPShare) + " of arch)"},
			{"---"},
			{"MEP fee", l.FormatFee(s.MEPFee) + "  (" + cli.FormatPercent(s.MEPShareOfArchFee) + " of arch)"},
		},
		Emphasis: map[int]bool{4: true},
	}))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(plan.Disciplines)+2)
	for _, dp := range plan.Disciplines {
		rows = append(rows, []string{
			dp.Discipline.Label(),
			cli.FormatPercent(dp.Share),
			l.FormatFee(dp.TargetFee),
			cli.FormatScale(dp.Result.Scale),
			l.FormatHours(dp.Result.TotalHours),
			l.FormatFee(dp.Result.TotalFee),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", "", l.FormatHours(plan.TotalHours), l.FormatFee(plan.TotalFee)})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:    "Discipline split",
		Headers:  []string{"Discipline", "Share", "Target", "Scale", "Hours", "Fee"},
		Rows:     rows,
		Emphasis: map[int]bool{len(rows) - 1: true},
	}))
	fmt.Fprintln(w)
	if plan.ByPhase {
		fmt.Fprint(w, phaseTable(plan, l))
		fmt.Fprintln(w)
	}
	for _, warn := range splitWarnings(plan.ByPhase) {
		fmt.Fprintln(w, cli.RenderWarning("  "+warn))
	}
	fmt.Fprintln(w, cli.RenderMuted(fmt.Sprintf("  Split from %s", config.Path())))
	fmt.Fprintln(w)
}

// phaseTable sums each phase across disciplines. Phases missing from every
// library are left out.
func phaseTable(plan pipeline.WorkPlan, l cli.Locale) string {
	rows := make([][]string, 0, len(catalog.Phases)+2)
	var hours, fee float64
	for _, ph := range catalog.Phases {
		var h, f float64
		var found bool
		for _, dp := range plan.Disciplines {
			for _, sub := range dp.Result.Subtotals {
				if sub.Phase == ph.Code {
					h += sub.Hours
					f += sub.Fee
					found = true
				}
			}
		}
		if !found {
			continue
		}
		hours += h
		fee += f
		rows = append(rows, []string{ph.Code + "  " + ph.Name, l.FormatHours(estimate.Round(h, 1)), l.FormatFee(estimate.Round(f, 0))})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", l.FormatHours(estimate.Round(hours, 1)), l.FormatFee(estimate.Round(fee, 0))})
	return cli.RenderTable(cli.Table{
		Title:    "Phase split",
		Headers:  []string{"Phase", "Hours", "Fee"},
		Rows:     rows,
		Emphasis: map[int]bool{len(rows) - 1: true},
	})
}

// splitWarnings flags configured splits that do not add up to 100; they are
// normalized before use.
func splitWarnings(byPhase bool) []string {
	var out []string
	if t := cfg.Split.Total(); math.Abs(t-100) > 1e-9 {
		out = append(out, fmt.Sprintf("Discipline split sums to %g%%, not 100%%; shares were normalized.", t))
	}
	if t := cfg.PhaseSplit.Total(); byPhase && math.Abs(t-100) > 1e-9 {
		out = append(out, fmt.Sprintf("Phase split sums to %g%%, not 100%%; shares were normalized.", t))
	}
	return out
}
