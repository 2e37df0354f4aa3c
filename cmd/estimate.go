package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/model"
)

var flagNoBars bool

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Print the work plan table for one discipline",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().BoolVar(&flagNoBars, "no-bars", false, "Hide the phase fee bars")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	p, d, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	res, err := estimate.ForDiscipline(d, p)
	if err != nil {
		return err
	}

	logger.For("estimate").Info().
		Str("discipline", res.Discipline).
		Float64("billing_rate", res.BillingRate).
		Float64("scale", res.Scale).
		Float64("base_total_hours", res.BaseTotalHours).
		Msg("computed estimate")

	printEstimate(cmd.OutOrStdout(), strings.ToUpper(d.Label())+" WORK PLAN", res, p)
	return nil
}

func printEstimate(w io.Writer, title string, res model.EstimateResult, p estimate.Params) {
	l := cfg.Locale()

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(title))
	fmt.Fprintln(w)

	fmt.Fprintln(w, cli.RenderMuted(fmt.Sprintf("  Billing rate %s (%s x %g)   Scale %s",
		l.FormatRate(res.BillingRate), l.FormatRate(p.StandardRate), p.Multiplier, cli.FormatScale(res.Scale))))
	if res.TargetFee > 0 && res.Scale == 0 {
		fmt.Fprintln(w, cli.RenderWarning("  Billing rate is zero; the target fee cannot be reached."))
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, cli.RenderTable(cli.EstimateTable("", res, l)))
	fmt.Fprintln(w, "  "+cli.SummaryLine(res, l))

	if !flagNoBars {
		if bars := cli.RenderPhaseBars(res, l, 24); bars != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, bars)
		}
	}
	fmt.Fprintln(w)
}
