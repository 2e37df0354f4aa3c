package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/config"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for default rates and formatting",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the form's string fields until they are parsed.
type setupValues struct {
	rate       string
	multiplier string
	targetFee  string
	discipline string
	exportDir  string
	currency   string
	decimals   int
	separator  string
	theme      string
}

func nonNegative(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number")
	}
	return estimate.CheckAmount("value", v)
}

func runSetup(_ *cobra.Command, _ []string) error {
	vals := setupValues{
		rate:       strconv.FormatFloat(cfg.Rates.StandardRate, 'f', -1, 64),
		multiplier: strconv.FormatFloat(cfg.Rates.Multiplier, 'f', -1, 64),
		targetFee:  strconv.FormatFloat(cfg.Rates.TargetFee, 'f', -1, 64),
		discipline: cfg.General.Discipline,
		exportDir:  cfg.General.ExportDir,
		currency:   cfg.Format.CurrencySymbol,
		decimals:   cfg.Format.DecimalPlaces,
		separator:  cfg.Format.ThousandsSeparator,
		theme:      cfg.Appearance.Theme,
	}

	disciplineOpts := make([]huh.Option[string], 0, 3)
	for _, d := range catalog.Disciplines() {
		disciplineOpts = append(disciplineOpts, huh.NewOption(d.Label(), string(d)))
	}
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to feeplan!").
				Description(fmt.Sprintf("Defaults are saved to %s.", config.Path())),
			huh.NewInput().Title("Standard hourly rate").Value(&vals.rate).Validate(nonNegative),
			huh.NewInput().Title("Multiplier").Value(&vals.multiplier).Validate(nonNegative),
			huh.NewInput().Title("Default target fee").Description("0 for none").Value(&vals.targetFee).Validate(nonNegative),
			huh.NewSelect[string]().Title("Default discipline").Options(disciplineOpts...).Value(&vals.discipline),
		),
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(&vals.currency),
			huh.NewSelect[int]().Title("Fee decimal places").
				Options(huh.NewOption("0  ($1,235)", 0), huh.NewOption("2  ($1,234.57)", 2)).
				Value(&vals.decimals),
			huh.NewSelect[string]().Title("Thousands separator").
				Options(
					huh.NewOption("comma  1,234", ","),
					huh.NewOption("period  1.234", "."),
					huh.NewOption("space  1 234", " "),
					huh.NewOption("none  1234", ""),
				).
				Value(&vals.separator),
			huh.NewInput().Title("Export directory").Description("blank for the current directory").Value(&vals.exportDir),
			huh.NewSelect[string]().Title("Color theme").Options(themeOpts...).Value(&vals.theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	next := cfg
	next.Rates.StandardRate, _ = strconv.ParseFloat(vals.rate, 64)
	next.Rates.Multiplier, _ = strconv.ParseFloat(vals.multiplier, 64)
	next.Rates.TargetFee, _ = strconv.ParseFloat(vals.targetFee, 64)
	next.General.Discipline = vals.discipline
	next.General.ExportDir = vals.exportDir
	next.Format = config.FormatConfig{
		CurrencySymbol:     vals.currency,
		DecimalPlaces:      vals.decimals,
		ThousandsSeparator: vals.separator,
	}
	next.Appearance.Theme = vals.theme

	if err := next.Validate(); err != nil {
		return err
	}
	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	l := cli.Locale{CurrencySymbol: vals.currency, DecimalPlaces: vals.decimals, ThousandsSeparator: vals.separator}
	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Printf("  Billing rate: %s\n", l.FormatRate(next.Params().BillingRate()))
	fmt.Println("  Run `feeplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
