package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	l := cfg.Locale()

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Discipline:    %s\n", cfg.General.Discipline)
	exportDir := cfg.General.ExportDir
	if exportDir == "" {
		exportDir = "(current directory)"
	}
	fmt.Printf("    Export dir:    %s\n", exportDir)
	fmt.Printf("    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Rates]")
	fmt.Printf("    Standard rate: %s\n", l.FormatRate(cfg.Rates.StandardRate))
	fmt.Printf("    Multiplier:    %g\n", cfg.Rates.Multiplier)
	fmt.Printf("    Billing rate:  %s\n", l.FormatRate(cfg.Params().BillingRate()))
	if cfg.Rates.TargetFee > 0 {
		fmt.Printf("    Target fee:    %s\n", l.FormatFee(cfg.Rates.TargetFee))
	} else {
		fmt.Println("    Target fee:    not set")
	}
	fmt.Println()

	fmt.Println("  [Format]")
	fmt.Printf("    Currency:      %q\n", cfg.Format.CurrencySymbol)
	fmt.Printf("    Fee decimals:  %d\n", cfg.Format.DecimalPlaces)
	fmt.Printf("    Thousands sep: %q\n", cfg.Format.ThousandsSeparator)
	fmt.Printf("    Sample:        %s  %s hrs\n", l.FormatFee(1234567.891), l.FormatHours(1234.56))
	fmt.Println()

	fmt.Println("  [Split]")
	fmt.Printf("    Electrical:    %g\n", cfg.Split.Electrical)
	fmt.Printf("    Plumbing:      %g\n", cfg.Split.Plumbing)
	fmt.Printf("    Mechanical:    %g\n", cfg.Split.Mechanical)
	fmt.Println()

	ps := cfg.PhaseSplit
	fmt.Println("  [Phase split]")
	fmt.Printf("    SD %g  DD %g  CD %g  Bidding %g  CA %g\n", ps.SD, ps.DD, ps.CD, ps.Bidding, ps.CA)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Environment overrides: " + config.EnvStandardRate + ", " + config.EnvMultiplier + ", " +
		config.EnvTargetFee + ", " + config.EnvDiscipline + ", " + config.EnvLogLevel)
	fmt.Println("  Run `feeplan setup` to reconfigure.")
	return nil
}
