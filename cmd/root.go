// Package cmd implements the feeplan CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/config"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/tui/theme"
)

var (
	flagRate       float64
	flagMultiplier float64
	flagTargetFee  float64
	flagDiscipline string
	flagLogLevel   string
	flagLogJSON    bool
	flagQuiet      bool
)

// cfg is the loaded configuration, set before any command runs.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "feeplan",
	Short: "MEP fee and work plan estimator",
	Long: "Estimate hours and fees for an MEP work plan from a compiled-in task catalog,\n" +
		"a billing rate and an optional target fee.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEstimate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64VarP(&flagRate, "rate", "r", 56, "Standard hourly rate")
	pf.Float64VarP(&flagMultiplier, "multiplier", "m", 3.6, "Rate multiplier")
	pf.Float64VarP(&flagTargetFee, "target-fee", "t", 0, "Target fee (0 for no scaling)")
	pf.StringVarP(&flagDiscipline, "discipline", "d", "electrical", "Discipline: electrical, plumbing, mechanical")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON lines")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads .env and the config file, then sets up logging and theme.
// The setup wizard still runs on a broken config so it can repair it.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil && cmd.Name() != setupCmd.Name() {
		return err
	}
	if err == nil {
		cfg = loaded
	}

	level := cfg.General.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagLogJSON {
		logger.InitJSON(level, os.Stderr)
	} else {
		logger.Init(level, os.Stderr)
	}
	theme.SetActive(cfg.Appearance.Theme)

	logger.For("config").Debug().
		Str("path", config.Path()).
		Bool("exists", config.Exists()).
		Msg("loaded config")
	return nil
}

// resolveInputs merges config defaults with explicitly set flags and
// validates the result.
func resolveInputs(cmd *cobra.Command) (estimate.Params, catalog.Discipline, error) {
	p := cfg.Params()
	discipline := cfg.General.Discipline

	flags := cmd.Flags()
	if flags.Changed("rate") {
		p.StandardRate = flagRate
	}
	if flags.Changed("multiplier") {
		p.Multiplier = flagMultiplier
	}
	if flags.Changed("target-fee") {
		p.TargetFee = flagTargetFee
	}
	if flags.Changed("discipline") {
		discipline = flagDiscipline
	}

	if err := p.Validate(); err != nil {
		return p, "", err
	}
	d, err := catalog.ParseDiscipline(discipline)
	if err != nil {
		return p, "", err
	}
	return p, d, nil
}

func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
