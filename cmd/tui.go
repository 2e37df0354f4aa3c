package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive estimator",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Directory for CSV exports (default: config export_dir or .)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	p, d, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Params:     p,
		Discipline: d,
		Locale:     cfg.Locale(),
		ExportDir:  exportDir(),
	})
	prog := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
