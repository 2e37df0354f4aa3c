package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/export"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/store"
)

var (
	flagFormat string
	flagOut    string
	flagList   bool
	flagShow   string
	flagDelete string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the work plan as CSV, XLSX or SQLite",
	Long: "Write the work plan for one discipline to files in --out.\n\n" +
		"Formats: csv (full table), tasks-csv (tasks only, unrounded), xlsx, sqlite, all.\n" +
		"--list, --show and --delete read estimates back from the SQLite file in --out.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "Export format: csv, tasks-csv, xlsx, sqlite, all")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output directory (default: config export_dir or .)")
	exportCmd.Flags().BoolVar(&flagList, "list", false, "List estimates stored in the SQLite export")
	exportCmd.Flags().StringVar(&flagShow, "show", "", "Print a stored estimate by id")
	exportCmd.Flags().StringVar(&flagDelete, "delete", "", "Remove a stored estimate by id")
	rootCmd.AddCommand(exportCmd)
}

func exportDir() string {
	if flagOut != "" {
		return flagOut
	}
	if cfg.General.ExportDir != "" {
		return cfg.General.ExportDir
	}
	return "."
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagList || flagShow != "" || flagDelete != "" {
		return runStored(cmd.OutOrStdout())
	}

	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	p, d, err := resolveInputs(cmd)
	if err != nil {
		return err
	}
	res, err := estimate.ForDiscipline(d, p)
	if err != nil {
		return err
	}

	paths, err := export.Write(export.Request{
		Dir:    exportDir(),
		Format: format,
		Result: res,
		Params: p,
		Locale: cfg.Locale(),
	})
	for _, path := range paths {
		progressf("  Wrote %s\n", path)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	logger.For("export").Info().
		Str("discipline", res.Discipline).
		Str("format", string(format)).
		Int("files", len(paths)).
		Msg("export complete")
	return nil
}

func runStored(w io.Writer) error {
	path := filepath.Join(exportDir(), export.DBName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if flagShow != "" || flagDelete != "" {
			return fmt.Errorf("%w: no %s in %s", store.ErrNotFound, export.DBName, exportDir())
		}
		fmt.Fprintln(w, "\n  No stored estimates. Run `feeplan export --format sqlite` first.")
		return nil
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if flagDelete != "" {
		if err := s.DeleteEstimate(flagDelete); err != nil {
			return err
		}
		n, err := s.EstimateCount()
		if err != nil {
			return err
		}
		logger.For("export").Info().Str("id", flagDelete).Int("remaining", n).Msg("deleted estimate")
		fmt.Fprintf(w, "  Deleted %s (%s left)\n", flagDelete, storedCount(n))
		return nil
	}

	if flagShow != "" {
		h, res, err := s.LoadEstimate(flagShow)
		if err != nil {
			return err
		}
		printEstimate(w, fmt.Sprintf("%s  %s", strings.ToUpper(h.Discipline), h.ExportedAt.Local().Format("2006-01-02 15:04")), res, h.Params)
		return nil
	}

	list, err := s.ListEstimates()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "\n  No stored estimates. Run `feeplan export --format sqlite` first.")
		return nil
	}

	l := cfg.Locale()
	rows := make([][]string, 0, len(list))
	for _, h := range list {
		rows = append(rows, []string{
			h.ID,
			h.Discipline,
			h.ExportedAt.Local().Format("2006-01-02 15:04"),
			l.FormatRate(h.BillingRate),
			l.FormatHours(h.TotalHours),
			l.FormatFee(h.TotalFee),
		})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:    "Stored estimates",
		Headers:  []string{"ID", "Discipline", "Exported", "Rate", "Hours", "Fee"},
		Rows:     rows,
		TextCols: 3,
	}))
	fmt.Fprintln(w, cli.RenderMuted("  "+storedCount(len(list))+" in "+path))
	fmt.Fprintln(w)
	return nil
}

func storedCount(n int) string {
	if n == 1 {
		return "1 estimate"
	}
	return humanize.Comma(int64(n)) + " estimates"
}
