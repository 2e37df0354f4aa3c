package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/feeplan/internal/catalog"
	"github.com/theirongolddev/feeplan/internal/cli"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [discipline]",
	Short: "List the task catalog with baseline hours",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, args []string) error {
	disciplines := catalog.Disciplines()
	if len(args) == 1 {
		d, err := catalog.ParseDiscipline(args[0])
		if err != nil {
			return err
		}
		disciplines = []catalog.Discipline{d}
	}

	l := cfg.Locale()
	for _, d := range disciplines {
		cat, err := catalog.For(d)
		if err != nil {
			return err
		}

		var rows [][]string
		prev := ""
		for _, r := range cat.Records() {
			if prev != "" && r.Phase != prev {
				rows = append(rows, []string{"---"})
			}
			prev = r.Phase
			rows = append(rows, []string{catalog.PhaseName(r.Phase), r.Task, l.FormatHours(r.BaseHours)})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"TOTAL", fmt.Sprintf("%d tasks", cat.Len()), l.FormatHours(cat.BaseTotalHours())})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    d.Label(),
			Headers:  []string{"Phase", "Task", "Base Hours"},
			Rows:     rows,
			TextCols: 2,
			Emphasis: map[int]bool{len(rows) - 1: true},
		}))
	}
	fmt.Println()
	return nil
}
