package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/qurandb/pkg/app/styles"
	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/spf13/cobra"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a JSON file without touching the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			input := c.cfg.Fetch.Output
			if len(args) == 1 {
				input = args[0]
			}

			result, err := c.controller.Loader().Check(cmd.Context(), input)
			if err != nil {
				return err
			}

			doc, expected, report := result.Document, result.Expected, result.Report
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
				Headers("Check", "Expected", "Found", "Status").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return styles.HeaderStyle
					}
					return styles.CellStyle
				}).
				Row("Surahs", strconv.Itoa(data.SurahCount), strconv.Itoa(len(doc.Surahs)),
					statusCell(len(doc.Surahs) == data.SurahCount)).
				Row("Verses", strconv.Itoa(expected.Total), strconv.Itoa(len(doc.Verses)),
					statusCell(len(doc.Verses) == expected.Total)).
				Row("Surahs with verses", strconv.Itoa(len(expected.Counts)), strconv.Itoa(len(doc.VersesBySurah())),
					statusCell(report.OK()))

			fmt.Fprintf(out, "🔎 %s (expected counts from %s)\n", input, expected.Source)
			if meta := doc.Meta; meta != nil {
				fmt.Fprintf(out, "   run %s, %s mode, %d skipped, %s\n",
					meta.RunID, meta.Mode, meta.Skipped, meta.GeneratedAt.Format("2006-01-02 15:04:05Z07:00"))
			}
			fmt.Fprintln(out, t.Render())

			if !report.OK() {
				printReport(out, report)
				return fmt.Errorf("%s failed validation", input)
			}
			fmt.Fprintln(out, okStyle.Render("✅ Ready to load"))
			return nil
		},
	}
}
