package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the surahs in the database",
		Long:  "Display every loaded surah with its verse count in a formatted table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			repo, err := c.controller.OpenRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			surahs, err := repo.ListSurahs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list surahs (has `qurandb load` run?): %w", err)
			}
			if len(surahs) == 0 {
				fmt.Fprintln(out, "📚 No surahs in the database. Use 'qurandb fetch' and 'qurandb load' first.")
				return nil
			}

			counts, err := repo.VerseCounts(cmd.Context())
			if err != nil {
				return err
			}

			columns := []table.Column{
				{Title: "#", Width: 4},
				{Title: "Name", Width: 24},
				{Title: "English", Width: 22},
				{Title: "Type", Width: 8},
				{Title: "Ayahs", Width: 6},
				{Title: "Loaded", Width: 7},
			}

			rows := []table.Row{}
			total := 0
			for _, s := range surahs {
				total += counts[s.Number]
				rows = append(rows, table.Row{
					strconv.Itoa(s.Number),
					truncateString(s.Name, 22),
					truncateString(s.NameEn, 20),
					s.RevelationType,
					strconv.Itoa(s.NumberOfAyahs),
					strconv.Itoa(counts[s.Number]),
				})
			}

			t := table.New(
				table.WithColumns(columns),
				table.WithRows(rows),
				table.WithFocused(false),
				table.WithHeight(len(rows)+2),
			)

			s := table.DefaultStyles()
			s.Header = s.Header.
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true).
				Bold(true)
			s.Selected = s.Cell
			t.SetStyles(s)

			fmt.Fprintln(out, numbers.Sprintf("\n📚 %d surahs, %d verses\n", len(surahs), total))
			fmt.Fprintln(out, t.View())
			return nil
		},
	}
}
