package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/kerbaras/qurandb/pkg/services"
	"github.com/kerbaras/qurandb/pkg/validation"
	"github.com/spf13/cobra"
)

func newLoadCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Validate the fetched JSON file and load it into the database",
		Long: "Validate the configured JSON file against the expected verse counts and, if it\n" +
			"passes, replace the surahs and verses tables in one transaction.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			input := c.cfg.Fetch.Output

			fmt.Fprintf(out, "📖 Loading %s into %s (%s)\n", input, c.cfg.Store.Path, c.cfg.Store.Driver)

			result, err := c.controller.Loader().Load(cmd.Context(), input)
			var validationErr *services.ValidationError
			if errors.As(err, &validationErr) {
				printReport(out, validationErr.Report)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, numbers.Sprintf("✅ Loaded %d surahs and %d verses (expected counts: %s)",
				result.Surahs, result.Verses, result.Expected.Source))
			return nil
		},
	}
}

func printReport(out io.Writer, report *validation.Report) {
	fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("❌ Validation failed with %d error(s):", len(report.Errors))))
	for _, msg := range report.Errors {
		fmt.Fprintf(out, "  • %s\n", msg)
	}
	for _, msg := range report.Warnings {
		fmt.Fprintln(out, warnStyle.Render("  ⚠️  "+msg))
	}
}
