package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kerbaras/qurandb/pkg/app/components"
	"github.com/kerbaras/qurandb/pkg/services"
	"github.com/spf13/cobra"
)

func newFetchCmd(c *cli) *cobra.Command {
	var byJuz bool

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the Quran from alquran.cloud into a JSON file",
		Long: "Fetch the surah list and every verse, one page (or juz) at a time, and write\n" +
			"them to the configured output file. Pages that keep failing are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			mode := services.ModePage
			if byJuz {
				mode = services.ModeJuz
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(out, "📥 Fetching by %s from %s\n", mode, c.cfg.API.BaseURL)

			fetcher := c.controller.Fetcher()

			// Listen for progress
			tracker := components.NewProgressTracker(60)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for progress := range fetcher.GetProgressChannel() {
					tracker.Update(progress)
					// Redraw in place and erase what the previous line left behind.
					fmt.Fprintf(errOut, "\r%s\x1b[K", tracker.View())
				}
				fmt.Fprintln(errOut)
			}()

			summary, err := fetcher.Run(ctx, mode, c.cfg.Fetch.Output)
			fetcher.Close()
			<-done
			if err != nil {
				return err
			}

			fmt.Fprintln(out, numbers.Sprintf("✅ Saved %d surahs and %d verses to %s (%s)",
				summary.Surahs, summary.Verses, summary.Output, summary.Elapsed.Round(time.Millisecond)))
			if summary.Skipped > 0 {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf(
					"⚠️  %d %s(s) skipped. Validation will reject this file, run fetch again.",
					summary.Skipped, summary.Mode)))
			}
			return nil
		},
	}

	fetchCmd.Flags().BoolVar(&byJuz, "juz", false, "fetch by juz (30 requests) instead of by page (604 requests)")
	return fetchCmd
}
