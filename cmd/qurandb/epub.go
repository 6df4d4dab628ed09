package cmd

import (
	"fmt"

	"github.com/kerbaras/qurandb/pkg/integrations"
	"github.com/spf13/cobra"
)

func newEpubCmd(c *cli) *cobra.Command {
	var outputDir, title string

	epubCmd := &cobra.Command{
		Use:   "epub",
		Short: "Export the database as an EPUB book",
		Long:  "Write one right-to-left section per surah into an EPUB file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = c.cfg.Export.Dir
			}
			if title == "" {
				title = c.cfg.Export.Title
			}

			repo, err := c.controller.OpenRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			book, err := integrations.LoadBook(cmd.Context(), repo, title, c.cfg.Export.Author)
			if err != nil {
				return fmt.Errorf("failed to read database: %w", err)
			}

			var exporter integrations.Exporter = integrations.NewEPubBuilder(outputDir)
			path, err := exporter.Export(book)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📖 Wrote %s\n", path)
			return nil
		},
	}

	epubCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the EPUB file (default: export.dir)")
	epubCmd.Flags().StringVar(&title, "title", "", "book title (default: export.title)")
	return epubCmd
}
