package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kerbaras/qurandb/pkg/app"
	"github.com/kerbaras/qurandb/pkg/config"
	"github.com/kerbaras/qurandb/pkg/services"
	"github.com/spf13/cobra"
)

// cli carries what the persistent pre-run resolves for every command.
type cli struct {
	configPath string
	logLevel   string

	logger     *slog.Logger
	cfg        *config.Config
	controller *services.Controller
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "qurandb",
		Short: "Fetch, validate and load the Quran into a database",
		Long: "Download Quranic text and metadata from alquran.cloud, validate it against the\n" +
			"known verse counts and load it into SQLite, DuckDB or PostgreSQL.\n" +
			"Run without a subcommand to browse a loaded database.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Launch TUI by default
			repo, err := c.controller.OpenRepository()
			if err != nil {
				return err
			}
			defer repo.Close()
			return app.NewApp(repo).Run()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./"+config.ProjectConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newFetchCmd(c))
	rootCmd.AddCommand(newLoadCmd(c))
	rootCmd.AddCommand(newCheckCmd(c))
	rootCmd.AddCommand(newListCmd(c))
	rootCmd.AddCommand(newEpubCmd(c))
	rootCmd.AddCommand(newConfigCmd(c))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q", c.logLevel)
	}
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)

	cfg, err := config.NewLoader(c.logger).Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.controller = services.NewController(cfg, c.logger)
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
