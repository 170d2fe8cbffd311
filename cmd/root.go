package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hurou927/marygen/internal/config"
	"github.com/hurou927/marygen/internal/db"
	"github.com/hurou927/marygen/internal/schema"
	"github.com/hurou927/marygen/internal/version"
)

var (
	cfgPath    string
	projectDir string
	verbose    bool
	cfg        *config.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "marygen",
	Short: "Generate MaryUI CRUD pages for Laravel models",
	Long: `marygen reads the table behind an Eloquent model and generates a Livewire Volt page
with a sortable, paginated MaryUI table and create, edit and delete modals.
The page is written under resources/views/livewire and routed in routes/web.php.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsConfig(cmd) {
			return nil
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		path := cfgPath
		if path == "" {
			path = filepath.Join(projectDir, "marygen.yaml")
		}
		var err error
		cfg, err = config.Load(path, projectDir)
		if err != nil {
			return err
		}
		logger.Debug("loaded config", "path", path, "project", projectDir, "driver", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (default <project>/marygen.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", ".", "Laravel project directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "show detailed progress")
}

// needsConfig reports whether cmd works on a project. Help and shell
// completion must run outside one.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// openIntrospector connects to the configured database on demand.
func openIntrospector(ctx context.Context) (schema.Introspector, error) {
	return db.NewIntrospector(ctx, cfg)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint(err))
		os.Exit(1)
	}
}
