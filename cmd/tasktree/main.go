package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/tasktree/internal/config"
	"github.com/tgienger/tasktree/internal/db"
	"github.com/tgienger/tasktree/internal/logging"
	"github.com/tgienger/tasktree/internal/store"
	"github.com/tgienger/tasktree/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	view       string
	logLevel   string
	demo       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "tasktree",
		Short:         "Terminal task board with nested subtasks",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/tasktree/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.demo, "demo", false, "Start from the demo task tree instead of configured tasks")
	cmd.Flags().StringVar(&opts.view, "view", "", "Initial view: cards or tree")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error, off (overrides config)")

	cmd.AddCommand(newTagsCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	return cmd
}

// loadConfig resolves the config path and applies --demo
func loadConfig(opts *rootOptions) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.demo || len(cfg.Tasks) == 0 {
		cfg.Tasks = config.DemoTasks()
	}
	return cfg, nil
}

func newStore(cfg config.Config) *store.Store {
	return store.New(
		store.WithTasks(cfg.Tasks),
		store.WithCatalog(cfg.Tags),
		store.WithLogger(logging.Component("store")),
	)
}

func runTUI(opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.view != "" {
		if opts.view != config.ViewCards && opts.view != config.ViewTree {
			return fmt.Errorf("unknown view %q (want %s or %s)", opts.view, config.ViewCards, config.ViewTree)
		}
		cfg.View = opts.view
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logFile, err := logging.OpenFile(cfg.LogFile())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: logFile,
	})
	log := logging.Component("main")
	log.Info().Str("version", version).Int("tasks", len(cfg.Tasks)).Msg("starting")

	database, err := db.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer database.Close()

	st := newStore(cfg)
	defer st.Close()

	appOpts := []ui.Option{
		ui.WithView(ui.ParseView(cfg.View)),
		ui.WithLogger(logging.Component("ui")),
	}
	// An explicit --view wins over the saved one
	if opts.view == "" {
		appOpts = append(appOpts, ui.WithPreferences(database))
	}
	app := ui.NewApp(st, appOpts...)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}
