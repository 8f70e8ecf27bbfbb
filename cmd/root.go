package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/config"
	"github.com/abhisek/ember/internal/logging"
	"github.com/abhisek/ember/internal/store"
)

var (
	settings = config.New()
	cfg      = defaultConfig()
)

func defaultConfig() *config.Config {
	c := config.Default()
	return &c
}

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Trust scores and answer checks for learning content",
	Long: "Ember scores learning content for trustworthiness and verifies the " +
		"answers of authored math questions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}

		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(settings, configFile)
		if err != nil {
			return err
		}
		cfg = c

		return logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	},
}

// Execute runs the root command; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	def := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ./ember.yaml or $XDG_CONFIG_HOME/ember/ember.yaml)")
	flags.String("db", def.DB, "Path to SQLite database file (overrides EMBER_DB env var)")
	flags.String("log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", def.LogFormat, "Log format (console or json)")
	flags.Int("workers", def.Workers, "Concurrent workers for audit runs")

	bindFlag(config.KeyDB, "db")
	bindFlag(config.KeyLogLevel, "log-level")
	bindFlag(config.KeyLogFormat, "log-format")
	bindFlag(config.KeyWorkers, "workers")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(key, name string) {
	if err := settings.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// resolveDBPath returns the database path using --db / EMBER_DB / config
// file (highest priority), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
