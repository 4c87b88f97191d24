package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/config"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/observability"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/store"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pikar",
	Short: "Pikar AI - Tiered Workflow Governance",
	Long: `Pikar manages business automation workflows with tier-dependent
governance rules and an orchestration template catalog.

Workflows are validated against their business tier's policy before they
are saved; the catalog seeds parallel, chain, and consensus orchestration
templates per tier.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig is called before any command runs to load configuration.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = os.Getenv("PIKAR_CONFIG")
	}
	if path == "" {
		path = config.DefaultConfigPath(config.DefaultHomeDir())
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger = observability.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return nil
}

// openStore opens the configured database and ensures the schema is current.
// The caller owns closing the returned DB.
func openStore(ctx context.Context) (*store.DB, error) {
	if err := cfg.EnsureHomeDir(); err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default $HOME/.pikar/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug|info|warn|error)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(workflowCmd)
	rootCmd.AddCommand(catalogCmd)
}
