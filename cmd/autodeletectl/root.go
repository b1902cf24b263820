package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autodelete-after-play/internal/database"
	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/settings"
)

const defaultDataDir = "/data"

// envPrefix namespaces the environment variables read through viper,
// e.g. AUTODELETECTL_DB.
const envPrefix = "AUTODELETECTL"

type rootOptions struct {
	configFile string
	dbPath     string
}

func defaultDBPath() string {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return filepath.Join(dataDir, "autodelete.db")
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cfg := viper.New()

	rootCmd := &cobra.Command{
		Use:           "autodeletectl",
		Short:         "Inspect and change the auto-delete settings",
		Long:          "autodeletectl reads and updates the settings database used by autodeleted, and previews what the deletion policy would decide for a play.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !logging.IsDebugEnabled() {
				logging.SetLevel(logging.LevelWarn)
			}
			return opts.resolve(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional config file (toml, yaml or json) with a db key")
	rootCmd.PersistentFlags().String("db", defaultDBPath(), "path to the settings database")
	_ = cfg.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newSettingsCmd(opts),
		newEvaluateCmd(opts),
	)

	return rootCmd
}

// resolve applies the precedence flag, environment, config file, default.
func (o *rootOptions) resolve(cfg *viper.Viper) error {
	cfg.SetEnvPrefix(envPrefix)
	cfg.AutomaticEnv()

	if o.configFile != "" {
		cfg.SetConfigFile(o.configFile)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", o.configFile, err)
		}
	}

	o.dbPath = cfg.GetString("db")
	if o.dbPath == "" {
		return fmt.Errorf("no database path configured")
	}
	return nil
}

// openStore opens the database and loads the settings. The caller closes
// the returned database.
func openStore(ctx context.Context, opts *rootOptions) (*database.Database, *settings.Store, error) {
	if _, err := os.Stat(filepath.Dir(opts.dbPath)); err != nil {
		return nil, nil, fmt.Errorf("database directory: %w", err)
	}

	db, err := database.New(ctx, opts.dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	store := settings.NewStore(db, settings.Defaults())
	if err := store.Load(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store, nil
}
