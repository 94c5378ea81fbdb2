package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/config"
	"github.com/AI2HU/gdc/internal/db"
	"github.com/AI2HU/gdc/internal/logger"
	"github.com/AI2HU/gdc/internal/services"
	"github.com/AI2HU/gdc/internal/views"
)

var (
	cfgFile  string
	envFile  string
	logLevel string

	cfg              *config.Config
	episodeCatalog   *catalog.Catalog
	store            db.Store
	dashboardService *services.DashboardService
	episodeService   *services.EpisodeService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gdc",
	Short: "Gamer Didik Channel showcase backend",
	Long: `gdc serves the data behind the Gamer Didik Channel showcase site:
the episode catalog, the persisted per-episode view counter and the
deterministic analytics dashboard.

Run the REST API for the web front end, print the dashboard in the
terminal, or export dashboard snapshots on a schedule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}

		// init writes the config and needs nothing else
		if cmd.Name() == "init" {
			return nil
		}

		if cfgFile == "" {
			cfgFile = config.GetConfigPath()
		}

		var err error
		cfg, err = config.LoadOrDefault(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.ApplyEnv()

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		parsed, err := logger.ParseLevel(level)
		if err != nil {
			return err
		}
		logger.Init(parsed, os.Stderr)

		episodeCatalog, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		period := analytics.Period{Year: cfg.Analytics.Year, Month: time.Month(cfg.Analytics.Month)}
		dashboardService = services.NewDashboardService(analytics.New(episodeCatalog, period))
		buildEpisodeService()

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Disconnect(context.Background())
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gdc/config.yaml, or $GDC_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warning, error (overrides config)")

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadEnvFile loads a dotenv file; a missing file is not an error
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// connectStore opens the configured counter store for commands that read or write views
func connectStore(ctx context.Context) error {
	if store != nil {
		return nil
	}

	storeConfig := cfg.StoreConfig()
	s, err := db.Open(ctx, &storeConfig)
	if err != nil {
		return err
	}
	if err := s.Ping(ctx); err != nil {
		s.Disconnect(ctx)
		return fmt.Errorf("counter store ping failed: %w", err)
	}

	store = s
	logger.Debug("Connected to %s counter store", store.Name())
	buildEpisodeService()
	return nil
}

// buildEpisodeService wires the counter to the current store, nil until connectStore runs
func buildEpisodeService() {
	var counterStore views.Store
	if store != nil {
		counterStore = store
	}
	episodeService = services.NewEpisodeService(episodeCatalog, views.NewCounter(counterStore, cfg.Site.Namespace))
}
