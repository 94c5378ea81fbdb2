package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/db/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage counter store migrations",
	Long:  `Run the embedded golang-migrate migrations of the sqlite counter store.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run all pending migrations",
	Long:  `Apply all pending database migrations.`,
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	Long:  `Revert every applied migration. Stored view counters are dropped.`,
	RunE:  runMigrateDown,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	RunE:  runMigrateVersion,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

// openSQLite opens the configured sqlite counter store database
func openSQLite(cmd *cobra.Command) (*sql.DB, error) {
	if provider := strings.ToLower(cfg.CounterStore.Provider); provider != "sqlite" {
		return nil, fmt.Errorf("migrations apply to the sqlite counter store, configured provider is %q", cfg.CounterStore.Provider)
	}
	if cfg.CounterStore.URI == "" {
		return nil, fmt.Errorf("counter_store.uri must name the sqlite database file")
	}
	return sqlite.Open(cmd.Context(), cfg.CounterStore.URI)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "🔄 Running database migrations...")

	db, err := openSQLite(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := sqlite.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Migrations completed successfully! Schema version: %s\n", FormatCount(int(version)))
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	db, err := openSQLite(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.RollbackMigrations(db); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✅ All migrations reverted")
	return nil
}

func runMigrateVersion(cmd *cobra.Command, args []string) error {
	db, err := openSQLite(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := sqlite.MigrationVersion(db)
	if err != nil {
		return err
	}

	status := FormatSuccess("clean")
	if dirty {
		status = FormatWarning("dirty")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %s (%s)\n", FormatCount(int(version)), status)
	return nil
}
