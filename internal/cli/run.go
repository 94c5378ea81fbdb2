package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/logger"
)

var runImmediately bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Export dashboard snapshots on the configured cron schedule",
	Long:  `Start the export scheduler using exports.cron from the config (default @hourly). Use 'gdc export' for a single snapshot.`,
	RunE:  runScheduler,
}

func init() {
	runCmd.Flags().BoolVar(&runImmediately, "now", false, "Write one snapshot before waiting for the first tick")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := connectStore(ctx); err != nil {
		return err
	}

	sched := newScheduler()

	logger.Info("🚀 Starting gdc export scheduler")
	if runImmediately {
		if _, err := sched.RunOnce(ctx); err != nil {
			return err
		}
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.Info("✅ Scheduler is running, next export at %s. Press Ctrl+C to stop.", sched.NextRun().Format("2006-01-02 15:04:05"))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	<-sigChan

	logger.Info("⏸️  Stopping scheduler...")
	sched.Stop()

	logger.Info("✅ Scheduler stopped after %d exports. Goodbye!", sched.Runs())
	return nil
}
