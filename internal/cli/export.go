package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/scheduler"
)

var (
	exportDir    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one dashboard snapshot as JSON",
	Long: `Write the dashboard together with the current view figure of every playable
episode to <directory>/dashboard-<id>.json, or to stdout with --stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Export directory (overrides config)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the snapshot to stdout instead of a file")
}

func newScheduler() *scheduler.Scheduler {
	return scheduler.New(dashboardService, episodeService, scheduler.Options{
		Directory: firstNonEmpty(exportDir, cfg.Exports.Directory),
		Cron:      cfg.Exports.Cron,
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := connectStore(ctx); err != nil {
		return err
	}

	sched := newScheduler()
	if exportStdout {
		return scheduler.Write(cmd.OutOrStdout(), sched.Build(ctx))
	}

	path, err := sched.RunOnce(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Dashboard exported to %s\n", FormatSuccess("✅"), FormatValue(path))
	return nil
}
