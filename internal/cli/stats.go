package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/analytics"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View the analytics dashboard",
	Long:  `Print the analytics dashboard series as tables. Every figure is deterministic.`,
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Views, unique viewers and watch time per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		printDaily(cmd.OutOrStdout())
		return nil
	},
}

var statsEpisodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Engagement per episode, most viewed first",
	RunE: func(cmd *cobra.Command, args []string) error {
		printEpisodeAnalytics(cmd.OutOrStdout(), statsLimit)
		return nil
	},
}

var statsStatesCmd = &cobra.Command{
	Use:   "states",
	Short: "Viewers per Malaysian state",
	RunE: func(cmd *cobra.Command, args []string) error {
		printStates(cmd.OutOrStdout(), statsLimit)
		return nil
	},
}

var statsTrafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Visitors per traffic source",
	RunE: func(cmd *cobra.Command, args []string) error {
		printTraffic(cmd.OutOrStdout(), statsLimit)
		return nil
	},
}

var statsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Headline figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		printOverview(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	statsCmd.AddCommand(statsDailyCmd)
	statsCmd.AddCommand(statsEpisodesCmd)
	statsCmd.AddCommand(statsStatesCmd)
	statsCmd.AddCommand(statsTrafficCmd)
	statsCmd.AddCommand(statsOverviewCmd)

	statsCmd.PersistentFlags().IntVarP(&statsLimit, "limit", "l", 0, "Limit number of rows (0 for all)")
}

func printDaily(out io.Writer) {
	banner(out, fmt.Sprintf("📅 Daily Views, %s", dashboardService.Period()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sDATE\tVIEWS\tUNIQUE\tWATCH TIME%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s────\t─────\t──────\t──────────%s\n", DimStyle, Reset)

	for _, d := range dashboardService.Daily() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			FormatValue(d.Date),
			FormatCount(d.Views),
			FormatCount(d.UniqueViewers),
			FormatMeta(analytics.FormatWatchTime(d.WatchTimeMinutes)),
		)
	}
	w.Flush()
}

func printEpisodeAnalytics(out io.Writer, limit int) {
	banner(out, "🎬 Episode Performance")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sRANK\tEP\tTITLE\tVIEWS\tWATCH TIME\tAVG WATCHED\tSHARES%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s────\t──\t─────\t─────\t──────────\t───────────\t──────%s\n", DimStyle, Reset)

	for i, e := range dashboardService.Episodes(limit) {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%d%%\t%s\n",
			FormatCount(i+1),
			e.EpisodeNumber,
			FormatValue(e.Title),
			FormatCount(e.Views),
			FormatMeta(analytics.FormatWatchTime(e.WatchTimeMinutes)),
			e.AvgWatchPercent,
			FormatCount(e.Shares),
		)
	}
	w.Flush()
}

func printStates(out io.Writer, limit int) {
	banner(out, "🗺️  Viewers by State")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sSTATE\tCODE\tVIEWERS\tSHARE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s─────\t────\t───────\t─────%s\n", DimStyle, Reset)

	for _, s := range dashboardService.States(limit) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			FormatValue(s.State),
			FormatMeta(s.StateCode),
			FormatCount(s.Viewers),
			FormatPercent(s.Percentage),
		)
	}
	w.Flush()
}

func printTraffic(out io.Writer, limit int) {
	banner(out, "🔗 Traffic Sources")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sSOURCE\tVISITORS\tSHARE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s──────\t────────\t─────%s\n", DimStyle, Reset)

	for _, t := range dashboardService.Traffic(limit) {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			FormatValue(t.Source),
			FormatCount(t.Visitors),
			FormatPercent(t.Percentage),
		)
	}
	w.Flush()
}

func printOverview(out io.Writer) {
	o := dashboardService.Overview()

	banner(out, fmt.Sprintf("📊 %s Overview, %s", cfg.Site.Name, dashboardService.Period()))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Total views:", analytics.FormatNumber(o.TotalViews)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Watch time:", analytics.FormatWatchTime(o.TotalWatchTime)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Shares:", analytics.FormatThousands(o.TotalShares)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Episodes:", fmt.Sprintf("%d", o.TotalEpisodes)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Avg views per episode:", analytics.FormatViews(o.AvgViewsPerEpisode)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Avg watched:", fmt.Sprintf("%d%%", o.AvgWatchPercent)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("States reached:", fmt.Sprintf("%d", o.StatesReached)))
}
