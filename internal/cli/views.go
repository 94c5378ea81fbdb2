package cli

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/views"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Read and record episode views",
	Long: `Read and record the persisted view counter. The figure shown on the site is
the deterministic base of an episode plus the increment kept in the counter store.`,
}

var viewsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show base, increment and total views of an episode",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewsGet,
}

var viewsRecordCmd = &cobra.Command{
	Use:   "record [id]",
	Short: "Record one view of an episode",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewsRecord,
}

var viewsBaseCmd = &cobra.Command{
	Use:   "base [id]",
	Short: "Print the deterministic base views of an episode id",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewsBase,
}

var viewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored counter in the namespace",
	RunE:  runViewsList,
}

func init() {
	viewsCmd.AddCommand(viewsGetCmd)
	viewsCmd.AddCommand(viewsRecordCmd)
	viewsCmd.AddCommand(viewsBaseCmd)
	viewsCmd.AddCommand(viewsListCmd)
}

func runViewsGet(cmd *cobra.Command, args []string) error {
	id, err := parseEpisodeID(args[0])
	if err != nil {
		return err
	}
	if err := connectStore(cmd.Context()); err != nil {
		return err
	}

	snap, err := episodeService.Views(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Key:", views.Key(episodeService.Counter().Namespace(), id)))
	fmt.Fprintf(out, "%s %s\n", FormatLabel("Base:"), FormatCount(snap.Base))
	fmt.Fprintf(out, "%s %s\n", FormatLabel("Increment:"), FormatCount(snap.Increment))
	fmt.Fprintf(out, "%s %s (%s)\n", FormatLabel("Total:"), FormatCount(snap.Total), analytics.FormatViews(snap.Total))
	return nil
}

func runViewsRecord(cmd *cobra.Command, args []string) error {
	id, err := parseEpisodeID(args[0])
	if err != nil {
		return err
	}
	if err := connectStore(cmd.Context()); err != nil {
		return err
	}

	resp, err := episodeService.RecordView(cmd.Context(), id)
	if err != nil {
		return err
	}

	if !resp.Recorded {
		return fmt.Errorf("view of episode %d was not recorded, the %s counter store is unavailable", resp.EpisodeID, store.Name())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Episode %d now has %s views (increment %d)\n",
		FormatSuccess("✅"), resp.EpisodeID, FormatCount(resp.Total), resp.Increment)
	if store.Name() == "memory" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", FormatWarning("⚠️  The memory store does not outlive this process; configure counter_store to persist views."))
	}
	return nil
}

func runViewsBase(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid episode id: %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.BaseViews(id))
	return nil
}

func runViewsList(cmd *cobra.Command, args []string) error {
	if err := connectStore(cmd.Context()); err != nil {
		return err
	}

	recorded, err := episodeService.Counter().Recorded(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recorded) == 0 {
		fmt.Fprintf(out, "%s\n", FormatWarning("No views recorded yet."))
		return nil
	}

	ids := make([]int, 0, len(recorded))
	for id := range recorded {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sEPISODE\tBASE\tINCREMENT\tTOTAL%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s───────\t────\t─────────\t─────%s\n", DimStyle, Reset)
	for _, id := range ids {
		base := views.BaseViews(id)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", id, FormatCount(base), FormatCount(recorded[id]), FormatCount(base+recorded[id]))
	}
	return w.Flush()
}
