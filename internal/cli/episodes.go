package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/models"
)

var episodesState string

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Browse the episode catalog",
}

var episodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List episodes in catalog order",
	RunE:  runEpisodesList,
}

var episodesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one episode",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisodesShow,
}

func init() {
	episodesCmd.AddCommand(episodesListCmd)
	episodesCmd.AddCommand(episodesShowCmd)

	episodesListCmd.Flags().StringVarP(&episodesState, "state", "s", "", "Filter by state: playable or coming_soon")
}

func runEpisodesList(cmd *cobra.Command, args []string) error {
	var state *models.DisplayState
	if episodesState != "" {
		parsed, err := models.ParseDisplayState(episodesState)
		if err != nil {
			return err
		}
		state = &parsed
	}

	out := cmd.OutOrStdout()
	banner(out, "📺 Episodes")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sID\tEP\tTITLE\tDURATION\tRELEASED\tSTATE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s──\t──\t─────\t────────\t────────\t─────%s\n", DimStyle, Reset)

	for _, ep := range episodeService.List(cmd.Context(), state) {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			ep.ID,
			ep.EpisodeNumber,
			FormatTitle(ep.Title),
			analytics.FormatDuration(ep.Duration),
			FormatMeta(ep.ReleaseDate),
			FormatState(ep.DisplayState()),
		)
	}
	return w.Flush()
}

func runEpisodesShow(cmd *cobra.Command, args []string) error {
	id, err := parseEpisodeID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ep, err := episodeService.Get(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	banner(out, fmt.Sprintf("🎮 S%dE%02d %s", ep.Season, ep.EpisodeNumber, ep.Title))
	if ep.TitleBM != "" {
		fmt.Fprintf(out, "%s\n\n", FormatMeta(ep.TitleBM))
	}
	fmt.Fprintf(out, "%s\n", ep.Description)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", FormatLabel("State:"), FormatState(ep.DisplayState()))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Topic:", ep.Topic))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Duration:", analytics.FormatDuration(ep.Duration)))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Released:", ep.ReleaseDate))
	fmt.Fprintf(out, "%s\n", FormatLabelValue("Views:", analytics.FormatViews(ep.Views)))
	if len(ep.Tags) > 0 {
		fmt.Fprintf(out, "%s\n", FormatLabelValue("Tags:", strings.Join(ep.Tags, ", ")))
	}
	if ep.ThumbnailURL != "" {
		fmt.Fprintf(out, "%s\n", FormatLabelValue("Thumbnail:", ep.ThumbnailURL))
	}

	printNeighbour(ctx, out, "Previous:", id, episodeService.Previous)
	printNeighbour(ctx, out, "Next:", id, episodeService.Next)
	return nil
}

func printNeighbour(ctx context.Context, out io.Writer, label string, id int, step func(context.Context, int) (models.EpisodeResponse, error)) {
	ep, err := step(ctx, id)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "%s\n", FormatLabelValue(label, fmt.Sprintf("#%d %s", ep.ID, ep.Title)))
}

func parseEpisodeID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid episode id: %q", raw)
	}
	return id, nil
}
