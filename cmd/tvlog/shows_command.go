package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tvlog/internal/api"
	"tvlog/internal/catalog"
	"tvlog/internal/stats"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shows",
		Short: "List every show with progress and ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service) error {
				view, err := svc.Shows(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, view)
				}
				printWarnings(cmd.ErrOrStderr(), view.Warnings)
				renderShows(cmd, view)
				return nil
			})
		},
	}
}

func renderShows(cmd *cobra.Command, view api.ShowsView) {
	out := cmd.OutOrStdout()
	if len(view.Shows) == 0 {
		fmt.Fprintln(out, "No shows found. Add a sheet with a Show Name column or run 'tvlog import'.")
		return
	}
	o := view.Overview
	fmt.Fprintf(out, "%s shows, %s episodes across %s seasons\n",
		humanize.Comma(int64(o.Shows)), humanize.Comma(int64(o.Episodes)), humanize.Comma(int64(o.Seasons)))
	fmt.Fprintf(out, "Watched %d (%.1f%%), in progress %d, favorites %d\n\n", o.Watched, o.Percent, o.InProgress, o.Favorites)

	rows := make([][]string, 0, len(view.Shows))
	for _, s := range view.Shows {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Metadata.TotalEpisodes),
			formatOptionalInt(s.Metadata.Seasons, ""),
			formatOptionalFloat(s.Metadata.AverageRating),
			formatOptionalInt(s.Metadata.LongestEpisode, " min"),
			formatProgress(s.Progress),
			formatWatchDate(s.LastWatched),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Show", "Episodes", "Seasons", "Avg Rating", "Longest", "Watched", "Last Watched"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show details, season rollups and the first episodes of a show",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withService(cmd, func(svc *api.Service) error {
				view, err := svc.Show(cmd.Context(), name, preview)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, view)
				}
				renderShow(cmd, view)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&preview, "preview", "n", api.DefaultPreviewSize, "Number of episodes to preview")
	return cmd
}

func renderShow(cmd *cobra.Command, view api.ShowView) {
	out := cmd.OutOrStdout()
	m := view.Metadata
	fmt.Fprintln(out, view.Name)
	fmt.Fprintln(out, strings.Repeat("=", len(view.Name)))
	fmt.Fprintf(out, "Episodes:        %d\n", m.TotalEpisodes)
	fmt.Fprintf(out, "Seasons:         %s\n", formatOptionalInt(m.Seasons, ""))
	fmt.Fprintf(out, "Average rating:  %s\n", formatOptionalFloat(m.AverageRating))
	fmt.Fprintf(out, "Longest episode: %s\n", formatOptionalInt(m.LongestEpisode, " min"))
	fmt.Fprintf(out, "Watched:         %s, %d in progress\n", formatProgress(view.Progress), view.Progress.InProgress)
	fmt.Fprintf(out, "Last watched:    %s\n", formatWatchDate(view.LastWatched))

	if len(view.SeasonRatings) > 0 || len(view.SeasonRuntimes) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(out,
			[]string{"Season", "Avg Rating", "Rated", "Avg Runtime"},
			seasonRows(view.SeasonRatings, view.SeasonRuntimes),
			[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
		))
	}

	if len(view.Preview) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderEpisodes(out, view.Preview))
	}
}

// seasonRows merges the rating and runtime rollups by season number.
func seasonRows(ratings, runtimes []stats.SeasonMean) [][]string {
	type row struct {
		rating, rated, runtime string
	}
	bySeason := map[int]*row{}
	var order []int
	get := func(season int) *row {
		r, ok := bySeason[season]
		if !ok {
			r = &row{rating: "-", rated: "0", runtime: "-"}
			bySeason[season] = r
			order = append(order, season)
		}
		return r
	}
	for _, m := range ratings {
		r := get(m.Season)
		r.rating = strconv.FormatFloat(m.Mean, 'f', 2, 64)
		r.rated = strconv.Itoa(m.Count)
	}
	for _, m := range runtimes {
		get(m.Season).runtime = strconv.FormatFloat(m.Mean, 'f', 1, 64) + " min"
	}
	sort.Ints(order)
	out := make([][]string, 0, len(order))
	for _, season := range order {
		r := bySeason[season]
		out = append(out, []string{strconv.Itoa(season), r.rating, r.rated, r.runtime})
	}
	return out
}

func statusLabel(s catalog.WatchStatus) string {
	return catalog.DisplayStatus(s)
}
