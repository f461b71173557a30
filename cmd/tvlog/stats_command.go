package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tvlog/internal/api"
)

const histogramWidth = 30

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Viewing calendar, favorites and top rated episodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service) error {
				view, err := svc.Stats(cmd.Context(), top)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, view)
				}
				printWarnings(cmd.ErrOrStderr(), view.Warnings)
				renderStats(cmd, view)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of top rated episodes to list (0 for all)")
	return cmd
}

func renderStats(cmd *cobra.Command, view api.StatsView) {
	out := cmd.OutOrStdout()
	o := view.Overview
	fmt.Fprintf(out, "Shows: %d  Episodes: %d  Seasons: %d\n", o.Shows, o.Episodes, o.Seasons)
	fmt.Fprintf(out, "Watched: %d (%.1f%%)  In progress: %d  Favorites: %d\n", o.Watched, o.Percent, o.InProgress, o.Favorites)
	if view.Dated == 0 {
		fmt.Fprintln(out, "No watch dates recorded yet")
	} else {
		fmt.Fprintf(out, "Dated episodes: %d, first %s, last %s\n",
			view.Dated, formatShortDate(view.FirstWatch), formatWatchDate(view.LastWatch))
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(out, []string{"Weekday", "Episodes", ""}, histogramRows(view.Weekdays),
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
		fmt.Fprintln(out, renderTable(out, []string{"Month", "Episodes", ""}, histogramRows(view.Months),
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
	}

	if len(view.TopRated) > 0 {
		rows := make([][]string, 0, len(view.TopRated))
		for i, ep := range view.TopRated {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				ep.Show,
				ep.Season,
				ep.Episode,
				ep.Title,
				strconv.FormatFloat(ep.Rating, 'f', -1, 64),
			})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(out, []string{"#", "Show", "S", "E", "Title", "Rating"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignRight}))
	}
}

// histogramRows scales bars so the largest bucket is histogramWidth wide.
func histogramRows(buckets []api.Bucket) [][]string {
	peak := 0
	for _, b := range buckets {
		if b.Count > peak {
			peak = b.Count
		}
	}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		width := 0
		if peak > 0 {
			width = b.Count * histogramWidth / peak
		}
		if b.Count > 0 && width == 0 {
			width = 1
		}
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count), strings.Repeat("█", width)})
	}
	return rows
}
