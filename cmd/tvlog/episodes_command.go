package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tvlog/internal/api"
	"tvlog/internal/filter"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var seasons []int
	var status string
	var favorites bool

	cmd := &cobra.Command{
		Use:   "episodes <show>",
		Short: "List episodes of a show, sorted by season and episode",
		Long: `List episodes of a show.

The Pos column is the episode's position in the sheet; pass it to 'tvlog mark'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := filter.ParseStatus(status)
			if err != nil {
				return err
			}
			criteria := filter.Criteria{Seasons: seasons, Status: st, FavoritesOnly: favorites}
			name := strings.Join(args, " ")
			return ctx.withService(cmd, func(svc *api.Service) error {
				view, err := svc.Episodes(cmd.Context(), name, criteria)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, view)
				}
				out := cmd.OutOrStdout()
				if len(view.Episodes) == 0 {
					fmt.Fprintf(out, "No episodes of %s match\n", view.Show)
					return nil
				}
				fmt.Fprintf(out, "%s: %d of %d episodes\n", view.Show, len(view.Episodes), view.Total)
				fmt.Fprintln(out, renderEpisodes(out, view.Episodes))
				return nil
			})
		},
	}

	cmd.Flags().IntSliceVarP(&seasons, "season", "s", nil, "Only show these seasons (repeatable)")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status: all, watched, unwatched, in_progress")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only show favorites")
	return cmd
}

func renderEpisodes(out io.Writer, episodes []api.EpisodeRow) string {
	rows := make([][]string, 0, len(episodes))
	for _, ep := range episodes {
		fav := ""
		if ep.Favorite {
			fav = "★"
		}
		rows = append(rows, []string{
			strconv.Itoa(ep.Position),
			ep.Season,
			ep.Episode,
			ep.Title,
			ep.Rating,
			statusLabel(ep.Status),
			ep.PersonalRating,
			fav,
			formatShortDate(ep.WatchDate),
		})
	}
	return renderTable(out,
		[]string{"Pos", "S", "E", "Title", "Rating", "Status", "Mine", "Fav", "Watched On"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
	)
}
