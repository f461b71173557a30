package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tvlog/internal/api"
	"tvlog/internal/coerce"
	"tvlog/internal/tracker"
)

func newMarkCommand(ctx *commandContext) *cobra.Command {
	var watched, rating, favorite, date string
	var today bool

	cmd := &cobra.Command{
		Use:   "mark <show> <position>",
		Short: "Update the tracking fields of one episode",
		Long: `Update the tracking fields of one episode.

Only the flags you pass are written. --rating "" clears a personal rating and
--date "" clears a watch date. Positions come from 'tvlog episodes'.`,
		Example: `  tvlog mark "Breaking Bad" 3 --watched yes --today
  tvlog mark Lost 0 --rating 9.5 --favorite yes
  tvlog mark Lost 12 --watched "In Progress"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("position must be a number: %q", args[1])
			}
			if today && cmd.Flags().Changed("date") {
				return errors.New("--today and --date are mutually exclusive")
			}

			var edit tracker.Edit
			flags := cmd.Flags()
			if flags.Changed("watched") {
				edit.Watched = watched
			}
			if flags.Changed("rating") {
				edit.PersonalRating = rating
			}
			if flags.Changed("favorite") {
				edit.Favorite = favorite
			}
			if flags.Changed("date") {
				edit.WatchDate = date
			}
			if today {
				edit.WatchDate = coerce.FormatDate(now())
			}

			return ctx.withService(cmd, func(svc *api.Service) error {
				res, err := svc.Mark(cmd.Context(), api.MarkRequest{Show: args[0], Position: position, Edit: edit})
				if res.Row == 0 && err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if jsonErr := writeJSON(cmd, res); jsonErr != nil {
						return jsonErr
					}
					return err
				}
				renderMark(cmd, res)
				return err
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&watched, "watched", "", `Watched state: yes, no or "In Progress"`)
	flags.StringVar(&rating, "rating", "", "Personal rating from 0 to 10")
	flags.StringVar(&favorite, "favorite", "", "Favorite: yes or no")
	flags.StringVar(&date, "date", "", "Watch date (MM-DD-YYYY, YYYY-MM-DD or MM/DD/YYYY)")
	flags.BoolVar(&today, "today", false, "Set the watch date to today")
	return cmd
}

func renderMark(cmd *cobra.Command, res api.MarkResult) {
	out := cmd.OutOrStdout()
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Updated %s position %d (row %d): %s\n", res.Show, res.Position, res.Row, joinFields(res.Applied))
	} else {
		fmt.Fprintf(out, "Nothing written to %s position %d (row %d)\n", res.Show, res.Position, res.Row)
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped, column missing from sheet: %s\n", joinFields(res.Skipped))
	}
}

func joinFields(fields []tracker.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Column()
	}
	return strings.Join(names, ", ")
}
