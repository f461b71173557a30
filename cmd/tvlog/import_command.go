package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tvlog/internal/api"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import a CSV episode list as a new show (sqlite backend)",
		Long: `Import a CSV episode list as a new show.

The first row is the header. When there is no "Show Name" column one is added
and filled with the sheet name. Missing tracking columns (Watched, Personal
Rating, Favorite, Watch Date) are appended with their defaults so the show can
be marked right away.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.Service) error {
				res, err := svc.Import(cmd.Context(), api.ImportRequest{Path: args[0], Sheet: sheet})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, res)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d episodes into %q\n", res.Rows, res.Sheet)
				if res.AddedShowName {
					fmt.Fprintln(out, "Added a Show Name column from the sheet name")
				}
				if len(res.AddedTracking) > 0 {
					fmt.Fprintf(out, "Added tracking columns: %s\n", strings.Join(res.AddedTracking, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet (show) name; defaults to the file name")
	return cmd
}
