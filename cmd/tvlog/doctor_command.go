package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tvlog/internal/api"
	"tvlog/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, directories and workbook access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			book, openErr := api.OpenWorkbook(cmd.Context(), cfg, logger)
			var pinger preflight.Pinger
			if openErr == nil {
				defer book.Close()
				pinger = book
			}
			results := preflight.RunAll(cmd.Context(), cfg, pinger, openErr)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, r := range results {
					mark := "ok"
					if !r.Passed {
						mark = "FAIL"
					}
					fmt.Fprintf(out, "[%4s] %-20s %s\n", mark, r.Name, r.Detail)
				}
			}
			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
