package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfscan/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, settings and remote services",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(ctx.requestContext(cmd), cfg)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))
			if preflight.Failed(results) {
				fmt.Fprintln(out, "Some checks failed")
				return errFailed
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
