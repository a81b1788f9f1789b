package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lookup <isbn>",
		Short: "Look up a book by ISBN without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx := ctx.requestContext(cmd)
			manager, err := ctx.newManager(reqCtx)
			if err != nil {
				return err
			}
			res := manager.Scan(reqCtx, args[0])
			if !res.Success() {
				return reportFailure(cmd.ErrOrStderr(), res)
			}
			if jsonOut {
				return writeJSON(cmd, newItemView(*res.Item))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderItem(*res.Item))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the item as JSON")
	return cmd
}
