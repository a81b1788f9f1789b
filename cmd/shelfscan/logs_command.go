package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shelfscan/internal/logging"
	"shelfscan/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var grep string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the shelfscan log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logging.FilePath(cfg)
			if path == "" {
				return fmt.Errorf("no log directory configured")
			}

			opts := logs.Options{Lines: lines, Follow: follow}
			if needle := strings.TrimSpace(grep); needle != "" {
				opts.Filter = func(line string) bool { return strings.Contains(line, needle) }
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return logs.Tail(runCtx, path, opts, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&grep, "grep", "", "Only show lines containing this text")
	return cmd
}
