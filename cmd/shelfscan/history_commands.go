package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shelfscan/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage recent saves",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	historyCmd.AddCommand(newHistoryResendCommand(ctx))
	return historyCmd
}

type historyView struct {
	ID           string `json:"id"`
	Barcode      string `json:"barcode"`
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	ScannedAt    string `json:"scanned_at"`
	SentAt       string `json:"sent_at,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	PageID       string `json:"page_id,omitempty"`
}

func newHistoryView(e history.Entry) historyView {
	view := historyView{
		ID:           e.ID,
		Barcode:      e.Barcode,
		Title:        e.Title,
		Kind:         string(e.Kind),
		Status:       string(e.Status),
		ScannedAt:    e.ScannedAt.Local().Format(time.DateTime),
		ErrorMessage: e.ErrorMessage,
		PageID:       e.PageID,
	}
	if e.SentAt != nil {
		view.SentAt = e.SentAt.Local().Format(time.DateTime)
	}
	return view
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent save attempts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]historyView, 0, len(entries))
			for _, e := range entries {
				views = append(views, newHistoryView(e))
			}
			if jsonOut {
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "History is empty")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				detail := v.SentAt
				if v.ErrorMessage != "" {
					detail = v.ErrorMessage
				}
				rows = append(rows, []string{v.ID, v.Status, v.Barcode, v.Title, v.ScannedAt, detail})
			}
			headers := []string{"ID", "Status", "Barcode", "Title", "Scanned", "Sent / Error"}
			fmt.Fprintln(out, renderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print entries as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}
}

func newHistoryResendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resend <id>",
		Short: "Fetch a history entry's barcode again and resave it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx := ctx.requestContext(cmd)
			manager, err := ctx.newManager(reqCtx)
			if err != nil {
				return err
			}
			res := manager.Resend(reqCtx, args[0])
			if !res.Success() {
				return reportFailure(cmd.ErrOrStderr(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resent %s: %s\n", res.Item.Title(), pageLabel(res.PageID, res.PageURL))
			return nil
		},
	}
}
