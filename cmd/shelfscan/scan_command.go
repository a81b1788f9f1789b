package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/barcode"
)

// newScanCommand reads frames from stdin, one per line. Each line may carry
// several codes separated by commas or whitespace, as a barcode wedge or
// camera bridge reports them.
func newScanCommand(ctx *commandContext) *cobra.Command {
	var save bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Read barcodes from stdin and look them up",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx := ctx.requestContext(cmd)
			manager, err := ctx.newManager(reqCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			interactive := isTerminal(cmd.InOrStdin())
			manager.OpenScanner()
			defer manager.CloseScanner()

			prompt := func() {
				if interactive {
					fmt.Fprint(out, "scan> ")
				}
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			prompt()
			for scanner.Scan() {
				values := splitFrame(scanner.Text())
				decision, res := manager.HandleFrame(reqCtx, values)
				switch decision.Outcome {
				case barcode.Continue:
					fmt.Fprintf(out, "Not an ISBN: %s\n", decision.Code)
				case barcode.Accept:
					if res == nil {
						break
					}
					if !res.Success() {
						_ = reportFailure(out, *res)
						manager.Retry()
						break
					}
					if jsonOut {
						if err := writeJSON(cmd, newItemView(*res.Item)); err != nil {
							return err
						}
					} else {
						fmt.Fprintln(out, renderItem(*res.Item))
					}
					if save {
						saved := manager.Save(reqCtx, *res.Item)
						if saved.Success() {
							fmt.Fprintf(out, "Saved to Notion: %s\n", pageLabel(saved.PageID, saved.PageURL))
						} else {
							_ = reportFailure(out, saved)
						}
					}
					manager.Rescan()
				}
				prompt()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if interactive {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save each resolved book to Notion")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print resolved items as JSON")
	return cmd
}

func splitFrame(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
}

func pageLabel(id, url string) string {
	if url != "" {
		return url
	}
	return id
}
