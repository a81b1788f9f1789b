package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfscan/internal/item"
)

type itemOverrides struct {
	title     string
	author    string
	publisher string
	maker     string
	price     float64
	imageURL  string
	product   bool
}

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var o itemOverrides

	cmd := &cobra.Command{
		Use:   "save <barcode>",
		Short: "Look up a barcode, apply edits, and save it to Notion",
		Long: "Look up a barcode and save it to Notion.\n\n" +
			"Flags replace the looked-up values before saving. With --product the\n" +
			"lookup is skipped and a product item is built from the flags alone.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx := ctx.requestContext(cmd)
			manager, err := ctx.newManager(reqCtx)
			if err != nil {
				return err
			}

			var fields item.Fields
			if o.product {
				fields = item.Fields{Barcode: args[0], Details: item.Product{}}
			} else {
				res := manager.Scan(reqCtx, args[0])
				if !res.Success() {
					return reportFailure(cmd.ErrOrStderr(), res)
				}
				fields = res.Item.Fields()
			}

			edited, err := applyOverrides(cmd, fields, o)
			if err != nil {
				return err
			}
			manager.SetCurrentItem(edited)

			saved := manager.Save(reqCtx, edited)
			if !saved.Success() {
				return reportFailure(cmd.ErrOrStderr(), saved)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderItem(edited))
			fmt.Fprintf(out, "Saved to Notion: %s\n", pageLabel(saved.PageID, saved.PageURL))
			return nil
		},
	}

	cmd.Flags().StringVar(&o.title, "title", "", "Override the title")
	cmd.Flags().StringVar(&o.author, "author", "", "Override the author (books)")
	cmd.Flags().StringVar(&o.publisher, "publisher", "", "Override the publisher (books)")
	cmd.Flags().StringVar(&o.maker, "maker", "", "Set the maker (products)")
	cmd.Flags().Float64Var(&o.price, "price", 0, "Override the price")
	cmd.Flags().StringVar(&o.imageURL, "image-url", "", "Override the cover or product image URL")
	cmd.Flags().BoolVar(&o.product, "product", false, "Skip lookup and save a product item")
	return cmd
}

func applyOverrides(cmd *cobra.Command, f item.Fields, o itemOverrides) (item.ScannedItem, error) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title = o.title
	}
	switch d := f.Details.(type) {
	case item.Book:
		if flags.Changed("author") {
			d.Author = o.author
		}
		if flags.Changed("publisher") {
			d.Publisher = o.publisher
		}
		f.Details = d
	case item.Product:
		if flags.Changed("maker") {
			d.Maker = o.maker
		}
		f.Details = d
	}
	if flags.Changed("price") {
		price := o.price
		f.Price = &price
	}
	if flags.Changed("image-url") {
		f.ImageURL = o.imageURL
	}
	return item.New(f)
}
