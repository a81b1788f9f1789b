package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shelfscan/internal/logging"
	"shelfscan/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the Notion token, database and property mapping",
	}
	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))
	settingsCmd.AddCommand(newSettingsDeleteCommand(ctx))
	settingsCmd.AddCommand(newSettingsValidateCommand(ctx))
	return settingsCmd
}

func loadSettings(ctx *commandContext) (*settings.Store, settings.Settings, bool, error) {
	store, err := ctx.settingsStore()
	if err != nil {
		return nil, settings.Settings{}, false, err
	}
	st, err := store.Load()
	if err != nil {
		return nil, settings.Settings{}, false, err
	}
	if st == nil {
		return store, settings.Settings{}, false, nil
	}
	return store, *st, true, nil
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved settings with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, st, found, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "No settings saved at %s\n", store.Path())
				return nil
			}
			m := st.Mapping
			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"path":        store.Path(),
					"token":       logging.MaskSecret(st.Token),
					"database_id": st.DatabaseID,
					"property_mapping": map[string]string{
						"title":     m.Title,
						"barcode":   m.BarcodeField(),
						"author":    m.Author,
						"publisher": m.Publisher,
						"maker":     m.Maker,
						"price":     m.Price,
						"image_url": m.ImageURL,
					},
				})
			}
			fmt.Fprintln(out, renderKeyValues([][2]string{
				{"Path", store.Path()},
				{"Token", logging.MaskSecret(st.Token)},
				{"Database ID", st.DatabaseID},
				{"Title column", m.Title},
				{"Barcode column", m.BarcodeField()},
				{"Author column", m.Author},
				{"Publisher column", m.Publisher},
				{"Maker column", m.Maker},
				{"Price column", m.Price},
				{"Image column", m.ImageURL},
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print settings as JSON")
	return cmd
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	var values struct {
		token, databaseID                        string
		title, barcode, author, publisher, maker string
		price, imageURL                          string
	}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update individual settings; unspecified fields are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, st, _, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			assign := func(name string, dst *string, value string) {
				if flags.Changed(name) {
					*dst = value
				}
			}
			assign("token", &st.Token, values.token)
			assign("database-id", &st.DatabaseID, values.databaseID)
			assign("title", &st.Mapping.Title, values.title)
			assign("author", &st.Mapping.Author, values.author)
			assign("publisher", &st.Mapping.Publisher, values.publisher)
			assign("maker", &st.Mapping.Maker, values.maker)
			assign("price", &st.Mapping.Price, values.price)
			assign("image-url", &st.Mapping.ImageURL, values.imageURL)
			if flags.Changed("barcode") {
				st.Mapping.Barcode = values.barcode
				st.Mapping.ISBN = ""
			}

			if err := store.Save(st); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings saved to %s\n", store.Path())
			if check := store.Validate(st.Sanitized()); !check.IsValid {
				fmt.Fprintln(out, "Settings are incomplete:")
				for _, problem := range check.Errors {
					fmt.Fprintf(out, "  - %s\n", problem)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&values.token, "token", "", "Notion integration token")
	flags.StringVar(&values.databaseID, "database-id", "", "Destination database id (32 hex characters or UUID)")
	flags.StringVar(&values.title, "title", "", "Column receiving the title")
	flags.StringVar(&values.barcode, "barcode", "", "Column receiving the barcode")
	flags.StringVar(&values.author, "author", "", "Column receiving the author")
	flags.StringVar(&values.publisher, "publisher", "", "Column receiving the publisher")
	flags.StringVar(&values.maker, "maker", "", "Column receiving the product maker")
	flags.StringVar(&values.price, "price", "", "Column receiving the price")
	flags.StringVar(&values.imageURL, "image-url", "", "Column receiving the cover image")
	return cmd
}

func newSettingsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			if err := store.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings deleted")
			return nil
		},
	}
}

func newSettingsValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, st, found, err := loadSettings(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "No settings saved at %s\n", store.Path())
				return errFailed
			}
			check := store.Validate(st)
			if check.IsValid {
				fmt.Fprintln(out, "Settings valid")
				return nil
			}
			for _, problem := range check.Errors {
				fmt.Fprintf(out, "  - %s\n", problem)
			}
			return errors.Join(errFailed, fmt.Errorf("%d settings problem(s)", len(check.Errors)))
		},
	}
}
