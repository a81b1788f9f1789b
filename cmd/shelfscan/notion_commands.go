package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/notion"
	"shelfscan/internal/services"
	"shelfscan/internal/settings"
)

func newNotionCommand(ctx *commandContext) *cobra.Command {
	notionCmd := &cobra.Command{
		Use:   "notion",
		Short: "Inspect the destination Notion workspace",
	}
	notionCmd.AddCommand(newNotionSchemaCommand(ctx))
	notionCmd.AddCommand(newNotionPreviewCommand(ctx))
	notionCmd.AddCommand(newNotionDatabasesCommand(ctx))
	return notionCmd
}

// notionSession loads the saved settings and a gateway client. A token is
// always required; commands that need a database check for it themselves.
func notionSession(ctx *commandContext) (*notion.Client, settings.Settings, error) {
	_, st, found, err := loadSettings(ctx)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	st = st.Sanitized()
	if !found || st.Token == "" {
		return nil, st, services.Wrap(services.ErrConfigMissing, "settings", "load", "a Notion token is required (run settings set --token)", nil)
	}
	client, err := ctx.notionClient()
	if err != nil {
		return nil, st, err
	}
	return client, st, nil
}

func requireDatabase(st settings.Settings) error {
	if st.DatabaseID == "" {
		return services.Wrap(services.ErrConfigMissing, "settings", "load", "a database id is required (run settings set --database-id)", nil)
	}
	return nil
}

func newNotionSchemaCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the destination database's columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, st, err := notionSession(ctx)
			if err != nil {
				return err
			}
			if err := requireDatabase(st); err != nil {
				return err
			}
			schema, err := client.Schema(ctx.requestContext(cmd), st.Token, st.DatabaseID)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, schema)
			}
			mapped := mappedColumns(st.Mapping)
			names := make([]string, 0, len(schema))
			for name := range schema {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, schema[name], mapped[name]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Column", "Type", "Mapped To"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the schema as JSON")
	return cmd
}

func mappedColumns(m settings.Mapping) map[string]string {
	out := make(map[string]string)
	add := func(column, field string) {
		column = strings.TrimSpace(column)
		if column == "" {
			return
		}
		if existing, ok := out[column]; ok {
			out[column] = existing + ", " + field
			return
		}
		out[column] = field
	}
	add(m.Title, "title")
	add(m.BarcodeField(), "barcode")
	add(m.Author, "author")
	add(m.Publisher, "publisher")
	add(m.Maker, "maker")
	add(m.Price, "price")
	add(m.ImageURL, "image_url")
	return out
}

func newNotionPreviewCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the most recent pages in the destination database",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, st, err := notionSession(ctx)
			if err != nil {
				return err
			}
			if err := requireDatabase(st); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pageSize := cfg.Notion.PreviewPageSize
			if cmd.Flags().Changed("limit") {
				pageSize = limit
			}
			result, err := client.QueryDatabase(ctx.requestContext(cmd), st.Token, st.DatabaseID, pageSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Results) == 0 {
				fmt.Fprintln(out, "No pages found")
				return nil
			}
			rows := make([][]string, 0, len(result.Results))
			for _, page := range result.Results {
				rows = append(rows, []string{page.ID, page.Title(), page.CreatedTime})
			}
			fmt.Fprintln(out, renderTable([]string{"Page", "Title", "Created"}, rows))
			if result.HasMore {
				fmt.Fprintln(out, "More pages available")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of pages to show")
	return cmd
}

func newNotionDatabasesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases shared with the integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, st, err := notionSession(ctx)
			if err != nil {
				return err
			}
			refs, err := client.SearchDatabases(ctx.requestContext(cmd), st.Token)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "No databases are shared with this integration")
				return nil
			}
			current := notion.NormalizeID(st.DatabaseID)
			rows := make([][]string, 0, len(refs))
			for _, ref := range refs {
				marker := ""
				if ref.ID == current {
					marker = "*"
				}
				rows = append(rows, []string{marker, ref.ID, ref.Title})
			}
			fmt.Fprintln(out, renderTable([]string{"", "ID", "Title"}, rows))
			return nil
		},
	}
}
