package notion

import "strings"

// Page is a created or queried database page.
type Page struct {
	ID          string                   `json:"id"`
	URL         string                   `json:"url,omitempty"`
	CreatedTime string                   `json:"created_time,omitempty"`
	Properties  map[string]PropertyValue `json:"properties,omitempty"`
}

// Title returns the plain text of the page's title property.
func (p Page) Title() string {
	for _, v := range p.Properties {
		if v.Type == "title" {
			return v.PlainText()
		}
	}
	return ""
}

// QueryResult is one page of a database query.
type QueryResult struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// PropertySchema describes one database column.
type PropertySchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DataSourceRef points from a database to one of its data sources.
type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Database is the subset of the database object the gateway reads.
type Database struct {
	ID          string                    `json:"id"`
	Title       []RichText                `json:"title,omitempty"`
	DataSources []DataSourceRef           `json:"data_sources,omitempty"`
	Properties  map[string]PropertySchema `json:"properties,omitempty"`
}

// Name returns the database title as plain text.
func (d Database) Name() string {
	return plainText(d.Title)
}

// DataSource holds the property schema for newer API versions.
type DataSource struct {
	ID         string                    `json:"id"`
	Properties map[string]PropertySchema `json:"properties"`
}

// User is the bot user a token belongs to.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DatabaseRef is a database the integration can see.
type DatabaseRef struct {
	ID    string
	Title string
}

type searchResult struct {
	Object string     `json:"object"`
	ID     string     `json:"id"`
	Title  []RichText `json:"title"`
	Parent struct {
		Type       string `json:"type"`
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	HasMore bool           `json:"has_more"`
}

func plainText(segments []RichText) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		switch {
		case s.PlainText != "":
			parts = append(parts, s.PlainText)
		case s.Text != nil:
			parts = append(parts, s.Text.Content)
		}
	}
	return strings.Join(parts, "")
}

func schemaTypes(props map[string]PropertySchema) map[string]string {
	out := make(map[string]string, len(props))
	for name, p := range props {
		out[name] = p.Type
	}
	return out
}
