package settings

import (
	"log/slog"
	"strings"

	"shelfscan/internal/logging"
	"shelfscan/internal/notion"
)

// Mapping maps logical item fields to Notion column names. Empty entries are
// not written.
type Mapping struct {
	Title     string `toml:"title" validate:"required"`
	Barcode   string `toml:"barcode,omitempty" validate:"required_without=ISBN"`
	ISBN      string `toml:"isbn,omitempty"`
	Author    string `toml:"author,omitempty"`
	Publisher string `toml:"publisher,omitempty"`
	Maker     string `toml:"maker,omitempty"`
	Price     string `toml:"price,omitempty"`
	ImageURL  string `toml:"image_url,omitempty"`
}

// BarcodeField returns the column that receives the barcode. The isbn key is
// accepted as an alias.
func (m Mapping) BarcodeField() string {
	if b := strings.TrimSpace(m.Barcode); b != "" {
		return b
	}
	return strings.TrimSpace(m.ISBN)
}

// Settings is the user-provided Notion destination and field mapping.
type Settings struct {
	Token      string  `toml:"notion_token" validate:"required"`
	DatabaseID string  `toml:"database_id" validate:"required,notionid"`
	Mapping    Mapping `toml:"property_mapping"`
}

// Sanitized returns a copy with whitespace trimmed and the database id
// normalized.
func (s Settings) Sanitized() Settings {
	out := s
	out.Token = strings.TrimSpace(s.Token)
	out.DatabaseID = strings.TrimSpace(s.DatabaseID)
	if notion.ValidID(out.DatabaseID) {
		out.DatabaseID = notion.NormalizeID(out.DatabaseID)
	}
	m := &out.Mapping
	for _, f := range []*string{&m.Title, &m.Barcode, &m.ISBN, &m.Author, &m.Publisher, &m.Maker, &m.Price, &m.ImageURL} {
		*f = strings.TrimSpace(*f)
	}
	return out
}

// LogValue keeps the token out of logs.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		logging.Secret("token", s.Token),
		logging.String("database_id", s.DatabaseID),
		logging.String("title", s.Mapping.Title),
		logging.String("barcode", s.Mapping.BarcodeField()),
	)
}
