package testsupport

import (
	"testing"
	"time"

	"shelfscan/internal/item"
	"shelfscan/internal/settings"
)

// NewBook builds a valid book item with a price and cover.
func NewBook(t testing.TB, barcode, title string) item.ScannedItem {
	t.Helper()

	price := 1200.0
	it, err := item.New(item.Fields{
		Barcode:   barcode,
		Title:     title,
		Details:   item.Book{Author: "Test Author", Publisher: "Test Press"},
		Price:     &price,
		ImageURL:  "https://cover.example/" + barcode + ".jpg",
		ScannedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

// ValidSettings returns settings that pass validation.
func ValidSettings() settings.Settings {
	return settings.Settings{
		Token:      "secret_0123456789abcdef",
		DatabaseID: "0123456789abcdef0123456789abcdef",
		Mapping: settings.Mapping{
			Title:    "Title",
			Barcode:  "ISBN",
			Author:   "Author",
			Price:    "Price",
			ImageURL: "Cover",
		},
	}
}

// WriteSettings saves s to path through the settings store.
func WriteSettings(t testing.TB, path string, s settings.Settings) {
	t.Helper()

	store, err := settings.NewStore(path)
	if err != nil {
		t.Fatalf("settings.NewStore: %v", err)
	}
	if err := store.Save(s); err != nil {
		t.Fatalf("settings save: %v", err)
	}
}
