package mapping

import (
	"math"
	"strings"

	"shelfscan/internal/item"
	"shelfscan/internal/notion"
	"shelfscan/internal/services"
	"shelfscan/internal/settings"
)

const coverFileName = "cover"

// Build converts it into a Notion property payload using the column names in
// m. Fields without a column name, and values that are blank or non-finite,
// are left out. Book details never populate product columns and vice versa.
func Build(m settings.Mapping, it item.ScannedItem) notion.Properties {
	props := notion.Properties{}

	putText(props, m.Title, it.Title(), notion.TitleValue)
	putText(props, m.BarcodeField(), it.Barcode(), notion.TextValue)

	switch d := it.Details().(type) {
	case item.Book:
		putText(props, m.Author, d.Author, notion.TextValue)
		putText(props, m.Publisher, d.Publisher, notion.TextValue)
	case item.Product:
		putText(props, m.Maker, d.Maker, notion.TextValue)
	}

	if price, ok := it.Price(); ok {
		putNumber(props, m.Price, price)
	}
	putText(props, m.ImageURL, it.ImageURL(), func(u string) notion.Property {
		return notion.ExternalFileValue(coverFileName, u)
	})

	return props
}

func putText(props notion.Properties, column, value string, wrap func(string) notion.Property) {
	column = strings.TrimSpace(column)
	value = strings.TrimSpace(value)
	if column == "" || value == "" {
		return
	}
	props[column] = wrap(value)
}

func putNumber(props notion.Properties, column string, value float64) {
	column = strings.TrimSpace(column)
	if column == "" || math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	props[column] = notion.NumberValue(value)
}

// Require checks that props carries the mapped title and barcode columns.
// The title is checked first.
func Require(m settings.Mapping, props notion.Properties) error {
	if !present(props, m.Title) {
		return &services.MappingError{Field: "title"}
	}
	if !present(props, m.BarcodeField()) {
		return &services.MappingError{Field: "barcode"}
	}
	return nil
}

func present(props notion.Properties, column string) bool {
	column = strings.TrimSpace(column)
	if column == "" {
		return false
	}
	p, ok := props[column]
	return ok && !p.Empty()
}

// Prepare builds the payload and applies Require. Callers must not contact
// Notion when it returns an error.
func Prepare(m settings.Mapping, it item.ScannedItem) (notion.Properties, error) {
	props := Build(m, it)
	if err := Require(m, props); err != nil {
		return nil, err
	}
	return props, nil
}
