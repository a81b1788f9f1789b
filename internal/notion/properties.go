package notion

import (
	"math"
	"strings"
)

// Properties is a page property payload keyed by database column name.
type Properties map[string]Property

// Property is the write form of one page property. Exactly one field is set.
type Property struct {
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	URL      string     `json:"url,omitempty"`
	Files    []File     `json:"files,omitempty"`
}

// RichText is a single rich text segment.
type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

type Text struct {
	Content string `json:"content"`
}

// File references an externally hosted file.
type File struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	External *External `json:"external,omitempty"`
}

type External struct {
	URL string `json:"url"`
}

// TitleValue wraps s as a title property.
func TitleValue(s string) Property {
	return Property{Title: []RichText{{Text: &Text{Content: s}}}}
}

// TextValue wraps s as a rich_text property.
func TextValue(s string) Property {
	return Property{RichText: []RichText{{Text: &Text{Content: s}}}}
}

// NumberValue wraps v as a number property.
func NumberValue(v float64) Property {
	return Property{Number: &v}
}

// URLValue wraps u as a url property.
func URLValue(u string) Property {
	return Property{URL: u}
}

// ExternalFileValue wraps u as a files property with one external file.
func ExternalFileValue(name, u string) Property {
	return Property{Files: []File{{Name: name, Type: "external", External: &External{URL: u}}}}
}

// Empty reports whether p would write nothing meaningful.
func (p Property) Empty() bool {
	switch {
	case len(p.Title) > 0:
		return blankSegments(p.Title)
	case len(p.RichText) > 0:
		return blankSegments(p.RichText)
	case p.Number != nil:
		return math.IsNaN(*p.Number) || math.IsInf(*p.Number, 0)
	case p.URL != "":
		return strings.TrimSpace(p.URL) == ""
	case len(p.Files) > 0:
		for _, f := range p.Files {
			if f.External != nil && strings.TrimSpace(f.External.URL) != "" {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func blankSegments(segments []RichText) bool {
	for _, s := range segments {
		if s.Text != nil && strings.TrimSpace(s.Text.Content) != "" {
			return false
		}
	}
	return true
}

// PropertyValue is the read form of a page property as returned by queries.
type PropertyValue struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	URL      *string    `json:"url,omitempty"`
}

// PlainText flattens text-like values for display.
func (v PropertyValue) PlainText() string {
	segments := v.RichText
	if v.Type == "title" {
		segments = v.Title
	}
	var b strings.Builder
	for _, s := range segments {
		switch {
		case s.PlainText != "":
			b.WriteString(s.PlainText)
		case s.Text != nil:
			b.WriteString(s.Text.Content)
		}
	}
	if b.Len() == 0 && v.URL != nil {
		return *v.URL
	}
	return b.String()
}
