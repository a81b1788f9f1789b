package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shelfscan/internal/services"
)

var (
	ErrBarcodeLength = errors.New("barcode must be 8-14 digits")
	ErrBarcodeDigits = errors.New("barcode must contain only digits")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidPrice  = errors.New("price must be zero or greater")
	ErrKindRequired  = errors.New("item type is required")
)

const (
	minBarcodeLen = 8
	maxBarcodeLen = 14
)

// Kind discriminates the two item variants.
type Kind string

const (
	KindBook    Kind = "book"
	KindProduct Kind = "product"
)

// Details is the variant-specific part of a ScannedItem. Only Book and
// Product implement it.
type Details interface {
	Kind() Kind
	sealed()
}

// Book carries bibliographic details.
type Book struct {
	Author    string
	Publisher string
}

func (Book) Kind() Kind { return KindBook }
func (Book) sealed()    {}

// Product carries details for non-book goods.
type Product struct {
	Maker string
}

func (Product) Kind() Kind { return KindProduct }
func (Product) sealed()    {}

// Fields is the mutable form used to construct or edit an item.
type Fields struct {
	Barcode   string
	Title     string
	Details   Details
	Price     *float64
	ImageURL  string
	ScannedAt time.Time
}

// ScannedItem is the validated record produced by a scan. Its fields are
// unexported; edits go through Fields and New, yielding a new value.
type ScannedItem struct {
	barcode   string
	title     string
	details   Details
	price     *float64
	imageURL  string
	scannedAt time.Time
}

// New validates f and returns the item.
func New(f Fields) (ScannedItem, error) {
	code := f.Barcode
	if err := ValidateBarcode(code); err != nil {
		return ScannedItem{}, err
	}
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return ScannedItem{}, invalid(ErrTitleRequired)
	}
	if f.Details == nil {
		return ScannedItem{}, invalid(ErrKindRequired)
	}
	var price *float64
	if f.Price != nil {
		p := *f.Price
		if !(p >= 0) {
			return ScannedItem{}, invalid(ErrInvalidPrice)
		}
		price = &p
	}
	scannedAt := f.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}
	return ScannedItem{
		barcode:   code,
		title:     title,
		details:   f.Details,
		price:     price,
		imageURL:  strings.TrimSpace(f.ImageURL),
		scannedAt: scannedAt,
	}, nil
}

// ValidateBarcode checks the length first, then the character set.
func ValidateBarcode(code string) error {
	if n := len(code); n < minBarcodeLen || n > maxBarcodeLen {
		return invalid(ErrBarcodeLength)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return invalid(ErrBarcodeDigits)
		}
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", services.ErrInvalidItem, err)
}

func (i ScannedItem) Barcode() string      { return i.barcode }
func (i ScannedItem) Title() string        { return i.title }
func (i ScannedItem) Details() Details     { return i.details }
func (i ScannedItem) ImageURL() string     { return i.imageURL }
func (i ScannedItem) ScannedAt() time.Time { return i.scannedAt }

// Kind returns the variant, or the empty string for the zero value.
func (i ScannedItem) Kind() Kind {
	if i.details == nil {
		return ""
	}
	return i.details.Kind()
}

// Price returns the price and whether one is set.
func (i ScannedItem) Price() (float64, bool) {
	if i.price == nil {
		return 0, false
	}
	return *i.price, true
}

// Fields returns a copy suitable for editing and passing back to New.
func (i ScannedItem) Fields() Fields {
	f := Fields{
		Barcode:   i.barcode,
		Title:     i.title,
		Details:   i.details,
		ImageURL:  i.imageURL,
		ScannedAt: i.scannedAt,
	}
	if i.price != nil {
		p := *i.price
		f.Price = &p
	}
	return f
}

// Equal reports identity: same barcode and same variant.
func (i ScannedItem) Equal(other ScannedItem) bool {
	return i.barcode == other.barcode && i.Kind() == other.Kind()
}

// DisplayInfo renders a one-line summary for lists and prompts.
func (i ScannedItem) DisplayInfo() string {
	var secondary string
	switch d := i.details.(type) {
	case Book:
		secondary = d.Author
	case Product:
		secondary = d.Maker
	}
	if secondary == "" {
		return i.title
	}
	return i.title + " / " + secondary
}
