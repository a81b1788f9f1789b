package item_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"shelfscan/internal/item"
	"shelfscan/internal/services"
)

func TestBarcodeLengthAndDigitErrorsAreDistinct(t *testing.T) {
	for _, code := range []string{"", "1234567", "123456789012345", "12345678901234567890"} {
		_, err := item.New(item.Fields{Barcode: code, Title: "T", Details: item.Book{}})
		if !errors.Is(err, item.ErrBarcodeLength) {
			t.Fatalf("barcode %q: expected length error, got %v", code, err)
		}
		if !errors.Is(err, services.ErrInvalidItem) {
			t.Fatalf("barcode %q: expected invalid item marker, got %v", code, err)
		}
	}
	for _, code := range []string{"1234567a", "97848731173X4", "12345678９", "9784-8731173"} {
		_, err := item.New(item.Fields{Barcode: code, Title: "T", Details: item.Book{}})
		if !errors.Is(err, item.ErrBarcodeDigits) {
			t.Fatalf("barcode %q: expected digit error, got %v", code, err)
		}
		if errors.Is(err, item.ErrBarcodeLength) {
			t.Fatalf("barcode %q: digit error must not report length", code)
		}
	}
}

func TestBarcodeRejectsSurroundingWhitespace(t *testing.T) {
	for _, code := range []string{" 12345678\t", "12345678 ", "\n9784873117324"} {
		_, err := item.New(item.Fields{Barcode: code, Title: "T", Details: item.Book{}})
		if !errors.Is(err, item.ErrBarcodeDigits) {
			t.Fatalf("%q: expected ErrBarcodeDigits, got %v", code, err)
		}
	}
}

func TestBarcodeBoundaryLengths(t *testing.T) {
	for _, code := range []string{"12345678", "12345678901234"} {
		if _, err := item.New(item.Fields{Barcode: code, Title: "T", Details: item.Product{}}); err != nil {
			t.Fatalf("barcode %q: unexpected error %v", code, err)
		}
	}
}

func TestTitleRequired(t *testing.T) {
	_, err := item.New(item.Fields{Barcode: "9784873117324", Title: " \t ", Details: item.Book{}})
	if !errors.Is(err, item.ErrTitleRequired) {
		t.Fatalf("expected title error, got %v", err)
	}
}

func TestPriceValidation(t *testing.T) {
	neg := -1.0
	if _, err := item.New(item.Fields{Barcode: "9784873117324", Title: "T", Details: item.Book{}, Price: &neg}); !errors.Is(err, item.ErrInvalidPrice) {
		t.Fatalf("expected price error, got %v", err)
	}
	nan := math.NaN()
	if _, err := item.New(item.Fields{Barcode: "9784873117324", Title: "T", Details: item.Book{}, Price: &nan}); !errors.Is(err, item.ErrInvalidPrice) {
		t.Fatalf("expected price error for NaN, got %v", err)
	}
	zero := 0.0
	it, err := item.New(item.Fields{Barcode: "9784873117324", Title: "T", Details: item.Book{}, Price: &zero})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if p, ok := it.Price(); !ok || p != 0 {
		t.Fatalf("expected zero price to be kept, got %v %v", p, ok)
	}
}

func TestDetailsRequired(t *testing.T) {
	if _, err := item.New(item.Fields{Barcode: "9784873117324", Title: "T"}); !errors.Is(err, item.ErrKindRequired) {
		t.Fatalf("expected kind error, got %v", err)
	}
}

func TestScannedAtDefaultsToNow(t *testing.T) {
	before := time.Now()
	it, err := item.New(item.Fields{Barcode: "9784873117324", Title: "T", Details: item.Book{}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if it.ScannedAt().Before(before) {
		t.Fatalf("expected scannedAt >= %v, got %v", before, it.ScannedAt())
	}
}

func TestEqualUsesBarcodeAndKind(t *testing.T) {
	a, _ := item.New(item.Fields{Barcode: "9784873117324", Title: "A", Details: item.Book{Author: "x"}})
	b, _ := item.New(item.Fields{Barcode: "9784873117324", Title: "B", Details: item.Book{Author: "y"}})
	c, _ := item.New(item.Fields{Barcode: "9784873117324", Title: "A", Details: item.Product{}})
	if !a.Equal(b) {
		t.Fatal("expected title and author differences to keep identity")
	}
	if a.Equal(c) {
		t.Fatal("expected different kinds to differ")
	}
}

func TestEditProducesNewValue(t *testing.T) {
	price := 1200.0
	orig, err := item.New(item.Fields{Barcode: "9784873117324", Title: "Original", Details: item.Book{Author: "Author"}, Price: &price})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	f := orig.Fields()
	f.Title = "Edited"
	*f.Price = 1500
	edited, err := item.New(f)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if orig.Title() != "Original" {
		t.Fatalf("original mutated: %q", orig.Title())
	}
	if p, _ := orig.Price(); p != 1200 {
		t.Fatalf("original price mutated: %v", p)
	}
	if edited.Title() != "Edited" || !edited.ScannedAt().Equal(orig.ScannedAt()) {
		t.Fatalf("unexpected edited item %+v", edited.Fields())
	}
}

func TestDisplayInfo(t *testing.T) {
	book, _ := item.New(item.Fields{Barcode: "9784873117324", Title: "Go", Details: item.Book{Author: "Pike"}})
	if got := book.DisplayInfo(); got != "Go / Pike" {
		t.Fatalf("DisplayInfo = %q", got)
	}
	prod, _ := item.New(item.Fields{Barcode: "4901234567894", Title: "Tea", Details: item.Product{}})
	if got := prod.DisplayInfo(); !strings.EqualFold(got, "Tea") {
		t.Fatalf("DisplayInfo = %q", got)
	}
}
