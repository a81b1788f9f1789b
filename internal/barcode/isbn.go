package barcode

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean folds full-width characters to ASCII with NFKC and removes the
// separators people and scanners insert between digit groups.
func Clean(value string) string {
	folded := norm.NFKC.String(value)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch r {
		case ' ', '\t', '\r', '\n', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsISBN reports whether code is ISBN-shaped: 13 digits with a 978 or 979
// prefix, or 10 characters that satisfy the ISBN-10 check digit.
func IsISBN(code string) bool {
	return IsISBN13(code) || ValidISBN10(code)
}

// IsISBN13 checks the Bookland EAN shape without verifying the check digit.
func IsISBN13(code string) bool {
	if len(code) != 13 || !allDigits(code) {
		return false
	}
	return strings.HasPrefix(code, "978") || strings.HasPrefix(code, "979")
}

// ValidISBN10 validates an ISBN-10 using modulo 11 with weights 10..1.
func ValidISBN10(code string) bool {
	if len(code) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		c := code[i]
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case (c == 'X' || c == 'x') && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// ValidISBN13 validates an EAN-13 check digit (alternating weights 1 and 3).
func ValidISBN13(code string) bool {
	if len(code) != 13 || !allDigits(code) {
		return false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(code[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return int(code[12]-'0') == check
}

// ToISBN13 converts a valid ISBN-10 to its 978-prefixed EAN-13 form. Any
// other input is returned unchanged.
func ToISBN13(code string) string {
	if !ValidISBN10(code) {
		return code
	}
	body := "978" + code[:9]
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return body + string(rune('0'+(10-sum%10)%10))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
