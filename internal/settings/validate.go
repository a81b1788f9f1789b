package settings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"shelfscan/internal/notion"
)

// Result is the outcome of validating Settings.
type Result struct {
	IsValid bool
	Errors  []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notionid", func(fl validator.FieldLevel) bool {
		return notion.ValidID(fl.Field().String())
	})
	return v
}

// Validate checks that s is complete enough to attempt a write. Values are
// trimmed before checking, so whitespace-only entries count as missing.
func Validate(s Settings) Result {
	clean := s.Sanitized()
	err := validate.Struct(clean)
	if err == nil {
		return Result{IsValid: true}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []string{err.Error()}}
	}
	out := Result{Errors: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, formatValidationError(fe))
	}
	return out
}

var fieldLabels = map[string]string{
	"notion_token": "notion token",
	"database_id":  "database id",
	"title":        "title property mapping",
	"barcode":      "barcode property mapping",
}

func formatValidationError(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "required_without":
		return label + " is required"
	case "notionid":
		return label + " must be a 32-character hex id or a UUID"
	default:
		return fmt.Sprintf("%s failed %s validation", label, fe.Tag())
	}
}
