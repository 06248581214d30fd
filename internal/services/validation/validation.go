// Package validation holds the request validator shared by the services.
//
// Request structs carry `validate` tags; each service translates the first failing
// field into its own sentinel error so callers never see validator types.
package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validate is the validator instance for service requests.
// Initialized in init() with custom validators.
var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// notblank rejects strings that are empty after trimming whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// currency accepts three ASCII letters in any case
	_ = Validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 3 {
			return false
		}
		for _, r := range s {
			if r > unicode.MaxASCII || !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	})
}

// FieldError is the first failing field of a validation error
type FieldError struct {
	Field string // struct field name
	Tag   string // failing rule, e.g. "required", "max"
}

// Struct validates s and returns the first failing field, or nil when s is valid.
// Errors that are not validation failures (such as passing a non-struct) are returned as is.
func Struct(s any) (*FieldError, error) {
	err := Validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}, nil
	}
	return nil, err
}
