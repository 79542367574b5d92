// Package validator adapts go-playground/validator to echo's Validator
// interface and renders violations as the API's field -> message maps.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "mingle/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator.Validate instance for echo.
type EchoValidator struct {
	validate *validator.Validate
}

// New builds the validator. Struct fields are reported under their json names
// so the error map matches the request body the client sent.
func New() *EchoValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &EchoValidator{validate: validate}
}

// Validate checks the bound struct and converts violations into a
// ValidationError carrying one message per offending field.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(violations))
	for _, violation := range violations {
		fields[violation.Field()] = messageFor(violation)
	}

	return &domainerrors.ValidationError{Fields: fields}
}

// messageFor renders one human-readable message per violation kind.
func messageFor(violation validator.FieldError) string {
	field := violation.Field()
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", titleCase(field))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", titleCase(field), violation.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long.", titleCase(field), violation.Param())
	default:
		return fmt.Sprintf("%s is invalid.", titleCase(field))
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
