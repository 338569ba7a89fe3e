// Package validate checks request payloads against their struct tags and
// reports failures in wire field names, so a bad "customer_name" comes back
// as customer_name and not CustomerName.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finchbooks/finch/internal/errs"
)

type Validator struct {
	check *validator.Validate
}

func New() *Validator {
	check := validator.New(validator.WithRequiredStructEnabled())

	check.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{check: check}
}

// Struct runs tag validation on s and converts the first failure into a
// field-level validation error.
func (v *Validator) Struct(s any) error {
	err := v.check.Struct(s)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("validating request: %w", err)
	}

	first := fields[0]

	return errs.Validation(first.Field(), message(first))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
