package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates request DTOs against their `validate` struct
// tags using go-playground/validator. Field names in messages follow the
// `json` tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a RequestValidator.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v}
}

// Validate checks a struct (or pointer to struct). When fields are given,
// only those Go field names are checked.
//
// The returned error is a *ValidationError for the first failed rule.
func (v *RequestValidator) Validate(ctx context.Context, data any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, data, fields...)
	} else {
		err = v.validate.StructCtx(ctx, data)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, data)
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return newValidationError(fe.Field(), nil, messageFor(fe))
	}

	return err
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return "Enter a valid email address"
	case "alphanumunicode", "alphanum":
		return fmt.Sprintf("The %s should only contain alphanumeric characters", field)
	case "min":
		return fmt.Sprintf("Ensure the %s field has at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("Ensure the %s field has no more than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}
