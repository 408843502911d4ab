// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/deppfellow/showtracker/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

var validate = newValidator()

// newValidator reports fields by the name the client used: the path param
// name for path fields and the JSON key for body fields.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("param"); name != "" {
			return name
		}

		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Struct runs every rule declared on v. It never stops at the first failure.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) fills path params first, then the JSON body.
//  2. payload.Validate() applies the declared rules.
//  3. Any failure becomes a 400 *errs.HTTPError; field-level failures are listed.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors, ok := extractValidationError(payload, err)
		if !ok {
			return fmt.Errorf("validate %T: %w", payload, err)
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}

	return nil
}

// bindErrorMessage pulls the client-facing message out of echo's bind error.
func bindErrorMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

// extractValidationError converts validator.ValidationErrors into field errors.
//
// It returns false when err is not a validation failure (e.g. payload is not a struct).
func extractValidationError(payload any, err error) ([]errs.FieldError, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:    fe.Field(),
			Location: fieldLocation(payload, fe.StructField()),
			Rule:     fe.Tag(),
			Error:    ruleMessage(fe),
		})
	}

	return fieldErrors, true
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// min/max mean length for strings and value for numbers.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "numeric":
		return "must be numeric"

	case "alpha":
		return "must contain only letters"

	case "email":
		return "must be a valid email address"

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed rule %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed rule %s", fe.Tag())
	}
}

// fieldLocation reports whether a field is read from the path or the body.
func fieldLocation(payload any, structField string) errs.Location {
	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return errs.LocationBody
	}

	if f, ok := t.FieldByName(structField); ok && f.Tag.Get("param") != "" {
		return errs.LocationPath
	}
	return errs.LocationBody
}

// ParseID converts a validated numeric path segment into a row id.
//
// Values that are numeric but cannot name a row ("1.5", "-3", overflowing
// int64) map to 0. Ids start at 1, so the lookup still reaches the store
// and simply finds nothing.
func ParseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
