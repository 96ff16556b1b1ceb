// Package validation runs ordered, short-circuiting field checks. Each check
// is independent; Run reports the first failure and skips the rest.
package validation

import (
	"fmt"
	"strings"

	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is the tagged failure of a single check. Message is safe to show
// to clients as-is.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Check returns nil when the field passes.
type Check func() *FieldError

func Run(checks ...Check) error {
	for _, check := range checks {
		if fe := check(); fe != nil {
			return fe
		}
	}
	return nil
}

func Required(field, value, message string) Check {
	return func() *FieldError {
		if validate.Var(value, "required") != nil {
			return &FieldError{Field: field, Tag: "required", Message: message}
		}
		return nil
	}
}

// AllRequired fails with one shared message if any of fields is empty.
func AllRequired(message string, fields map[string]string) Check {
	return func() *FieldError {
		for name, value := range fields {
			if validate.Var(value, "required") != nil {
				return &FieldError{Field: name, Tag: "required", Message: message}
			}
		}
		return nil
	}
}

// NotBlank is Required after trimming surrounding whitespace.
func NotBlank(field, value, message string) Check {
	return func() *FieldError {
		if validate.Var(strings.TrimSpace(value), "required") != nil {
			return &FieldError{Field: field, Tag: "notblank", Message: message}
		}
		return nil
	}
}

// Present is for inputs where "sent but empty" differs from "not sent".
func Present(field string, present bool, message string) Check {
	return func() *FieldError {
		if !present {
			return &FieldError{Field: field, Tag: "present", Message: message}
		}
		return nil
	}
}

func Email(field, value, message string) Check {
	return func() *FieldError {
		if validate.Var(value, "required,email") != nil {
			return &FieldError{Field: field, Tag: "email", Message: message}
		}
		return nil
	}
}

func MinLength(field, value string, min int, message string) Check {
	return func() *FieldError {
		if validate.Var(value, fmt.Sprintf("min=%d", min)) != nil {
			return &FieldError{Field: field, Tag: "min", Message: message}
		}
		return nil
	}
}

// PositiveID accepts only base-10 digits that parse to a value above zero.
func PositiveID(field string, id models.FlexID, message string) Check {
	return func() *FieldError {
		if validate.Var(id.String(), "required,number") != nil {
			return &FieldError{Field: field, Tag: "id", Message: message}
		}
		if _, ok := id.Int64(); !ok {
			return &FieldError{Field: field, Tag: "id", Message: message}
		}
		return nil
	}
}
