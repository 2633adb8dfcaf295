package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxCommentLength bounds HO review comments.
const MaxCommentLength = 2000

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so API clients can map errors to inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and converts failures into a ValidationError.
func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("", err.Error())
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// merge appends the fields of other into e, allocating e when nil.
func (e *ValidationError) merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	if e == nil {
		return other
	}
	e.Fields = append(e.Fields, other.Fields...)
	return e
}

// add appends a field failure, allocating e when nil.
func (e *ValidationError) add(field, message string) *ValidationError {
	return e.merge(NewValidationError(field, message))
}

// asError avoids returning a typed nil inside the error interface.
func (e *ValidationError) asError() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateComments checks optional HO review comments.
func ValidateComments(comments string) error {
	if len([]rune(comments)) > MaxCommentLength {
		return NewValidationError("comments", fmt.Sprintf("must be at most %d characters", MaxCommentLength))
	}
	return nil
}

// ValidateRequiredComments checks HO comments that must be present, as on rejection.
func ValidateRequiredComments(comments string) error {
	if strings.TrimSpace(comments) == "" {
		return NewValidationError("comments", "is required")
	}
	return ValidateComments(comments)
}
