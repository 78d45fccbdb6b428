package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first field of a request body that failed validation
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Response returns the 400 body for the error
func (e *ValidationError) Response() ValidationErrorResponse {
	return ValidationErrorResponse{Message: e.Message, Field: e.Field}
}

var validate = newValidator()

// newValidator returns a validator reporting fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an input against its validate tags.
// Only the first failing field is reported.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fe := fieldErrs[0]
	field := fieldPath(fe.Namespace())
	return &ValidationError{Message: fieldMessage(field, fe), Field: field}
}

// fieldPath drops the struct name from a validator namespace ("CreateLessonRequest.order" -> "order")
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// decodeError turns a JSON decoding failure into a validation error
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &sizeErr):
		return &ValidationError{Message: "request body too large"}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &ValidationError{
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, jsonType(typeErr.Type)),
			Field:   typeErr.Field,
		}
	case errors.As(err, &typeErr):
		return &ValidationError{Message: "request body must be a JSON object"}
	case errors.Is(err, io.EOF):
		return &ValidationError{Message: "request body is required"}
	default:
		return &ValidationError{Message: "request body must be valid JSON"}
	}
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
