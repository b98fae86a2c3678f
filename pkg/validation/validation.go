// Package validation provides struct validation with go-playground/validator
// integration, plus the custom rules the engine's configuration uses.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance with custom rules registered.
var Validate *validator.Validate

var componentNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

func init() {
	Validate = validator.New()

	// Register custom validation functions
	if err := Validate.RegisterValidation("component_name", validateComponentName); err != nil {
		panic(fmt.Sprintf("validation: register component_name: %v", err))
	}

	// Register tag name function to use JSON tags for field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// validateComponentName accepts identifiers usable as metrics keys: a letter
// followed by letters, digits, underscores, dots, or dashes.
func validateComponentName(fl validator.FieldLevel) bool {
	return componentNameRegex.MatchString(fl.Field().String())
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all failed fields of one struct.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateStruct validates s and converts validator errors to
// ValidationErrors with readable messages.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs ValidationErrors
	for _, fe := range fieldErrors {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Message: messageFor(fe),
		})
	}
	return errs
}

// messageFor maps a field error to a human-readable message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "component_name":
		return "must start with a letter and contain only letters, digits, '_', '.' or '-'"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
