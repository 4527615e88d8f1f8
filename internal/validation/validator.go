// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and registers the domain enum tags.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	idRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

var enumTags = map[string]func(string) bool{
	"severity":       func(s string) bool { return domain.Severity(s).Valid() },
	"category":       func(s string) bool { return domain.Category(s).Valid() },
	"role":           func(s string) bool { return domain.Role(s).Valid() },
	"project_status": func(s string) bool { return domain.ProjectStatus(s).Valid() },
	"bug_status":     func(s string) bool { return domain.BugStatus(s).Valid() },
}

func init() {
	// "custom_id" restricts ids to letters, digits, hyphens and underscores.
	mustRegister("custom_id", func(fl validator.FieldLevel) bool {
		return idRegexp.MatchString(fl.Field().String())
	})

	for tag, valid := range enumTags {
		mustRegister(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}
}

// mustRegister treats empty strings as valid so that 'required' and 'omitempty' decide about them.
func mustRegister(tag string, fn func(fl validator.FieldLevel) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}

		return fn(fl)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		var message string

		switch tag := fe.Tag(); {
		case tag == "custom_id":
			message = fmt.Sprintf(
				"field '%s' must contain only letters, numbers, hyphens, and underscores",
				fe.Field(),
			)
		case enumTags[tag] != nil:
			message = fmt.Sprintf("field '%s' has unknown %s '%v'", fe.Field(), tag, fe.Value())
		default:
			message = fmt.Sprintf(
				"field '%s' failed on the '%s' tag",
				fe.Field(),
				tag,
			)
		}

		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
