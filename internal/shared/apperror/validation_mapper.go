package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// "confirm_password" -> "Confirm Password"
func formatFieldName(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError turns the first binding failure into the message shown
// under the form field, e.g. "Name is required".
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeValidation, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required", "notblank":
		return RequiredField(field)
	case "max":
		return fieldMessage(fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
	case "min":
		return fieldMessage(fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
	case "eqfield":
		return fieldMessage(fmt.Sprintf("%s does not match", field))
	default:
		return InvalidField(field)
	}
}

func fieldMessage(msg string) *AppError {
	return New(CodeValidation, msg, http.StatusBadRequest)
}
