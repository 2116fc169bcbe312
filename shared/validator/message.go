package validator

import (
	"errors"
	"strings"

	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":     "{field} is required",
		"gte":          "{field} must be greater than or equal to {param}",
		"lte":          "{field} must be less than or equal to {param}",
		"gt":           "{field} must be greater than {param}",
		"oneof":        "{field} must be one of {param}",
		"max":          "{field} must be less than or equal to {param}",
		"min":          "{field} must be greater than or equal to {param}",
		"len":          "{field} must be exactly {param} characters",
		"email":        "Invalid email format",
		"uuid":         "{field} must be a valid identifier",
		"calendardate": "{field} must be a date in YYYY-MM-DD format",
	}

	kinds = map[string]string{
		"required": failure.KindMissingField,
		"email":    failure.KindInvalidEmail,
	}
)

// message picks the error to report and its kind. A missing field is reported before any
// shape violation regardless of struct field order.
func message(err error) (string, string) {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return failure.KindInvalidInput, err.Error()
	}

	chosen := valErrors[0]
	for _, valErr := range valErrors {
		if valErr.Tag() == "required" {
			chosen = valErr

			break
		}
	}

	kind, ok := kinds[chosen.Tag()]
	if !ok {
		kind = failure.KindInvalidInput
	}

	errStr := messages[chosen.Tag()]
	if errStr == "" {
		return kind, chosen.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", chosen.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", chosen.Param())

	return kind, errStr
}
