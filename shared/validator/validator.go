package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMegabyte = 1024 * 1024

var validate *val.Validate

var customRules = map[string]val.Func{
	"empty":        func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
	"mimetypes":    validateMimetype,
	"maxfilesize":  validateFileSize,
	"calendardate": validateCalendarDate,
}

// validateMimetype checks an uploaded file's Content-Type against a space separated list.
func validateMimetype(fl val.FieldLevel) bool {
	file, ok := fl.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(fl.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// validateFileSize takes its limit in megabytes, fractions allowed.
func validateFileSize(fl val.FieldLevel) bool {
	file, ok := fl.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= limit*bytesPerMegabyte
}

func validateCalendarDate(fl val.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseDate(str)

	return err == nil
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	for tag, rule := range customRules {
		if err := validate.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
}

// Decode reads a JSON body into data without validating it.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.Invalid(failure.KindInvalidInput, fmt.Sprintf("failed to decode request body: %s", err)) //nolint:wrapcheck
	}

	return nil
}

// Validate decodes then validates.
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// ValidateStruct reports the first violated rule as a Failure; missing fields win over shape errors.
func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

// IsID reports whether value is a well formed row id. Primary keys are UUIDs, so anything
// else cannot match a row and must not reach the database.
func IsID(value string) bool {
	return ValidateVar(value, "uuid") == nil
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	kind, msg := message(err)

	return failure.Invalid(kind, msg) //nolint:wrapcheck
}
