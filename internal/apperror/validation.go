package apperror

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation turns ozzo field errors into a validation Error. Other
// errors are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]FieldError, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, FieldError{Field: k, Message: ve[k].Error()})
	}
	return Invalid(fields...)
}
