package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/rules"
	"loan-admin-dashboard/pkg/id"
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their form name so toasts match the inputs
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// session, borrower and document ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.IsID32(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return rules.ReMobile.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return rules.RePAN.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return rules.ReIFSC.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return rules.RePincode.MatchString(fl.Field().String())
	})
	// positive money with at most 2 decimal places, as typed
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return false
		}
		return d.IsPositive() && d.Equal(d.Truncate(2))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to readable field messages.
func ToFieldErrors(err error) []apperror.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []apperror.FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]apperror.FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_if":
			out = append(out, apperror.FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid email address"})
		case "hex32":
			out = append(out, apperror.FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "mobile":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid 10-digit mobile number"})
		case "pan":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid PAN (e.g. ABCDE1234F)"})
		case "ifsc":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid IFSC code"})
		case "pincode":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid 6-digit pincode"})
		case "amount":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a positive amount with at most 2 decimal places"})
		case "datetime":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a date (YYYY-MM-DD)"})
		case "oneof":
			out = append(out, apperror.FieldError{Field: field, Message: "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")})
		case "url", "http_url":
			out = append(out, apperror.FieldError{Field: field, Message: "must be a valid URL"})
		case "min":
			out = append(out, apperror.FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		case "max":
			out = append(out, apperror.FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		case "gte":
			out = append(out, apperror.FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, apperror.FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, apperror.FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// bindAndValidate binds the posted form into dst and runs the tag rules.
// Failures come back as an apperror carrying one entry per field.
func bindAndValidate(c interface {
	Bind(any) error
	Validate(any) error
}, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperror.Validation("malformed form submission")
	}
	if n, ok := dst.(interface{ normalize() }); ok {
		n.normalize()
	}
	if err := c.Validate(dst); err != nil {
		return apperror.Invalid(ToFieldErrors(err)...)
	}
	return nil
}
