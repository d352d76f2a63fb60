// Package apperror provides structured errors with an HTTP status mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Type string

const (
	TypeValidation   Type = "validation"
	TypeUnauthorized Type = "unauthorized"
	TypeForbidden    Type = "forbidden"
	TypeNotFound     Type = "not_found"
	TypeConflict     Type = "conflict"
	TypeUnavailable  Type = "unavailable"
	TypeExternal     Type = "external"
	TypeInternal     Type = "internal"
)

// FieldError is one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Type    Type
	Message string
	Cause   error
	Fields  []FieldError
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newErr(t Type, msg string, cause error) *Error {
	return &Error{Type: t, Message: msg, Cause: cause, Context: make(map[string]any)}
}

func Validation(msg string) *Error            { return newErr(TypeValidation, msg, nil) }
func Unauthorized(msg string) *Error          { return newErr(TypeUnauthorized, msg, nil) }
func Forbidden(msg string) *Error             { return newErr(TypeForbidden, msg, nil) }
func NotFound(msg string) *Error              { return newErr(TypeNotFound, msg, nil) }
func Conflict(msg string) *Error              { return newErr(TypeConflict, msg, nil) }
func Unavailable(msg string) *Error           { return newErr(TypeUnavailable, msg, nil) }
func External(msg string, cause error) *Error { return newErr(TypeExternal, msg, cause) }
func Internal(msg string, cause error) *Error { return newErr(TypeInternal, msg, cause) }

// Invalid builds a validation error carrying per-field messages.
func Invalid(fields ...FieldError) *Error {
	e := Validation("validation failed")
	e.Fields = append(e.Fields, fields...)
	return e
}

func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// FromStatus classifies a non-2xx backend response.
func FromStatus(code int, msg string) *Error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	var e *Error
	switch {
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		e = Validation(msg)
	case code == http.StatusUnauthorized:
		e = Unauthorized(msg)
	case code == http.StatusForbidden:
		e = Forbidden(msg)
	case code == http.StatusNotFound:
		e = NotFound(msg)
	case code == http.StatusConflict:
		e = Conflict(msg)
	case code >= 500:
		e = External(msg, nil)
	default:
		e = Internal(msg, nil)
	}
	return e.WithField("backend_status", code)
}

// As normalises any error; unknown errors become internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}

func IsType(err error, t Type) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

type Response struct {
	Error  string       `json:"error"`
	Type   Type         `json:"type"`
	Fields []FieldError `json:"fields,omitempty"`
}

func (e *Error) ToResponse() Response {
	return Response{Error: e.Message, Type: e.Type, Fields: e.Fields}
}
