package apperrors

import (
	"errors"
	"net/http"
)

// Code clasifica errores esperados de cara al usuario.
type Code string

const (
	CodeUnauthenticated  Code = "unauthenticated"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodePermissionDenied Code = "permission_denied"
	CodeTransportFailure Code = "transport_failure"
)

var (
	ErrUnauthenticated  = New(CodeUnauthenticated)
	ErrNotFound         = New(CodeNotFound)
	ErrConflict         = New(CodeConflict)
	ErrPermissionDenied = New(CodePermissionDenied)
	ErrTransportFailure = New(CodeTransportFailure)
)

// messages es la tabla fija code → mensaje de usuario.
// Códigos no mapeados caen al mensaje genérico.
var messages = map[Code]string{
	CodeUnauthenticated:  "please log in to continue",
	CodeNotFound:         "the requested record was not found",
	CodeConflict:         "a record with those details already exists",
	CodePermissionDenied: "you do not have access to this record",
	CodeTransportFailure: "the service is temporarily unavailable, try again",
}

const genericMessage = "an unexpected error occurred"

type Error struct {
	Code Code
	Err  error // causa opcional
}

func New(code Code) *Error {
	return &Error{Code: code}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Al comparar con errors.Is, dos *Error con el mismo Code son equivalentes.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Message traduce un error a mensaje de usuario usando la tabla fija.
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return genericMessage
	}
	if msg, ok := messages[e.Code]; ok {
		return msg
	}
	return genericMessage
}

// HTTPStatus mapea la taxonomía a status HTTP.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeTransportFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
