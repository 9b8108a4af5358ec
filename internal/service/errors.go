package service

import "errors"

// Sentinel kinds for the error taxonomy. Services attach client-facing
// messages via the constructors below; the request boundary maps each kind
// to an HTTP status and never leaks internal detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func NotFound(msg string) error     { return &Error{kind: ErrNotFound, msg: msg} }
func Forbidden(msg string) error    { return &Error{kind: ErrForbidden, msg: msg} }
func Conflict(msg string) error     { return &Error{kind: ErrConflict, msg: msg} }
func Invalid(msg string) error      { return &Error{kind: ErrValidation, msg: msg} }
func Unauthorized(msg string) error { return &Error{kind: ErrUnauthorized, msg: msg} }
