package services

import (
	"errors"
	"net/http"
)

// Error kinds. Every workflow failure wraps exactly one of these.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrTokenExpired = errors.New("token expired")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a classified workflow failure carrying the HTTP status it surfaces as.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func invalidInput(msg string) error {
	return &Error{Kind: ErrInvalidInput, Status: http.StatusUnprocessableEntity, Message: msg}
}

func badRequest(msg string) error {
	return &Error{Kind: ErrInvalidInput, Status: http.StatusBadRequest, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Status: http.StatusConflict, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Status: http.StatusNotFound, Message: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Status: http.StatusForbidden, Message: msg}
}

func invalidState(status int, msg string) error {
	return &Error{Kind: ErrInvalidState, Status: status, Message: msg}
}

func tokenExpired() error {
	return &Error{Kind: ErrTokenExpired, Status: http.StatusGone, Message: "token expired"}
}

func unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// StatusOf returns the HTTP status for err, 500 for unclassified errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}
