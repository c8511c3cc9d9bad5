// Package mgerr declares the typed API errors of the activities backend.
// The wire shape is always {"detail": ...}: the fiber error handler in
// internal/server/httpserver derives the response body from these values.
package mgerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrActivityNotFound is returned when the named activity does not exist.
	ErrActivityNotFound = New(fiber.StatusNotFound, "Activity not found")

	// ErrInvalidRequest is returned when a request is invalid.
	ErrInvalidRequest = New(fiber.StatusBadRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, "internal server error occurred")
)

type Extras map[string]interface{}

// MergingtonError is an immutable error value: the sentinels above are shared
// across requests, so derivation helpers use value receivers and return copies.
type MergingtonError struct {
	StatusCode int
	Detail     string
	Extras     *Extras
}

func New(statusCode int, detail string) *MergingtonError {
	return &MergingtonError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}

// Msg derives a new error from e with a formatted detail message.
func (e MergingtonError) Msg(format string, parts ...interface{}) *MergingtonError {
	e.Detail = fmt.Sprintf(format, parts...)
	return &e
}

// WithExtras derives a new error from e carrying extra response fields.
func (e MergingtonError) WithExtras(extras Extras) *MergingtonError {
	e.Extras = &extras
	return &e
}

// NewInvalidViolations wraps request validation violations into a 400 whose
// detail is the first translated violation message.
func NewInvalidViolations(detail string, violations interface{}) *MergingtonError {
	e := *ErrInvalidRequest
	if detail != "" {
		e.Detail = detail
	}
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *MergingtonError) Error() string {
	return e.Detail
}
