// Package errs defines the error taxonomy shared by every service and
// translated into HTTP responses at the API boundary. Services return these
// types at the point of detection; nothing below the boundary writes status
// codes.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or out-of-range input. LineNumber is zero
// unless the error concerns a specific transaction line.
type ValidationError struct {
	Field      string
	LineNumber int
	Msg        string
}

func (e *ValidationError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.LineNumber, e.Field, e.Msg)
	}

	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}

	return e.Msg
}

// Validation builds a ValidationError for a named field.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// LineValidation builds a ValidationError for a field on a specific line.
func LineValidation(lineNumber int, field, msg string) *ValidationError {
	return &ValidationError{LineNumber: lineNumber, Field: field, Msg: msg}
}

// NotFoundError reports an unknown id within the caller's company scope.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for an entity id.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports an invalid state transition or a concurrent
// modification detected by a version check.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflict builds a ConflictError.
func Conflict(msg string) *ConflictError {
	return &ConflictError{Msg: msg}
}

// OverpaymentError is the conflict raised when a payment application exceeds
// the target transaction's outstanding balance. Amounts are formatted
// strings so the package stays decimal-agnostic.
type OverpaymentError struct {
	TransactionID string
	BalanceDue    string
	Requested     string
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds balance due %s on transaction %s",
		e.Requested, e.BalanceDue, e.TransactionID)
}

// Is lets errors.Is treat an overpayment as a conflict.
func (e *OverpaymentError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}

// ForbiddenError reports a tenant mismatch: the entity exists but belongs to
// a company the caller is not operating under.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// Forbidden builds a ForbiddenError.
func Forbidden(msg string) *ForbiddenError {
	return &ForbiddenError{Msg: msg}
}

// UnauthorizedError reports a missing or invalid credential.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string { return e.Msg }

// Unauthorized builds an UnauthorizedError.
func Unauthorized(msg string) *UnauthorizedError {
	return &UnauthorizedError{Msg: msg}
}

// RateLimitError reports a throttled request, currently only login attempts.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string { return e.Msg }

// RateLimited builds a RateLimitError.
func RateLimited(msg string) *RateLimitError {
	return &RateLimitError{Msg: msg}
}

// Status maps an error to its HTTP status code. Unknown errors are internal:
// the boundary logs them and returns a generic message.
func Status(err error) int {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		conflict     *ConflictError
		overpayment  *OverpaymentError
		forbidden    *ForbiddenError
		unauthorized *UnauthorizedError
		rateLimit    *RateLimitError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &overpayment), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Expected reports whether err belongs to the taxonomy, i.e. it carries a
// client-facing message and needs no internal-error logging.
func Expected(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
