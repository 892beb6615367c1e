// Package calcerr defines the error taxonomy shared by every calculator.
//
// Calculators never panic on bad input. They return an *Error whose Kind is
// one of the sentinels below, so callers can branch with errors.Is and the
// HTTP and metrics layers can map failures to stable labels with KindOf.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers non-finite, negative-where-disallowed and
	// zero-where-disallowed arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDateOutOfOrder is returned when an end date precedes its start date
	// and an unsigned result was requested.
	ErrDateOutOfOrder = errors.New("date out of order")

	// ErrNumericDegenerate is returned for inputs that would otherwise
	// produce a division by zero, NaN or Inf.
	ErrNumericDegenerate = errors.New("numeric degenerate")
)

// Error is a calculation failure tied to a specific input field.
type Error struct {
	Kind  error
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Msg)
}

// Unwrap exposes the sentinel kind to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Invalid builds an ErrInvalidInput failure for the named field.
func Invalid(field, format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// OutOfOrder builds an ErrDateOutOfOrder failure for the named field.
func OutOfOrder(field, format string, args ...interface{}) error {
	return &Error{Kind: ErrDateOutOfOrder, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Degenerate builds an ErrNumericDegenerate failure for the named field.
func Degenerate(field, format string, args ...interface{}) error {
	return &Error{Kind: ErrNumericDegenerate, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Kind labels
const (
	KindInvalidInput      = "invalid_input"
	KindDateOutOfOrder    = "date_out_of_order"
	KindNumericDegenerate = "numeric_degenerate"
	KindInternal          = "internal"
)

// KindOf returns a stable label for err, or "" when err is nil.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrDateOutOfOrder):
		return KindDateOutOfOrder
	case errors.Is(err, ErrNumericDegenerate):
		return KindNumericDegenerate
	default:
		return KindInternal
	}
}

// IsCalculation reports whether err belongs to the calculation taxonomy,
// i.e. it was caused by the caller's input rather than an internal fault.
func IsCalculation(err error) bool {
	k := KindOf(err)
	return k != "" && k != KindInternal
}
