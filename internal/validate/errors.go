package validate

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this module wraps exactly one of them.
var (
	// ErrType reports an argument of the wrong kind or shape.
	ErrType = errors.New("type error")
	// ErrValue reports an argument of the right kind holding an illegal value.
	ErrValue = errors.New("value error")
	// ErrState reports an operation that is invalid given the current model state.
	ErrState = errors.New("state error")
)

// Error provides detailed information about a failed check.
type Error struct {
	Kind    error  // One of ErrType, ErrValue, ErrState
	Param   string // Parameter or operation involved
	Details string // Additional details
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%v: %s: %s", e.Kind, e.Param, e.Details)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Details)
}

// Unwrap returns the error kind so errors.Is works against the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Typef builds an ErrType error for param.
func Typef(param, format string, args ...any) error {
	return &Error{Kind: ErrType, Param: param, Details: fmt.Sprintf(format, args...)}
}

// Valuef builds an ErrValue error for param.
func Valuef(param, format string, args ...any) error {
	return &Error{Kind: ErrValue, Param: param, Details: fmt.Sprintf(format, args...)}
}

// Statef builds an ErrState error for op.
func Statef(op, format string, args ...any) error {
	return &Error{Kind: ErrState, Param: op, Details: fmt.Sprintf(format, args...)}
}
