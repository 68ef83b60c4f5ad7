package interpreter

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the runtime, the heap, the
// environment and the type checker wraps exactly one of these.
var (
	ErrUnboundVariable         = errors.New("unbound variable")
	ErrRedefinition            = errors.New("redefinition of variable")
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrHeapFull                = errors.New("memory full")
	ErrOutOfBounds             = errors.New("heap index out of bounds")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
)

type runtimeError struct {
	kind    error
	message string
}

func (r runtimeError) Error() string {
	return fmt.Sprintf("error: %s", r.message)
}

func (r runtimeError) Unwrap() error {
	return r.kind
}

type typeError struct {
	kind    error
	message string
}

func (e typeError) Error() string {
	return fmt.Sprintf("Error: %s", e.message)
}

func (e typeError) Unwrap() error {
	return e.kind
}

type parseError struct {
	line    int
	message string
}

func (p parseError) Error() string {
	return fmt.Sprintf("Error at line %d: %s", p.line+1, p.message)
}

// kindOf returns the sentinel wrapped by err, or nil.
func kindOf(err error) error {
	for _, kind := range []error{
		ErrUnboundVariable, ErrRedefinition, ErrTypeMismatch,
		ErrHeapFull, ErrOutOfBounds, ErrInvalidAssignmentTarget,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
