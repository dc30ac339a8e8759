package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrNotFound      = errors.New("not found")
	ErrNoReference   = errors.New("line has no reference")
)

// EvaluationError reports that an expression could not be evaluated
type EvaluationError struct {
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %v", e.Expression, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure to read or write notebook state
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("notebook %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
