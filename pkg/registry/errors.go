package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRecord reports a record that failed struct validation, e.g.
	// an empty operation identifier or one containing whitespace.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicateOperation reports an operation declared more than once.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrUnknownAliasTarget reports an alias pointing at an operation that is
	// not part of the model.
	ErrUnknownAliasTarget = errors.New("unknown alias target")

	// ErrCyclicAlias reports an alias chain that never reaches a non-alias
	// estimator.
	ErrCyclicAlias = errors.New("cyclic alias")

	// ErrMissingOperation reports required operations absent from the model.
	ErrMissingOperation = errors.New("missing operation")

	// ErrUnknownOperation is returned by lookups of an undeclared operation.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDuplicateModel is returned when a model name is registered twice.
	ErrDuplicateModel = errors.New("duplicate delay model")
)

// ValidationError is returned by Build for any semantic inconsistency in a
// delay model. Operations lists the offending identifiers, in the order
// they were found.
type ValidationError struct {
	Operations []string
	Err        error
}

func (e *ValidationError) Error() string {
	if len(e.Operations) == 0 {
		return fmt.Sprintf("delay model validation failed: %v", e.Err)
	}
	return fmt.Sprintf("delay model validation failed for %s: %v", strings.Join(e.Operations, ", "), e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
