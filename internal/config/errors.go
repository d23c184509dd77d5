package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStrategy reports a record that declares no delay strategy.
	ErrNoStrategy = errors.New("no delay strategy declared")

	// ErrMultipleStrategies reports a record that declares more than one
	// delay strategy.
	ErrMultipleStrategies = errors.New("more than one delay strategy declared")

	// ErrUnsupportedFormat reports a specification file whose extension is
	// not recognized.
	ErrUnsupportedFormat = errors.New("unsupported specification format")
)

// ParseError reports a specification file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse specification %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
