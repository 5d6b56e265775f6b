package hashkit

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	ErrInvalidSeed      = errors.New("invalid seed")
)

// ParseError reports the input that could not be turned into an Algorithm.
type ParseError struct {
	Input string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse algorithm %q: %v", e.Input, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newParseError(input string, cause error) *ParseError {
	return &ParseError{
		Input: input,
		Cause: cause,
	}
}
