package akonadi

import (
	"fmt"
)

// ParseError reports malformed wire data.
type ParseError struct {
	// Kind is the constants.ErrMalformed* sentinel for the record being parsed.
	Kind error
	// Pos is the offset in the data, or the token index for fetch results.
	Pos    int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("akonadi: %v at %d", e.Kind, e.Pos)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func parseErrorf(kind error, pos int, err error, format string, v ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Reason: fmt.Sprintf(format, v...), Err: err}
}
