package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// MalformedRuleID is the rule ID reported for input that could not be parsed
// or interpreted.
const (
	MalformedRuleID   = "A11Y000"
	MalformedRuleName = "malformed-input"
)

// MalformedInputError reports markup, a stylesheet or a value that could not
// be interpreted. Parsers return it when no tree can be produced; rules
// return it for a single offending node and keep checking.
type MalformedInputError struct {
	// Path is the file being parsed, if known.
	Path string

	// Span locates the offending input. Empty when the whole file is affected.
	Span dom.Span

	// Reason is a short human-readable description.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// NewMalformedInputError creates a MalformedInputError for span.
func NewMalformedInputError(span dom.Span, reason string, err error) *MalformedInputError {
	return &MalformedInputError{Span: span, Reason: reason, Err: err}
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// splitMalformed separates MalformedInputErrors from any other errors in err,
// looking through errors.Join trees and %w wrapping.
func splitMalformed(err error) ([]*MalformedInputError, error) {
	if err == nil {
		return nil, nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var (
			malformed []*MalformedInputError
			others    []error
		)
		for _, inner := range joined.Unwrap() {
			m, rest := splitMalformed(inner)
			malformed = append(malformed, m...)
			if rest != nil {
				others = append(others, rest)
			}
		}
		return malformed, errors.Join(others...)
	}

	var malformed *MalformedInputError
	if errors.As(err, &malformed) {
		return []*MalformedInputError{malformed}, nil
	}

	return nil, err
}
