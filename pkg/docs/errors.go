package docs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPath is returned by Save when the document was never opened from
// or saved to a file and no explicit path is given.
var ErrNoPath = errors.New("no path")

// Problem is a single defect found while constructing or validating a
// document. Field names the offending field for validation problems and
// is empty for construction-level ones.
type Problem struct {
	Field string
	Msg   string
}

func (p Problem) Error() string {
	if p.Field == "" {
		return p.Msg
	}
	return p.Field + ": " + p.Msg
}

// InvalidDocument aggregates every problem found in one pass over a
// document. Construction and validation collect all failures instead of
// stopping at the first one.
type InvalidDocument struct {
	Problems []Problem
}

func (e *InvalidDocument) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid document: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *InvalidDocument) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

// ConversionError reports a value that cannot be converted to or from a
// field kind's native type. It is returned immediately at the point of
// use, never aggregated.
type ConversionError struct {
	Kind  string
	Value any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %#v to %s", e.Value, e.Kind)
}
