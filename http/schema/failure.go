package schema

import (
	"strings"

	"github.com/switchback-web/switchback"
)

// failureMessage is the fixed source message every Failure carries.
const failureMessage = "Validation Error"

// A Snapshot captures the raw state of all four request surfaces
// at the moment validation failed.
// Absent body, query, and params render as empty JSON objects.
type Snapshot struct {
	Body    any `json:"body"`
	Query   any `json:"query"`
	Params  any `json:"params"`
	Headers any `json:"headers"`
}

// A Failure signals that a request surface did not validate.
//
// It is constructed by Validate when the first bound surface fails,
// carries the path-qualified issues for that surface,
// and is never mutated after construction.
type Failure struct {
	// Message is always "Validation Error".
	Message string

	// Validator is the schema that was active for the failing surface.
	Validator Validator

	// Surface names the surface that failed.
	Surface Surface

	// Issues is the non-empty, ordered list of problems found.
	Issues []Issue

	// Request snapshots the raw surfaces for error reporting.
	Request Snapshot
}

func (f *Failure) Error() string {
	msgs := make([]string, 0, len(f.Issues)+1)
	msgs = append(msgs, f.Message)
	for _, i := range f.Issues {
		msgs = append(msgs, i.String())
	}

	return strings.Join(msgs, "; ")
}

// Unwrap ties every Failure to the switchback.ErrNotValid sentinel.
func (*Failure) Unwrap() error { return switchback.ErrNotValid }
