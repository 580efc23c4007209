package schema

import (
	"fmt"
	"strings"
)

// An Issue is a single validation failure datum:
// a path into the surface's data plus a human-readable message.
//
// Once produced by a Validator, an Issue is never mutated.
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Attribute joins the Issue's path with ".", e.g., "body.username".
func (i Issue) Attribute() string {
	return strings.Join(i.Path, ".")
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Attribute(), i.Message)
}

// qualify returns a copy of the Issue with the surface name
// prepended as the first path segment.
func (i Issue) qualify(s Surface) Issue {
	path := make([]string, 0, len(i.Path)+1)
	path = append(path, string(s))
	path = append(path, i.Path...)

	return Issue{Path: path, Message: i.Message}
}
