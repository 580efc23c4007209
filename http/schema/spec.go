package schema

import (
	"fmt"

	"github.com/switchback-web/switchback"
)

// A Validator is the opaque capability a Spec binds to a surface.
//
// SafeParse evaluates value and returns either the normalized data,
// a non-empty list of issues describing why value failed,
// or an error for unexpected trouble unrelated to the value's validity
// (which callers propagate rather than translate into a 400).
type Validator interface {
	SafeParse(value any) (data any, issues []Issue, err error)
}

// A Spec binds Validators to request surfaces.
// Supply it once at route-registration time; it is read-only thereafter
// and shared across all requests to that route.
//
// Construct either a per-surface Spec with a struct literal,
//
//	schema.Spec{Body: schema.Struct[newUser](), Params: schema.Struct[idParam]()}
//
// or a single-schema Spec with Single,
// whose target surface is inferred from the request method.
type Spec struct {
	Body    Validator
	Query   Validator
	Params  Validator
	Headers Validator

	single Validator
}

// Single constructs a Spec applying v to exactly one inferred surface:
// the body for POST, PUT, and PATCH requests, the query string otherwise.
func Single(v Validator) Spec {
	return Spec{single: v}
}

// Bound reports whether any Validator is bound to the Spec,
// distinguishing a configured Spec from the zero value.
func (s Spec) Bound() bool {
	return s.single != nil || s.Body != nil || s.Query != nil || s.Params != nil || s.Headers != nil
}

// Valid asserts the Spec is well-formed:
// at least one Validator is bound,
// and a single schema is not mixed with per-surface schemas.
func (s Spec) Valid() error {
	perSurface := s.Body != nil || s.Query != nil || s.Params != nil || s.Headers != nil

	if s.single != nil && perSurface {
		return fmt.Errorf("%w: single schema cannot be combined with per-surface schemas", switchback.ErrBadConfig)
	}

	if s.single == nil && !perSurface {
		return fmt.Errorf("%w: no schema bound to any surface", switchback.ErrBadConfig)
	}

	return nil
}

// forMethod resolves the Spec into the Validator bound to each surface,
// in validation order, applying the single-schema inference rule for method.
func (s Spec) forMethod(method string) map[Surface]Validator {
	if s.single != nil {
		return map[Surface]Validator{inferSurface(method): s.single}
	}

	return map[Surface]Validator{
		SurfaceBody:    s.Body,
		SurfaceQuery:   s.Query,
		SurfaceParams:  s.Params,
		SurfaceHeaders: s.Headers,
	}
}
