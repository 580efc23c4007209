package schema

import (
	"context"
	"net/http"
)

// validatedKey follows the convention of unexported context keys.
type validatedKey struct{}

// A Validated holds the normalized data for each surface a request validated.
// A surface that bound no Validator stays nil.
type Validated struct {
	Body    any
	Query   any
	Params  any
	Headers any
}

func (v *Validated) set(s Surface, data any) {
	switch s {
	case SurfaceBody:
		v.Body = data
	case SurfaceQuery:
		v.Query = data
	case SurfaceParams:
		v.Params = data
	case SurfaceHeaders:
		v.Headers = data
	}
}

func (v Validated) get(s Surface) any {
	switch s {
	case SurfaceBody:
		return v.Body
	case SurfaceQuery:
		return v.Query
	case SurfaceParams:
		return v.Params
	default:
		return v.Headers
	}
}

// withValidated stores val on the request context.
func withValidated(r *http.Request, val Validated) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), validatedKey{}, val))
}

// ValidatedFrom retrieves the Validated surfaces stored on the request,
// or a zero Validated if Validate has not run.
func ValidatedFrom(r *http.Request) Validated {
	val, _ := r.Context().Value(validatedKey{}).(Validated)
	return val
}

// Body retrieves the normalized body stored by Validate.
// The bool reports whether a T was stored.
func Body[T any](r *http.Request) (T, bool) {
	return surfaceAs[T](r, SurfaceBody)
}

// Query retrieves the normalized query params stored by Validate.
func Query[T any](r *http.Request) (T, bool) {
	return surfaceAs[T](r, SurfaceQuery)
}

// Params retrieves the normalized path params stored by Validate.
func Params[T any](r *http.Request) (T, bool) {
	return surfaceAs[T](r, SurfaceParams)
}

// Headers retrieves the normalized headers stored by Validate.
func Headers[T any](r *http.Request) (T, bool) {
	return surfaceAs[T](r, SurfaceHeaders)
}

func surfaceAs[T any](r *http.Request, s Surface) (T, bool) {
	data, ok := ValidatedFrom(r).get(s).(T)
	return data, ok
}
