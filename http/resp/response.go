package resp

import (
	"net/http"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds
// while applying all functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client as JSON.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		if d == nil {
			return ErrMissingData
		}

		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError
// unless a more specific code was already applied.
func Err(e error) Fn {
	return func(_ Responder, r *Response) error {
		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}

		return nil
	}
}
