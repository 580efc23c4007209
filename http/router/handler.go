package router

import "net/http"

// A Handler responds to a request, returning any error
// instead of writing a failure response itself.
// The Router captures the returned error and forwards it
// to the error-handling chain exactly once.
type Handler func(w http.ResponseWriter, r *http.Request) error

// An ErrorHandler inspects an error forwarded by a Handler
// and reports whether it wrote a response for it.
// Returning false passes the error through, untouched,
// to the next error-handling stage.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error) bool
