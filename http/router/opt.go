package router

import (
	"github.com/gorilla/mux"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/resp"
	"github.com/switchback-web/switchback/logger"
)

// A RouterOptFn is a functional option configuring a Router when constructing a new one.
type RouterOptFn func(*Router)

// WithBasePath roots the Router at base instead of "/".
func WithBasePath(base string) RouterOptFn {
	return func(r *Router) {
		r.prefix = joinPath(base)
	}
}

// WithMiddleware seeds the initial middleware chain
// every route registered under the Router inherits.
func WithMiddleware(mws ...middleware.Adapter) RouterOptFn {
	return func(r *Router) {
		r.chain = append(r.chain, mws...)
	}
}

// WithMux registers routes on a pre-existing mux handle
// instead of a freshly constructed one.
func WithMux(m *mux.Router) RouterOptFn {
	return func(r *Router) {
		r.shared.mux = m
	}
}

// WithLogger sets the logger.Logger the Router and its default responder log through.
func WithLogger(l logger.Logger) RouterOptFn {
	return func(r *Router) {
		r.shared.l = l
	}
}

// WithResponder sets the *resp.Responder backing the default error responder.
func WithResponder(d *resp.Responder) RouterOptFn {
	return func(r *Router) {
		r.shared.responder = d
	}
}
