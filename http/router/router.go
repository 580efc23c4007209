package router

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/resp"
	"github.com/switchback-web/switchback/http/schema"
	"github.com/switchback-web/switchback/logger"
)

// Router registers declarative routes on a shared underlying mux handle.
//
// Each Router exclusively owns its own prefix/chain pair;
// Routers form a tree reachable only through Group calls.
// All registration-time state is finalized by Finish,
// before the first request is served, so no locking guards it.
type Router struct {
	prefix string
	chain  []middleware.Adapter
	shared *shared
}

// shared is the registration-time state all Routers in a tree point at.
type shared struct {
	env        switchback.Environment
	mux        *mux.Router
	l          logger.Logger
	responder  *resp.Responder
	validation ErrorHandler
	terminal   []ErrorHandler
	finished   bool
}

// New constructs a *Router rooted at basePath (default "/")
// with an optional initial middleware chain.
func New(env switchback.Environment, opts ...RouterOptFn) *Router {
	r := &Router{
		prefix: "/",
		shared: &shared{env: env},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.shared.mux == nil {
		r.shared.mux = mux.NewRouter()
	}

	if r.shared.l == nil {
		r.shared.l = logger.New()
	}

	if r.shared.responder == nil {
		r.shared.responder = resp.NewResponder(resp.WithLogger(r.shared.l))
	}

	if r.shared.validation == nil {
		r.shared.validation = resp.Validation(r.shared.responder)
	}

	return r
}

// Group calls fn with a child Router scoped to the combined prefix
// and the inherited middleware chain plus mws.
//
// An empty pathSegment nests without extending the prefix.
// A nil fn is a caller programming error and panics.
func (r *Router) Group(pathSegment string, fn func(*Router), mws ...middleware.Adapter) {
	r.assertOpen("Group")
	if fn == nil {
		panic(fmt.Errorf("router.Group: %w: nil callback", switchback.ErrBadConfig))
	}

	child := &Router{
		prefix: joinPath(r.prefix, pathSegment),
		chain:  append(append([]middleware.Adapter{}, r.chain...), mws...),
		shared: r.shared,
	}

	fn(child)
}

// Get registers entries at path for GET requests.
func (r *Router) Get(path string, entries ...Entry) {
	r.Handle(http.MethodGet, []string{path}, entries...)
}

// Post registers entries at path for POST requests.
func (r *Router) Post(path string, entries ...Entry) {
	r.Handle(http.MethodPost, []string{path}, entries...)
}

// Put registers entries at path for PUT requests.
func (r *Router) Put(path string, entries ...Entry) {
	r.Handle(http.MethodPut, []string{path}, entries...)
}

// Patch registers entries at path for PATCH requests.
func (r *Router) Patch(path string, entries ...Entry) {
	r.Handle(http.MethodPatch, []string{path}, entries...)
}

// Delete registers entries at path for DELETE requests.
func (r *Router) Delete(path string, entries ...Entry) {
	r.Handle(http.MethodDelete, []string{path}, entries...)
}

// Handle registers the identical entry chain once per path.
//
// The per-route order is: the inherited group chain
// in the order accumulated from the root to this Router,
// then the entries in declaration order.
// The final entry must be a Do; earlier entries must not be.
// Duplicate registrations are not deduplicated -
// the underlying mux's duplicate-route semantics apply unchanged.
func (r *Router) Handle(method string, paths []string, entries ...Entry) {
	r.assertOpen("Handle")

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		panic(fmt.Errorf("router.Handle: %w: unsupported method %q", switchback.ErrBadConfig, method))
	}

	if len(paths) == 0 {
		panic(fmt.Errorf("router.Handle: %w: no paths", switchback.ErrBadConfig))
	}

	handler := r.composeEntries(entries)
	for _, p := range paths {
		r.shared.mux.Handle(joinPath(r.prefix, p), handler).Methods(method)
	}
}

// SetErrorResponder replaces the default validation responder
// for every route registered under this Router tree.
//
// The replacement receives the same error the default would;
// it must report false for errors it does not handle
// so they pass through to terminal handlers untouched.
// Set it once, before Finish; reassignment after Finish has undefined effect.
func (r *Router) SetErrorResponder(h ErrorHandler) {
	if h == nil {
		panic(fmt.Errorf("router.SetErrorResponder: %w: nil handler", switchback.ErrBadConfig))
	}

	r.shared.validation = h
}

// OnError appends terminal error handlers,
// consulted in order after the validation responder declines an error.
func (r *Router) OnError(handlers ...ErrorHandler) {
	r.shared.terminal = append(r.shared.terminal, handlers...)
}

// Finish seals the Router tree and returns the handler to mount
// on the top-level application, with the validation responder
// and any terminal error handlers (including extra ones supplied here)
// wired behind every registered route.
//
// Call Finish exactly once, after all routes are declared.
func (r *Router) Finish(terminal ...ErrorHandler) http.Handler {
	r.assertOpen("Finish")
	r.shared.terminal = append(r.shared.terminal, terminal...)
	r.shared.finished = true

	return r.shared.mux
}

// composeEntries normalizes the heterogeneous entry list into one http.Handler:
// schema entries become validating middleware, With entries slot in as-is,
// and the trailing Do entry becomes the error-capturing terminal handler.
func (r *Router) composeEntries(entries []Entry) http.Handler {
	if len(entries) == 0 {
		panic(fmt.Errorf("router: %w: no entries", switchback.ErrBadConfig))
	}

	last := entries[len(entries)-1]
	if last.handler == nil {
		panic(fmt.Errorf("router: %w: final entry must be Do", switchback.ErrBadConfig))
	}

	adapters := make([]middleware.Adapter, 0, len(entries)+len(r.chain))
	adapters = append(adapters, r.chain...)
	for i, e := range entries[:len(entries)-1] {
		switch {
		case e.spec != nil:
			adapters = append(adapters, r.shared.validate(*e.spec))
		case e.adapter != nil:
			adapters = append(adapters, e.adapter)
		default:
			panic(fmt.Errorf("router: %w: entry %d: only the final entry may be Do", switchback.ErrBadConfig, i))
		}
	}

	return middleware.Chain(
		middleware.ReportPanic(r.shared.env.String())(r.shared.capture(last.handler)),
		adapters...,
	)
}

// validate turns a Spec into the middleware running it before the handler,
// short-circuiting failures into the error-handling chain.
func (sh *shared) validate(spec schema.Spec) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			validated, err := schema.Validate(spec, r)
			if err != nil {
				sh.handleError(w, r, err)
				return
			}

			h.ServeHTTP(w, validated)
		})
	}
}

// capture wraps a Handler so an error - returned or panicked -
// reaches the error-handling chain exactly once.
func (sh *shared) capture(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var returned bool
		defer func() {
			if rec := recover(); rec != nil && returned {
				// the handler returned normally before a later stage panicked;
				// its error, if any, was already routed
				panic(rec)
			} else if rec != nil {
				sh.handleError(w, r, fmt.Errorf("%w: recovered: %v", switchback.ErrUnexpected, rec))
			}
		}()

		err := h(w, r)
		returned = true
		if err != nil {
			sh.handleError(w, r, err)
		}
	})
}

// handleError walks the error-handling chain in its fixed order:
// the validation responder, then terminal handlers, then the fallback 500.
func (sh *shared) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if sh.validation(w, r, err) {
		return
	}

	for _, h := range sh.terminal {
		if h(w, r, err) {
			return
		}
	}

	sh.responder.Err(w, r, err)
}

func (r *Router) assertOpen(op string) {
	if r.shared.finished {
		panic(fmt.Errorf("router.%s: %w: called after Finish", op, switchback.ErrBadConfig))
	}
}

// joinPath concatenates segments with POSIX path semantics:
// redundant separators collapse and exactly one separates each segment.
func joinPath(segments ...string) string {
	joined := path.Join(segments...)
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}

	return joined
}
