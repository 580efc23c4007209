package repo

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/router"
	"github.com/switchback-web/switchback/http/schema"
)

// An Op names one of the six conventional repository operations.
type Op string

const (
	OpCreate Op = "create"
	OpList   Op = "list"
	OpGet    Op = "get"
	OpUpdate Op = "update"
	OpPatch  Op = "patch"
	OpDelete Op = "delete"
)

// The six interfaces a repository opts into operations with.
// Each bound method keeps its receiver,
// so it can reach the repository's own state when invoked through the chain.
type (
	Creator interface {
		Create(w http.ResponseWriter, r *http.Request) error
	}

	Lister interface {
		List(w http.ResponseWriter, r *http.Request) error
	}

	Getter interface {
		Get(w http.ResponseWriter, r *http.Request) error
	}

	Updater interface {
		Update(w http.ResponseWriter, r *http.Request) error
	}

	Patcher interface {
		Patch(w http.ResponseWriter, r *http.Request) error
	}

	Deleter interface {
		Delete(w http.ResponseWriter, r *http.Request) error
	}
)

// A Method configures a single repository operation.
type Method struct {
	// Schema validates requests before the operation runs.
	// The zero value binds no schema.
	Schema schema.Spec

	// Middleware runs after any schema validation, before the operation.
	Middleware []middleware.Adapter
}

// A Config is the registration-time metadata for a repository,
// read once by Register and immutable thereafter.
type Config struct {
	// PathName overrides the derived base path segment.
	PathName string

	// IDParam names the path parameter for item operations; defaults to "id".
	IDParam string

	// Methods configures individual operations by name.
	Methods map[Op]Method
}

// A RegisterOptFn adjusts how Register derives routes.
type RegisterOptFn func(*registrar)

// WithNamer replaces the default base-path derivation,
// which strips a trailing "Repository" from the type name and lower-cases it.
func WithNamer(fn func(typeName string) string) RegisterOptFn {
	return func(reg *registrar) {
		reg.namer = fn
	}
}

type registrar struct {
	namer func(string) string
}

// Register derives RESTful routes for every operation repository implements
// and registers them on r. Operations the repository does not implement
// are skipped entirely: no route, no error.
//
// A nil repository is a caller programming error and panics.
func Register(r *router.Router, repository any, cfg Config, opts ...RegisterOptFn) {
	if repository == nil {
		panic(fmt.Errorf("repo.Register: %w: nil repository", switchback.ErrBadConfig))
	}

	reg := &registrar{namer: defaultNamer}
	for _, opt := range opts {
		opt(reg)
	}

	base := cfg.PathName
	if base == "" {
		base = reg.namer(typeName(repository))
	}

	idParam := cfg.IDParam
	if idParam == "" {
		idParam = "id"
	}

	item := base + "/{" + idParam + "}"

	for _, route := range deriveTable(repository, base, item) {
		if route.handler == nil {
			continue
		}

		entries := make([]router.Entry, 0, 3)
		m := cfg.Methods[route.op]
		if m.Schema.Bound() {
			entries = append(entries, router.Schema(m.Schema))
		}

		for _, mw := range m.Middleware {
			entries = append(entries, router.With(mw))
		}

		entries = append(entries, router.Do(route.handler))
		r.Handle(route.verb, []string{route.path}, entries...)
	}
}

type derivedRoute struct {
	op      Op
	verb    string
	path    string
	handler router.Handler
}

// deriveTable applies the fixed verb/path convention,
// binding each present method to its route.
func deriveTable(repository any, base, item string) []derivedRoute {
	table := make([]derivedRoute, 0, 6)

	if c, ok := repository.(Creator); ok {
		table = append(table, derivedRoute{OpCreate, http.MethodPost, base, c.Create})
	} else {
		table = append(table, derivedRoute{op: OpCreate})
	}

	if l, ok := repository.(Lister); ok {
		table = append(table, derivedRoute{OpList, http.MethodGet, base, l.List})
	} else {
		table = append(table, derivedRoute{op: OpList})
	}

	if g, ok := repository.(Getter); ok {
		table = append(table, derivedRoute{OpGet, http.MethodGet, item, g.Get})
	} else {
		table = append(table, derivedRoute{op: OpGet})
	}

	if u, ok := repository.(Updater); ok {
		table = append(table, derivedRoute{OpUpdate, http.MethodPut, item, u.Update})
	} else {
		table = append(table, derivedRoute{op: OpUpdate})
	}

	if p, ok := repository.(Patcher); ok {
		table = append(table, derivedRoute{OpPatch, http.MethodPatch, item, p.Patch})
	} else {
		table = append(table, derivedRoute{op: OpPatch})
	}

	if d, ok := repository.(Deleter); ok {
		table = append(table, derivedRoute{OpDelete, http.MethodDelete, item, d.Delete})
	} else {
		table = append(table, derivedRoute{op: OpDelete})
	}

	return table
}

// typeName resolves the repository's concrete type name, dereferencing pointers.
func typeName(repository any) string {
	t := reflect.TypeOf(repository)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

func defaultNamer(name string) string {
	stripped := strings.TrimSuffix(name, "Repository")
	if stripped == "" {
		stripped = name
	}

	return strings.ToLower(stripped)
}
