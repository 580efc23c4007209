package router

import (
	"fmt"

	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/schema"
)

// An Entry is one element of a route's handler list.
// It is exactly one of a schema, a middleware, or a terminal handler,
// constructed by Schema, With, or Do.
type Entry struct {
	spec    *schema.Spec
	adapter middleware.Adapter
	handler Handler
}

// Schema attaches request validation to the route.
// The spec is checked for well-formedness immediately;
// a malformed spec panics at registration time.
func Schema(spec schema.Spec) Entry {
	if err := spec.Valid(); err != nil {
		panic(fmt.Errorf("router.Schema: %w", err))
	}

	return Entry{spec: &spec}
}

// With slots a middleware into the route's handler list,
// running after the inherited group chain and any preceding entries.
func With(adapter middleware.Adapter) Entry {
	if adapter == nil {
		panic(fmt.Errorf("router.With: %w: nil middleware", switchback.ErrBadConfig))
	}

	return Entry{adapter: adapter}
}

// Do supplies the route's terminal handler.
// Every handler list ends with exactly one Do entry.
func Do(handler Handler) Entry {
	if handler == nil {
		panic(fmt.Errorf("router.Do: %w: nil handler", switchback.ErrBadConfig))
	}

	return Entry{handler: handler}
}
