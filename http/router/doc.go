/*

Package router composes declarative routes atop gorilla/mux.

A Router carries a path prefix and an inherited middleware chain.
Group scopes a child Router to a combined prefix and chain:

	r := router.New(switchback.Development)
	r.Group("v1", func(v1 *router.Router) {
		v1.Group("admin", func(admin *router.Router) {
			admin.Get("dashboard", router.Do(dashboard))
		}, requireAdmin)
	})

Prefixes join with POSIX path semantics,
so segments compose predictably with or without leading or trailing slashes.

Verb methods accept a path and a list of tagged entries:
Schema attaches request validation that runs before the handler,
With slots an extra middleware, and Do supplies the terminal handler.
A handler returns an error; the Router routes it to the error-handling chain -
the validation responder first (overridable with SetErrorResponder),
then any terminal handlers registered with OnError.

Finish seals the Router and returns the handler to serve.
Registering routes after Finish is a caller programming error and panics,
as do invalid registration shapes, at registration time rather than request time.

*/
package router
