/*

Package schema validates the four surfaces of an HTTP request -
body, query, path parameters, and headers - before a handler runs.

A Spec binds a Validator to zero or more surfaces.
Validate checks each bound surface in a fixed order (body, query, params, headers).
The first surface to fail short-circuits the rest,
producing a *Failure whose issues are qualified with the surface name
(a bad "username" field in the body reports the attribute "body.username").

On success, each surface's value is replaced with the Validator's normalized output
and stashed in the request context.
Handlers retrieve the coerced data through Body, Query, Params, and Headers,
so a query string like ?limit=5 arrives as an int when the schema says so.

Struct supplies the default Validator:
it decodes the raw surface into a struct
(encoding/json for bodies, gorilla/schema elsewhere)
and applies the struct's "validate" tags with go-playground/validator.

*/
package schema
