/*

Package resp writes structured JSON responses
and translates validation failures into the wire-level error shape
switchback clients expect.

A single Responder usually suffices for an application;
handlers configure each response with Fn functional options:

	d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(product))

Validation produces the error responder the router mounts by default.

*/
package resp
