package schema

import "net/http"

// A Surface is one of the four independent request data regions.
type Surface string

const (
	SurfaceBody    Surface = "body"
	SurfaceQuery   Surface = "query"
	SurfaceParams  Surface = "params"
	SurfaceHeaders Surface = "headers"
)

func (s Surface) String() string { return string(s) }

// surfaceOrder fixes the order surfaces are validated in.
var surfaceOrder = [4]Surface{SurfaceBody, SurfaceQuery, SurfaceParams, SurfaceHeaders}

// inferSurface names the surface a single, unbound schema applies to:
// the body for mutating verbs, the query string otherwise.
func inferSurface(method string) Surface {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return SurfaceBody
	default:
		return SurfaceQuery
	}
}
