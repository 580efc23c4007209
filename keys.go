package switchback

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// ResponderKey stashes the *resp.Responder configured for the engine
	// so handlers can pull it out of the request context.
	ResponderKey Key = "ResponderKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}
