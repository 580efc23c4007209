package switchback

import "errors"

var (
	// ErrBadAny arises when an any argument holds a type a function cannot
	// work with, such as a non-pointer where a pointer is required.
	ErrBadAny = errors.New("bad interface value")

	// ErrBadConfig arises from misconfiguring a component at registration time.
	ErrBadConfig = errors.New("bad config")

	// ErrBadFormat arises from data that cannot be decoded into the expected shape.
	ErrBadFormat = errors.New("bad format")

	ErrMissingData = errors.New("missing data")
	ErrNotExist    = errors.New("not exist")

	// ErrNotImplemented arises when a capability is reached that switchback
	// deliberately does not supply.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotValid is the sentinel all validation failures unwrap to.
	ErrNotValid = errors.New("invalid")

	ErrUnexpected = errors.New("unexpected")
)
