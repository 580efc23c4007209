package resp

import "errors"

var (
	ErrBadConfig   = errors.New("bad config")
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = errors.New("invalid")
	ErrMissingData = errors.New("missing data")
)
