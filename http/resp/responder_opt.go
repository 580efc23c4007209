package resp

import "github.com/switchback-web/switchback/logger"

// A ResponderOptFn mutates the state of a Responder under construction.
type ResponderOptFn func(*Responder)

// WithLogger sets the logger.Logger the Responder logs through.
func WithLogger(l logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = l
	}
}
